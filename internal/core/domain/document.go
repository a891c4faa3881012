package domain

import "time"

// Document is an access-gated unit of opaque text content. The owner is
// immutable after creation; Role assigns the minimum access level required
// to read.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Role        Role      `json:"role"`
	OwnerID     string    `json:"ownerId"`
	DateCreated time.Time `json:"dateCreated"`
}

func (d Document) EntityID() string { return d.ID }
