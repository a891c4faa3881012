package ports

import "github.com/kevgathuku/docue/internal/core/domain"

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignupInput is the account-creation payload.
type SignupInput struct {
	Username  string `json:"username"  validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
	FirstName string `json:"firstname" validate:"required"`
	LastName  string `json:"lastname"  validate:"required"`
}

// DocumentPayload is the create/update payload for documents. The owner is
// never part of the payload; the server derives it from the token.
type DocumentPayload struct {
	Title   string      `json:"title" validate:"required"`
	Content string      `json:"content"`
	Role    domain.Role `json:"role" validate:"required"`
}

// RolePayload is the create/update payload for roles.
type RolePayload struct {
	Title       string `json:"title"       validate:"required"`
	AccessLevel int    `json:"accessLevel" validate:"gte=0,lte=2"`
}

// UserPayload is the update payload for users. All fields are optional;
// absent fields are left untouched by the server.
type UserPayload struct {
	Username string       `json:"username,omitempty"`
	Email    string       `json:"email,omitempty" validate:"omitempty,email"`
	Name     *domain.Name `json:"name,omitempty"`
	Role     *domain.Role `json:"role,omitempty"`
}
