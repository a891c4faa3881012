package domain

// Role access levels. AccessLevel is the authoritative ordering; titles are
// human labels only and may collide.
const (
	LevelViewer = 0
	LevelStaff  = 1
	LevelAdmin  = 2
)

// Role grants a minimum access level.
type Role struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	AccessLevel int    `json:"accessLevel"`
}

func (r Role) EntityID() string { return r.ID }

// Name holds a user's first and last name.
type Name struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// User models an authenticated actor in the system.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     Name   `json:"name"`
	Role     Role   `json:"role"`
}

func (u User) EntityID() string { return u.ID }
