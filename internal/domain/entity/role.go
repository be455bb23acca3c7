package entity

// Role represents an authorization role.
// Many-to-many with User via UserRole.
type Role struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name" validate:"notblank"`
}

func (r Role) Key() int { return r.ID }

func (r Role) Option() Option { return Option{ID: r.ID, Name: r.Name} }

// User is only read by the console, to label user-role assignments.
type User struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

func (u User) Key() int { return u.ID }

func (u User) Option() Option { return Option{ID: u.ID, Name: u.Name} }

// UserRole assigns one Role to one User.
type UserRole struct {
	ID     int `json:"id,omitempty"`
	UserID int `json:"userId" validate:"required"`
	RoleID int `json:"roleId" validate:"required"`
}

func (ur UserRole) Key() int { return ur.ID }
