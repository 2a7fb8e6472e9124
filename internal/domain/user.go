package domain

// Role is the coarse permission label assigned to a user
type Role string

// Supported roles
const (
	RoleUser  Role = "user"  // Regular user
	RoleAdmin Role = "admin" // Administrator with moderation rights
)

// Valid reports whether the role is one of the supported literals
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// CanModerate reports whether the role grants moderation rights (ban/unban, delete any post)
func (r Role) CanModerate() bool {
	return r == RoleAdmin
}

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`                    // Primary key
	Name     string `gorm:"not null" json:"name"`                    // First name
	LastName string `gorm:"not null" json:"lastName"`                // Last name
	Email    string `gorm:"not null" json:"email"`                   // Email address
	Handle   string `gorm:"column:user;unique;not null" json:"user"` // Unique login handle (wire name "user")
	Password string `gorm:"not null" json:"-"`                       // Hashed password, never serialized
	Role     Role   `gorm:"default:user" json:"role"`                // Role: user or admin
	IsBanned bool   `gorm:"default:false" json:"isBanned"`           // Ban flag checked on every authenticated request
}
