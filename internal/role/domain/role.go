package domain

// Code is the stable role identifier carried in token claims and persisted
// by the store. The set is closed: unknown codes fail validation instead of
// being coerced.
type Code string

const (
	CodeAdmin   Code = "ADMIN"
	CodeBlogger Code = "BLOGGER"
)

// DefaultCode is the role assigned to new registrations absent explicit
// elevation. It must exist at deployment time (seeded); its absence is a
// deployment defect, not a user error.
const DefaultCode = CodeBlogger

// Valid reports whether c is a member of the closed role set.
func (c Code) Valid() bool {
	switch c {
	case CodeAdmin, CodeBlogger:
		return true
	}
	return false
}

// Role is a named capability group. Every user has exactly one role.
type Role struct {
	ID   string
	Code Code
	Name string
}
