package schema

// Role represents a user role as issued in access token claims.
type Role string

const (
	// RoleUndefined is the role of an anonymous session.
	RoleUndefined Role = ""
	RoleUser      Role = "USER"
	RoleAdmin     Role = "ADMIN"
	RoleOwner     Role = "OWNER"
)

// Valid returns true for USER, ADMIN and OWNER
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

func (r Role) String() string {
	if r == RoleUndefined {
		return "undefined"
	}
	return string(r)
}

// Roles represents a route allow-list
type Roles []Role

// Contains returns true if role is listed
func (r Roles) Contains(role Role) bool {
	for _, candidate := range r {
		if candidate == role {
			return true
		}
	}
	return false
}

var (
	// AnyRole allows every authenticated role
	AnyRole = Roles{RoleUser, RoleAdmin, RoleOwner}
	// Elevated allows administrative roles only
	Elevated = Roles{RoleAdmin, RoleOwner}
)
