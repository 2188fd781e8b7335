package model

// Role is a closed set. String comparison against raw role names is how the
// legacy clients did authorization; keeping the set closed lets pkg/rules
// switch exhaustively instead of silently ignoring an unknown role.
type Role int

const (
	RoleGuest Role = iota
	RoleMember
	RoleCoach
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "ADMIN"
	case RoleCoach:
		return "COACH"
	case RoleMember:
		return "MEMBER"
	case RoleGuest:
		return "GUEST"
	}
	return "GUEST"
}

// ParseRole maps a wire role name to a Role. Unknown names degrade to guest,
// which holds no permissions.
func ParseRole(s string) Role {
	switch s {
	case "ADMIN", "INSTITUTION_ADMIN":
		return RoleAdmin
	case "COACH":
		return RoleCoach
	case "MEMBER", "SOCIO", "USER":
		return RoleMember
	default:
		return RoleGuest
	}
}

type User struct {
	ID     string `json:"id" bson:"_id,omitempty"`
	Name   string `json:"name,omitempty" bson:"name"`
	Role   Role   `json:"-" bson:"-"`
	Member bool   `json:"member,omitempty" bson:"member"`
}
