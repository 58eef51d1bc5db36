package entity

import "fmt"

// Role is the three-valued authorization tag carried by every user.
type Role int

const (
	RoleUser Role = iota
	RoleModerator
	RoleAdmin
)

// roleNames is the only place roles are tied to their stored/rendered tags.
var roleNames = map[Role]string{
	RoleAdmin:     "admin",
	RoleModerator: "moderator",
	RoleUser:      "user",
}

// String returns the lowercase tag stored in the user_role enum.
func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// ParseRole maps a stored tag back to a Role.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return RoleUser, fmt.Errorf("unknown role %q", s)
}

// Scan implements sql.Scanner for the user_role column.
func (r *Role) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		*r = RoleUser
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Role", src)
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
