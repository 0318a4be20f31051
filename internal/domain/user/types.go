package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RolePatient   Role = "patient"
	RoleGuardian  Role = "guardian"
	RoleTherapist Role = "therapist"
	RoleAdmin     Role = "admin"
)

// roleSystem is never issued in tokens. It marks work the service performs on its own
// behalf, such as materializing a booking from a gateway callback.
const roleSystem Role = "system"

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RolePatient, RoleGuardian, RoleTherapist, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
