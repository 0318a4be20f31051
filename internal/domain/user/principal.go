package user

import "github.com/google/uuid"

// Principal is the authenticated caller of a command.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

func NewPrincipal(userID uuid.UUID, role Role) Principal {
	return Principal{UserID: userID, Role: role}
}

func SystemPrincipal() Principal {
	return Principal{UserID: uuid.Nil, Role: roleSystem}
}

func (p Principal) IsAdmin() bool     { return p.Role == RoleAdmin }
func (p Principal) IsSystem() bool    { return p.Role == roleSystem }
func (p Principal) IsTherapist() bool { return p.Role == RoleTherapist }
func (p Principal) IsGuardian() bool  { return p.Role == RoleGuardian }
func (p Principal) IsPatient() bool   { return p.Role == RolePatient }

// IsPrivileged reports whether ownership checks may be skipped.
func (p Principal) IsPrivileged() bool {
	return p.IsAdmin() || p.IsSystem()
}
