package debate

import "strings"

// Stance is the binary position held in a debate.
type Stance string

const (
	Pro Stance = "pro"
	Con Stance = "con"
)

// ParseStance normalises raw input into a Stance.
func ParseStance(raw string) (Stance, bool) {
	switch Stance(strings.ToLower(strings.TrimSpace(raw))) {
	case Pro:
		return Pro, true
	case Con:
		return Con, true
	default:
		return "", false
	}
}

// Valid reports whether s is one of the two known stances.
func (s Stance) Valid() bool {
	return s == Pro || s == Con
}

// Opposite returns the logical negation of s.
func (s Stance) Opposite() Stance {
	if s == Pro {
		return Con
	}
	return Pro
}

// Label is the display text used in the opening message.
func (s Stance) Label() string {
	if s == Pro {
		return "찬성 (Pro)"
	}
	return "반대 (Con)"
}

// Role identifies who authored a turn.
type Role string

const (
	RoleJames  Role = "james"
	RoleLinda  Role = "linda"
	RoleUser   Role = "user"
	RoleSystem Role = "system"
)

// ParseRole maps client input onto a Role. Empty input is not accepted here;
// callers decide on their own default.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleJames:
		return RoleJames, true
	case RoleLinda:
		return RoleLinda, true
	case RoleUser:
		return RoleUser, true
	case RoleSystem:
		return RoleSystem, true
	default:
		return "", false
	}
}

// IsPersona reports whether the role is one of the two AI debaters.
func (r Role) IsPersona() bool {
	return r == RoleJames || r == RoleLinda
}

// Personas lists the debaters in their fixed order.
func Personas() []Role {
	return []Role{RoleJames, RoleLinda}
}
