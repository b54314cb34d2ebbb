package debate

import "time"

// Session is one debate between the user and the two personas.
type Session struct {
	ID             string    `json:"id"`
	Topic          string    `json:"topic"`
	UserPosition   Stance    `json:"userPosition"`
	JamesPosition  Stance    `json:"jamesPosition"`
	LindaPosition  Stance    `json:"lindaPosition"`
	OpeningMessage string    `json:"openingMessage"`
	Turns          []Turn    `json:"turns"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PositionOf returns the stance held by role inside the session.
func (s Session) PositionOf(role Role) (Stance, bool) {
	switch role {
	case RoleJames:
		return s.JamesPosition, true
	case RoleLinda:
		return s.LindaPosition, true
	case RoleUser:
		return s.UserPosition, true
	default:
		return "", false
	}
}

// Clone returns a copy whose turn slice does not alias s.
func (s Session) Clone() Session {
	out := s
	out.Turns = make([]Turn, len(s.Turns))
	copy(out.Turns, s.Turns)
	return out
}

// AssignPositions derives both persona stances from the user's stance.
// James always argues against the user, Linda always sides with the user.
func AssignPositions(user Stance) (james, linda Stance) {
	return user.Opposite(), user
}
