package debate

import "time"

// SessionStatusActive is the only status a session currently reaches.
const SessionStatusActive = "active"

// View is the read-only projection of a session returned to clients.
// Placeholder views for unknown ids only carry SessionID, Status and Message.
type View struct {
	SessionID      string     `json:"sessionId"`
	Status         string     `json:"status"`
	Topic          string     `json:"topic,omitempty"`
	UserPosition   Stance     `json:"userPosition,omitempty"`
	JamesPosition  Stance     `json:"jamesPosition,omitempty"`
	LindaPosition  Stance     `json:"lindaPosition,omitempty"`
	OpeningMessage string     `json:"openingMessage,omitempty"`
	TurnCount      int        `json:"turnCount,omitempty"`
	Turns          []Turn     `json:"turns,omitempty"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
	Message        string     `json:"message,omitempty"`
}

// NewView projects a stored session.
func NewView(s Session) View {
	created := s.CreatedAt
	turns := s.Clone().Turns
	return View{
		SessionID:      s.ID,
		Status:         SessionStatusActive,
		Topic:          s.Topic,
		UserPosition:   s.UserPosition,
		JamesPosition:  s.JamesPosition,
		LindaPosition:  s.LindaPosition,
		OpeningMessage: s.OpeningMessage,
		TurnCount:      len(turns),
		Turns:          turns,
		CreatedAt:      &created,
	}
}

// History is the ordered transcript of a session.
type History struct {
	SessionID  string `json:"sessionId"`
	Messages   []Turn `json:"messages"`
	TotalCount int    `json:"totalCount"`
}
