package debate

import "time"

// Turn is a single immutable message exchanged within a session.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Message   string    `json:"message"`
	AudioURL  *string   `json:"audioUrl"`
	Timestamp time.Time `json:"timestamp"`
}
