package debate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/debate-arena/backend/internal/model/debate"
	"github.com/zhouzirui/debate-arena/backend/internal/service/ai"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
)

const placeholderMessage = "세션 조회 기능은 추후 구현 예정입니다."

// Options tunes lifecycle behaviour.
type Options struct {
	// StrictSessions rejects unknown session ids with ErrSessionNotFound.
	// When false, PostMessage and GetSession accept any id.
	StrictSessions bool
}

// Service manages debate session lifecycles.
type Service struct {
	store     Store
	generator ai.Generator
	strict    bool
	now       func() time.Time
}

// NewService wires the lifecycle manager to its store and reply generator.
func NewService(store Store, generator ai.Generator, opts Options) *Service {
	return &Service{
		store:     store,
		generator: generator,
		strict:    opts.StrictSessions,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Start opens a new debate. James takes the stance opposite to the user and
// Linda takes the user's stance.
func (s *Service) Start(ctx context.Context, topic string, userStance debate.Stance) (debate.Session, error) {
	if strings.TrimSpace(topic) == "" {
		return debate.Session{}, fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}
	if !userStance.Valid() {
		return debate.Session{}, fmt.Errorf("%w: userPosition must be pro or con", ErrInvalidInput)
	}

	james, linda := debate.AssignPositions(userStance)
	createdAt := s.now()
	opening := OpeningMessage(topic, james, linda)

	session := debate.Session{
		ID:             uuid.NewString(),
		Topic:          topic,
		UserPosition:   userStance,
		JamesPosition:  james,
		LindaPosition:  linda,
		OpeningMessage: opening,
		Turns:          []debate.Turn{s.newTurn(debate.RoleSystem, opening, createdAt)},
		CreatedAt:      createdAt,
	}

	if err := s.store.Create(ctx, session); err != nil {
		return debate.Session{}, fmt.Errorf("store session: %w", err)
	}

	log.Printf("[debate] started session=%s user=%s james=%s linda=%s", session.ID, userStance, james, linda)
	return session, nil
}

// OpeningMessage renders the line announcing the topic and both stances.
func OpeningMessage(topic string, james, linda debate.Stance) string {
	return fmt.Sprintf("토론 주제: '%s'에 대한 토론을 시작합니다. 제임스는 %s, 린다는 %s 입장입니다.", topic, james.Label(), linda.Label())
}

// PostMessage records the user's message and the target persona's reply.
// Only persona targets are recorded; other roles get the fallback reply.
func (s *Service) PostMessage(ctx context.Context, sessionID, message string, target debate.Role) (debate.Turn, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return debate.Turn{}, fmt.Errorf("%w: sessionId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(message) == "" {
		return debate.Turn{}, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	session, err := s.store.Get(ctx, sessionID)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		if s.strict {
			return debate.Turn{}, err
		}
		log.Printf("[debate] message for unknown session=%s accepted without recording", sessionID)
		return s.reply(ctx, ai.Request{SessionID: sessionID, Persona: target, Message: message})
	case err != nil:
		return debate.Turn{}, fmt.Errorf("load session: %w", err)
	}

	stance, _ := session.PositionOf(target)
	replyTurn, err := s.reply(ctx, ai.Request{
		SessionID: sessionID,
		Persona:   target,
		Topic:     session.Topic,
		Stance:    stance,
		History:   session.Turns,
		Message:   message,
	})
	if err != nil {
		return debate.Turn{}, err
	}

	if !target.IsPersona() {
		return replyTurn, nil
	}

	userTurn := s.newTurn(debate.RoleUser, message, replyTurn.Timestamp)
	if err := s.store.AppendTurns(ctx, sessionID, userTurn, replyTurn); err != nil {
		return debate.Turn{}, fmt.Errorf("append turns: %w", err)
	}
	return replyTurn, nil
}

func (s *Service) reply(ctx context.Context, req ai.Request) (debate.Turn, error) {
	msg, err := s.generator.Generate(ctx, req)
	if err != nil {
		return debate.Turn{}, fmt.Errorf("generate reply: %w", err)
	}
	return s.newTurn(req.Persona, msg.Content, s.now()), nil
}

// GetSession returns a read-only view of the session.
func (s *Service) GetSession(ctx context.Context, sessionID string) (debate.View, error) {
	session, err := s.store.Get(ctx, sessionID)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		if s.strict {
			return debate.View{}, err
		}
		return debate.View{
			SessionID: sessionID,
			Status:    debate.SessionStatusActive,
			Message:   placeholderMessage,
		}, nil
	case err != nil:
		return debate.View{}, fmt.Errorf("load session: %w", err)
	}
	return debate.NewView(session), nil
}

// History returns the ordered transcript. Unknown ids always fail.
func (s *Service) History(ctx context.Context, sessionID string) (debate.History, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return debate.History{}, err
	}
	return debate.History{
		SessionID:  session.ID,
		Messages:   session.Turns,
		TotalCount: len(session.Turns),
	}, nil
}

func (s *Service) newTurn(role debate.Role, message string, at time.Time) debate.Turn {
	return debate.Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Message:   message,
		Timestamp: at,
	}
}
