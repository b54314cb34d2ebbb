package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/debate-arena/backend/internal/model/debate"
	"github.com/zhouzirui/debate-arena/backend/internal/model/persona"
)

// Canned replies returned until a hosted model is wired in.
const (
	JamesResponse    = "흥미로운 관점이네요. 하지만 저는 다른 시각에서 바라보고 싶습니다. 이 문제에 대해 더 깊이 생각해볼 필요가 있습니다."
	LindaResponse    = "그 의견에 동의하는 부분도 있지만, 다른 관점에서 보면 상황이 달라질 수 있습니다. 함께 더 논의해볼까요?"
	FallbackResponse = "응답을 생성할 수 없습니다."
)

const defaultHistoryLimit = 10

// Request carries everything a persona needs to produce its next turn.
type Request struct {
	SessionID string
	Persona   debate.Role
	Topic     string
	Stance    debate.Stance
	History   []debate.Turn
	Message   string
}

// Generator produces a response turn given prompt context and history.
type Generator interface {
	Generate(ctx context.Context, req Request) (*schema.Message, error)
}

// Options configures the generation service.
type Options struct {
	HistoryLimit int
	PromptsDir   string
	// Models overrides the chat model per persona. Personas without an entry
	// use a ScriptedModel with their canned reply.
	Models map[debate.Role]model.ChatModel
}

// Service runs one compiled prompt chain per persona.
type Service struct {
	personas     persona.Store
	prompts      *PersonaPromptManager
	historyLimit int
	chains       map[debate.Role]compose.Runnable[map[string]any, *schema.Message]
}

var _ Generator = (*Service)(nil)

// NewService compiles the prompt chains for both debaters.
func NewService(ctx context.Context, personas persona.Store, opts Options) (*Service, error) {
	prompts := NewPersonaPromptManager()
	if err := prompts.LoadOverrides(opts.PromptsDir); err != nil {
		return nil, err
	}

	historyLimit := opts.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}

	svc := &Service{
		personas:     personas,
		prompts:      prompts,
		historyLimit: historyLimit,
		chains:       make(map[debate.Role]compose.Runnable[map[string]any, *schema.Message], 2),
	}

	for _, role := range debate.Personas() {
		chatModel := opts.Models[role]
		if chatModel == nil {
			chatModel = NewScriptedModel(DefaultReply(role))
		}

		runnable, err := compileChain(ctx, chatModel)
		if err != nil {
			return nil, fmt.Errorf("failed to compile chain for %s: %w", role, err)
		}
		svc.chains[role] = runnable
	}

	return svc, nil
}

func compileChain(ctx context.Context, chatModel model.ChatModel) (compose.Runnable[map[string]any, *schema.Message], error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	return chain.Compile(ctx)
}

// DefaultReply returns the canned reply for role.
func DefaultReply(role debate.Role) string {
	switch role {
	case debate.RoleJames:
		return JamesResponse
	case debate.RoleLinda:
		return LindaResponse
	default:
		return FallbackResponse
	}
}

// Generate asks the persona's chain for a reply. Roles that are not
// debaters get the fallback reply without running a chain.
func (s *Service) Generate(ctx context.Context, req Request) (*schema.Message, error) {
	chain, ok := s.chains[req.Persona]
	if !ok {
		return schema.AssistantMessage(FallbackResponse, nil), nil
	}

	p, ok := s.personas.FindByID(string(req.Persona))
	if !ok {
		return nil, fmt.Errorf("persona %s not found", req.Persona)
	}

	response, err := chain.Invoke(ctx, s.buildChainInput(&p, req))
	if err != nil {
		return nil, fmt.Errorf("failed to run debate chain: %w", err)
	}

	log.Printf("[ai] generated response for session=%s, persona=%s, history=%d", req.SessionID, req.Persona, len(req.History))
	return response, nil
}

func (s *Service) buildChainInput(p *persona.Persona, req Request) map[string]any {
	return map[string]any{
		"system":  s.prompts.BuildSystemPrompt(p, req.Topic, req.Stance),
		"history": s.buildHistoryMessages(req.Persona, req.History),
		"query":   req.Message,
	}
}

// buildHistoryMessages maps the most recent turns onto chat roles from the
// speaker's point of view. The other debater's turns arrive as labelled
// user messages; system turns are dropped.
func (s *Service) buildHistoryMessages(speaker debate.Role, turns []debate.Turn) []*schema.Message {
	if len(turns) == 0 {
		return nil
	}

	start := 0
	if len(turns) > s.historyLimit {
		start = len(turns) - s.historyLimit
	}

	history := make([]*schema.Message, 0, len(turns)-start)
	for _, turn := range turns[start:] {
		switch {
		case turn.Role == speaker:
			history = append(history, schema.AssistantMessage(turn.Message, nil))
		case turn.Role == debate.RoleUser:
			history = append(history, schema.UserMessage(turn.Message))
		case turn.Role.IsPersona():
			history = append(history, schema.UserMessage(fmt.Sprintf("[%s] %s", turn.Role, turn.Message)))
		}
	}
	return history
}
