package ai

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/zhouzirui/debate-arena/backend/internal/model/debate"
	"github.com/zhouzirui/debate-arena/backend/internal/model/persona"
)

// PromptTemplate defines the structure for persona prompts
type PromptTemplate struct {
	SystemPrompt string
	DebateStyle  []string
	ContextRules []string
}

// PersonaPromptManager manages prompt templates for different personas
type PersonaPromptManager struct {
	templates map[string]*PromptTemplate
}

// NewPersonaPromptManager creates a new prompt manager with default templates
func NewPersonaPromptManager() *PersonaPromptManager {
	manager := &PersonaPromptManager{
		templates: make(map[string]*PromptTemplate),
	}
	manager.loadDefaultTemplates()
	return manager
}

// LoadOverrides replaces built-in system prompts with <dir>/<personaID>.txt
// when such a file exists. Missing files keep the defaults.
func (pm *PersonaPromptManager) LoadOverrides(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return nil
	}

	for id, template := range pm.templates {
		path := filepath.Join(dir, id+".txt")
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("read prompt override %s: %w", path, err)
		}

		text := strings.TrimSpace(string(data))
		if text == "" {
			continue
		}
		template.SystemPrompt = text
		// Override files carry the full prompt.
		template.DebateStyle = nil
		template.ContextRules = nil
		log.Printf("[ai] loaded prompt override for persona=%s from %s", id, path)
	}
	return nil
}

// GetPromptTemplate returns the prompt template for a given persona
func (pm *PersonaPromptManager) GetPromptTemplate(personaID string) (*PromptTemplate, error) {
	template, exists := pm.templates[personaID]
	if !exists {
		return nil, fmt.Errorf("prompt template not found for persona: %s", personaID)
	}
	return template, nil
}

// BuildSystemPrompt renders the system prompt for a persona arguing stance on topic.
func (pm *PersonaPromptManager) BuildSystemPrompt(p *persona.Persona, topic string, stance debate.Stance) string {
	template, err := pm.GetPromptTemplate(p.ID)
	if err != nil {
		return pm.buildBasicSystemPrompt(p, topic, stance)
	}

	var b strings.Builder
	b.WriteString(template.SystemPrompt)
	if len(template.DebateStyle) > 0 {
		b.WriteString("\n\n토론 스타일:\n- ")
		b.WriteString(strings.Join(template.DebateStyle, "\n- "))
	}
	if len(template.ContextRules) > 0 {
		b.WriteString("\n\n응답 시 주의사항:\n- ")
		b.WriteString(strings.Join(template.ContextRules, "\n- "))
	}
	b.WriteString(debateContext(topic, stance))
	return b.String()
}

func (pm *PersonaPromptManager) buildBasicSystemPrompt(p *persona.Persona, topic string, stance debate.Stance) string {
	return fmt.Sprintf(`당신은 '%s'라는 AI 토론자입니다. %s

특성:
- %s
- %s%s`,
		p.DisplayName,
		p.Title,
		p.Tone,
		p.PromptHint,
		debateContext(topic, stance),
	)
}

func debateContext(topic string, stance debate.Stance) string {
	topic = strings.TrimSpace(topic)
	if topic == "" || !stance.Valid() {
		return ""
	}
	return fmt.Sprintf("\n\n토론 주제: %s\n당신의 입장: %s", topic, stance.Label())
}

// loadDefaultTemplates loads the default prompt templates for both debaters
func (pm *PersonaPromptManager) loadDefaultTemplates() {
	pm.templates[string(debate.RoleJames)] = &PromptTemplate{
		SystemPrompt: `당신은 '제임스'라는 AI 토론자입니다.

특성:
- 논리적이고 분석적인 사고방식
- 데이터와 통계를 중시
- 차분하고 이성적인 어조
- 상대방의 논점을 정확히 파악하고 반박`,
		DebateStyle: []string{
			"명확한 근거 제시",
			"체계적인 논증 구조",
			"감정보다 사실에 기반한 주장",
			"상대방 의견 존중하면서 비판적 분석",
		},
		ContextRules: commonRules(),
	}

	pm.templates[string(debate.RoleLinda)] = &PromptTemplate{
		SystemPrompt: `당신은 '린다'라는 AI 토론자입니다.

특성:
- 감성적이고 공감 능력이 뛰어남
- 실제 사례와 경험을 중시
- 따뜻하고 설득력 있는 어조
- 다양한 관점에서 문제를 바라봄`,
		DebateStyle: []string{
			"스토리텔링을 통한 설득",
			"인간적 가치와 윤리 강조",
			"상대방의 감정과 입장 고려",
			"협력적이면서도 명확한 주장",
		},
		ContextRules: commonRules(),
	}
}

func commonRules() []string {
	return []string{
		"한국어로 응답",
		"100-200자 내외로 간결하게",
		"토론 주제에 집중",
		"인신공격 금지",
	}
}
