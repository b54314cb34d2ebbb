package ai

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ScriptedModel is a ChatModel that always answers with the same reply.
// It stands in for a hosted model so the prompt pipeline runs end to end
// without network access.
type ScriptedModel struct {
	reply string

	mu        sync.Mutex
	lastInput []*schema.Message
}

var _ model.ChatModel = (*ScriptedModel)(nil)

// NewScriptedModel returns a model that answers every prompt with reply.
func NewScriptedModel(reply string) *ScriptedModel {
	return &ScriptedModel{reply: reply}
}

// Generate records the rendered prompt and returns the fixed reply.
func (m *ScriptedModel) Generate(ctx context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.lastInput = append([]*schema.Message(nil), input...)
	m.mu.Unlock()

	return schema.AssistantMessage(m.reply, nil), nil
}

// Stream emits the fixed reply as a single chunk.
func (m *ScriptedModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

// BindTools is a no-op; scripted replies never call tools.
func (m *ScriptedModel) BindTools(_ []*schema.ToolInfo) error {
	return nil
}

// LastInput returns the most recent prompt the model received.
func (m *ScriptedModel) LastInput() []*schema.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*schema.Message(nil), m.lastInput...)
}
