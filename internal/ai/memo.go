// Package ai drafts counselor memos for diary entries using the Anthropic
// API. The feature is optional: without an API key the drafter is disabled
// and the rest of the application runs unchanged.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/jinjinsansan/kanjou/internal/schema"
)

// ErrDisabled is returned by NewDrafter when no API key is configured.
var ErrDisabled = errors.New("memo drafting disabled: no API key configured")

const systemPrompt = `You are a counselor reviewing a client's emotion journal.
Write a short internal memo (2-4 sentences) about the entry below: what the
client experienced, the emotional pattern you notice, and one possible
direction for the next session. Write plainly, without addressing the client.`

// Drafter generates counselor memo suggestions for diary entries.
type Drafter struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewDrafter creates a Drafter. Returns ErrDisabled when apiKey is empty.
func NewDrafter(apiKey, model string) (*Drafter, error) {
	if apiKey == "" {
		return nil, ErrDisabled
	}
	return &Drafter{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}, nil
}

// DraftMemo asks the model for a memo suggestion for one entry.
func (d *Drafter) DraftMemo(ctx context.Context, rec *schema.DiaryRecord) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Date: %s\nEmotion: %s\n", rec.Date, rec.Emotion)
	if rec.Event != "" {
		fmt.Fprintf(&sb, "Event: %s\n", rec.Event)
	}
	if rec.Realization != "" {
		fmt.Fprintf(&sb, "Realization: %s\n", rec.Realization)
	}
	if rec.SelfEsteemScore != nil {
		fmt.Fprintf(&sb, "Self-esteem score: %d\n", *rec.SelfEsteemScore)
	}
	if rec.WorthlessnessScore != nil {
		fmt.Fprintf(&sb, "Worthlessness score: %d\n", *rec.WorthlessnessScore)
	}

	msg, err := d.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     d.model,
		MaxTokens: 512,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(sb.String())),
		},
	})
	if err != nil {
		return "", fmt.Errorf("memo request failed: %w", err)
	}

	var memo strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			memo.WriteString(block.Text)
		}
	}
	if memo.Len() == 0 {
		return "", fmt.Errorf("model returned no text content")
	}

	return strings.TrimSpace(memo.String()), nil
}
