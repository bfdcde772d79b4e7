package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// TextCompleter produces a model completion for a prompt.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client wraps the Anthropic SDK for plan proposals.
type Client struct {
	inner anthropic.Client
	model anthropic.Model
}

// NewClient creates an Anthropic-backed completer. An empty model falls
// back to the SDK default for this tool.
func NewClient(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic api key is not set")
	}

	m := anthropic.Model(model)
	if model == "" {
		m = anthropic.ModelClaudeSonnet4_5_20250929
	}

	return &Client{
		inner: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model: m,
	}, nil
}

// Complete executes a prompt and returns the concatenated text response.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.inner.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 8192,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("API call failed: %w", err)
	}

	var result strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			result.WriteString(variant.Text)
		}
	}

	return result.String(), nil
}

// Proposer asks a model for a task breakdown of a run objective.
type Proposer struct {
	completer TextCompleter
}

// NewProposer creates a Proposer with the given completer.
func NewProposer(completer TextCompleter) *Proposer {
	return &Proposer{completer: completer}
}

// proposedTask is the JSON structure returned by the model for a single task.
type proposedTask struct {
	Key                string     `json:"key"`
	Title              string     `json:"title"`
	Type               string     `json:"type"`
	DependsOn          []string   `json:"depends_on"`
	Scope              *scopeJSON `json:"scope"`
	AcceptanceCriteria []string   `json:"acceptance_criteria"`
}

type scopeJSON struct {
	From  *int   `json:"from"`
	To    *int   `json:"to"`
	Label string `json:"label"`
}

// Propose returns task drafts for the objective. The returned drafts are
// validated for key and dependency consistency but not yet applied.
func (p *Proposer) Propose(ctx context.Context, objective string) ([]TaskDraft, error) {
	prompt := fmt.Sprintf(proposalPrompt, objective)

	response, err := p.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("complete proposal prompt: %w", err)
	}

	drafts, err := ParseProposal(response)
	if err != nil {
		return nil, fmt.Errorf("parse proposal response: %w", err)
	}

	check := &Plan{Objective: objective, Tasks: drafts}
	if err := check.Validate(); err != nil {
		return nil, fmt.Errorf("validate proposal: %w", err)
	}

	return drafts, nil
}

// ParseProposal parses the model's JSON response into task drafts.
func ParseProposal(response string) ([]TaskDraft, error) {
	jsonStart := strings.Index(response, "[")
	jsonEnd := strings.LastIndex(response, "]")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		preview := response
		if len(preview) > 500 {
			preview = preview[:500] + "... (truncated)"
		}
		return nil, fmt.Errorf("no valid JSON array found in response (got %d chars): %q", len(response), preview)
	}
	jsonStr := response[jsonStart : jsonEnd+1]

	var proposed []proposedTask
	if err := json.Unmarshal([]byte(jsonStr), &proposed); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}

	if len(proposed) == 0 {
		return nil, fmt.Errorf("empty task list returned")
	}

	drafts := make([]TaskDraft, len(proposed))
	for i, pt := range proposed {
		draft := TaskDraft{
			Key:                pt.Key,
			Title:              pt.Title,
			Type:               strings.ToLower(pt.Type),
			DependsOn:          pt.DependsOn,
			AcceptanceCriteria: pt.AcceptanceCriteria,
		}
		if pt.Scope != nil {
			draft.Scope = &ScopeDraft{
				From:  pt.Scope.From,
				To:    pt.Scope.To,
				Label: pt.Scope.Label,
			}
		}
		drafts[i] = draft
	}

	return drafts, nil
}
