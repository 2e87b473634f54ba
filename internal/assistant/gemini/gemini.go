// Package gemini implements the assistant parser on top of the Gemini
// API via the official Go SDK.
package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"messbook/internal/assistant"
	"messbook/internal/core"
)

const defaultModel = "gemini-2.5-flash"

// Client calls Gemini and decodes its answer into a proposal.
type Client struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// New builds a client with an explicit API key. An empty model selects
// the default.
func New(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: missing API key")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{client: client, model: model, logger: logger}, nil
}

// Parse sends the user text plus member context to the model and decodes
// the JSON proposal it returns.
func (c *Client) Parse(ctx context.Context, text string, members []core.Member) (*assistant.Proposal, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		SystemInstruction: genai.NewContentFromText(assistant.BuildInstruction(core.Today(), members), genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(text), cfg)
	if err != nil {
		c.logger.Error("gemini call failed", "model", c.model, "error", err)
		return nil, fmt.Errorf("%w: %v", assistant.ErrUnavailable, err)
	}
	raw := resp.Text()
	if raw == "" {
		return nil, assistant.ErrUnparseable
	}

	p, err := assistant.DecodeProposal(raw)
	if err != nil {
		c.logger.Warn("gemini returned unparseable proposal", "error", err)
		return nil, err
	}
	c.logger.Info("parsed assistant proposal", "action", p.ActionType, "amount", p.Amount)
	return p, nil
}

var _ assistant.Parser = (*Client)(nil)
