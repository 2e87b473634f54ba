// Package assistant turns free-text input into a structured transaction
// proposal through an external language model. The core only consumes the
// proposal after the user confirms it; normal record validation still
// applies on apply.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"messbook/internal/core"
)

// ActionType classifies what the assistant thinks the text describes.
type ActionType string

const (
	ActionDeposit ActionType = "DEPOSIT"
	ActionExpense ActionType = "EXPENSE"
	ActionUnknown ActionType = "UNKNOWN"
)

var (
	// ErrUnavailable means the assistant service could not be reached.
	ErrUnavailable = errors.New("assistant unavailable")
	// ErrUnparseable means the assistant answered with output that does
	// not decode into a proposal.
	ErrUnparseable = errors.New("assistant output unparseable")
)

// Proposal is the assistant's structured reading of the user's text. The
// user confirms or discards it; nothing is written until then.
type Proposal struct {
	ActionType  ActionType `json:"actionType"`
	Amount      float64    `json:"amount"`
	Date        string     `json:"date"` // YYYY-MM-DD
	MemberID    string     `json:"memberId,omitempty"`
	ShopperName string     `json:"shopperName,omitempty"`
	Items       string     `json:"items,omitempty"`
	Summary     string     `json:"summary"`
}

// Parser is the collaborator contract: text plus the current member list in,
// a proposal or a distinguishable failure out. No retries here; retry
// policy belongs to the adapter if anywhere.
type Parser interface {
	Parse(ctx context.Context, text string, members []core.Member) (*Proposal, error)
}

// DecodeProposal parses a model response into a Proposal. Markdown code
// fences around the JSON are tolerated since models love adding them.
func DecodeProposal(raw string) (*Proposal, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, ErrUnparseable
	}

	var p Proposal
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	switch p.ActionType {
	case ActionDeposit, ActionExpense, ActionUnknown:
	default:
		return nil, fmt.Errorf("%w: bad actionType %q", ErrUnparseable, p.ActionType)
	}
	return &p, nil
}

// BuildInstruction renders the system instruction for the model: the
// classification rules, today's date, and the known members so ids can be
// matched. Input may be English or Bangla.
func BuildInstruction(today core.Date, members []core.Member) string {
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, fmt.Sprintf("%s (ID: %s)", m.Name, m.ID))
	}

	var b strings.Builder
	b.WriteString("You are a helpful assistant for a shared meal-mess ledger app.\n")
	b.WriteString("Parse the user's natural language input into JSON for either a deposit or an expense.\n")
	b.WriteString("The input might be in English or Bangla (Bengali); understand both.\n\n")
	fmt.Fprintf(&b, "Current date: %s\n", today)
	fmt.Fprintf(&b, "Existing members: %s\n\n", strings.Join(names, ", "))
	b.WriteString("Rules:\n")
	b.WriteString("1. Money paid TO the mess fund is a DEPOSIT; buying items or spending is an EXPENSE.\n")
	b.WriteString("2. If a member is mentioned, match their ID; use the closest match when ambiguous.\n")
	b.WriteString("3. Use actionType UNKNOWN when the input is unclear.\n")
	b.WriteString("4. Write the summary in the same language as the input.\n\n")
	b.WriteString("Answer with a single JSON object, no prose:\n")
	b.WriteString(`{"actionType":"DEPOSIT"|"EXPENSE"|"UNKNOWN","amount":number,"date":"YYYY-MM-DD","memberId":string,"shopperName":string,"items":string,"summary":string}`)
	return b.String()
}
