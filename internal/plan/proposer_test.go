package plan

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeCompleter returns a canned response.
type fakeCompleter struct {
	response string
	err      error
	prompt   string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

const proposalResponse = `Here is the breakdown you asked for:

[
  {
    "key": "gather-sources",
    "title": "Gather background sources",
    "type": "RESEARCH",
    "acceptance_criteria": ["At least five sources collected"]
  },
  {
    "key": "draft-overview",
    "title": "Draft the overview section",
    "type": "write",
    "depends_on": ["gather-sources"],
    "scope": {"from": 1, "to": 25}
  },
  {
    "key": "check-citations",
    "title": "Check citations",
    "type": "qa",
    "depends_on": ["draft-overview"],
    "scope": {"label": "references"}
  }
]

Let me know if you want a different split.`

func TestParseProposal(t *testing.T) {
	drafts, err := ParseProposal(proposalResponse)
	if err != nil {
		t.Fatalf("parse proposal: %v", err)
	}
	if len(drafts) != 3 {
		t.Fatalf("drafts = %d, want 3", len(drafts))
	}

	if drafts[0].Type != "research" {
		t.Errorf("type should be lowercased, got %q", drafts[0].Type)
	}
	if drafts[1].Scope == nil || drafts[1].Scope.From == nil || *drafts[1].Scope.From != 1 {
		t.Errorf("numeric scope not decoded: %+v", drafts[1].Scope)
	}
	if drafts[2].Scope == nil || drafts[2].Scope.Label != "references" {
		t.Errorf("labeled scope not decoded: %+v", drafts[2].Scope)
	}
}

func TestParseProposalNoJSON(t *testing.T) {
	_, err := ParseProposal("I could not produce a breakdown.")
	if err == nil {
		t.Fatal("expected error when response has no JSON array")
	}
}

func TestParseProposalEmptyList(t *testing.T) {
	_, err := ParseProposal("[]")
	if err == nil {
		t.Fatal("expected error for empty task list")
	}
}

func TestPropose(t *testing.T) {
	fake := &fakeCompleter{response: proposalResponse}
	p := NewProposer(fake)

	drafts, err := p.Propose(context.Background(), "write the annual review")
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	if len(drafts) != 3 {
		t.Fatalf("drafts = %d, want 3", len(drafts))
	}
	if !strings.Contains(fake.prompt, "write the annual review") {
		t.Error("objective should be embedded in the prompt")
	}
}

func TestProposeRejectsInconsistentBreakdown(t *testing.T) {
	fake := &fakeCompleter{response: `[
  {"key": "a", "title": "A", "depends_on": ["missing"]}
]`}
	p := NewProposer(fake)

	if _, err := p.Propose(context.Background(), "objective"); err == nil {
		t.Fatal("expected dangling dependency to fail validation")
	}
}

func TestProposeCompleterError(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("boom")}
	p := NewProposer(fake)

	if _, err := p.Propose(context.Background(), "objective"); err == nil {
		t.Fatal("expected completer error to surface")
	}
}
