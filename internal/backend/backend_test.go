package backend

import (
	"context"
	"errors"
	"testing"
)

type stubClient struct {
	info Info
}

func (s stubClient) Identify() Info { return s.info }

func (s stubClient) Submit(_ context.Context, _ string) (string, error) {
	return "", errors.New("not implemented")
}

func TestClassifyTier(t *testing.T) {
	t.Parallel()
	tests := []struct {
		model string
		want  Tier
	}{
		{"gpt-4o-mini", TierLightweight},
		{"claude-haiku-4", TierLightweight},
		{"gemini-2.0-flash", TierLightweight},
		{"claude-opus-4", TierFlagship},
		{"gpt-4o", TierFlagship},
		{"claude-sonnet-4", TierFlagship},
		{"llama3", TierOther},
		{"", TierOther},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			t.Parallel()
			if got := ClassifyTier(tt.model); got != tt.want {
				t.Errorf("ClassifyTier(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

func TestTierString(t *testing.T) {
	t.Parallel()
	if TierLightweight.String() != "lightweight" || TierFlagship.String() != "flagship" || TierOther.String() != "other" {
		t.Error("tier names should match the selection policy vocabulary")
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("register and get are case-insensitive", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		if err := r.Register(stubClient{info: Info{ID: "GPT-4o"}}); err != nil {
			t.Fatalf("unexpected register error: %v", err)
		}
		if _, ok := r.Get("gpt-4o"); !ok {
			t.Error("expected lookup by lowercased id to succeed")
		}
		if _, ok := r.Get(" GPT-4O "); !ok {
			t.Error("expected lookup to trim and fold the id")
		}
	})

	t.Run("duplicate registration is rejected", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		if err := r.Register(stubClient{info: Info{ID: "a"}}); err != nil {
			t.Fatalf("unexpected register error: %v", err)
		}
		if err := r.Register(stubClient{info: Info{ID: "A"}}); !errors.Is(err, ErrClientRegistered) {
			t.Errorf("expected ErrClientRegistered, got %v", err)
		}
	})

	t.Run("empty id and nil client are invalid", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		if err := r.Register(stubClient{}); !errors.Is(err, ErrClientInvalid) {
			t.Errorf("expected ErrClientInvalid for empty id, got %v", err)
		}
		if err := r.Register(nil); !errors.Is(err, ErrClientInvalid) {
			t.Errorf("expected ErrClientInvalid for nil client, got %v", err)
		}
	})

	t.Run("names and all are sorted", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		for _, id := range []string{"c", "a", "b"} {
			if err := r.Register(stubClient{info: Info{ID: id}}); err != nil {
				t.Fatalf("unexpected register error: %v", err)
			}
		}
		names := r.Names()
		if len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "c" {
			t.Errorf("expected sorted names, got %v", names)
		}
		all := r.All()
		if len(all) != 3 || all[0].Identify().ID != "a" {
			t.Errorf("expected clients ordered by id, got %d entries", len(all))
		}
	})
}
