package providers

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"feed-beep/models"
)

type stubProvider struct {
	name  string
	items []models.RawItem
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Fetch(context.Context, []string, string) ([]models.RawItem, error) {
	s.calls++
	return s.items, s.err
}

func TestChainFirstSuccessWins(t *testing.T) {
	primary := &stubProvider{name: "primary", items: []models.RawItem{{Title: "from primary"}}}
	secondary := &stubProvider{name: "secondary", items: []models.RawItem{{Title: "from secondary"}}}
	chain := NewChain(zap.NewNop(), primary, secondary)

	items, err := chain.Fetch(context.Background(), []string{"tech"}, "en")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(items) != 1 || items[0].Title != "from primary" {
		t.Errorf("items = %v, want primary result", items)
	}
	if secondary.calls != 0 {
		t.Errorf("secondary called %d times, want 0", secondary.calls)
	}
}

func TestChainFallsBackOnError(t *testing.T) {
	primary := &stubProvider{name: "primary", err: errors.New("rate limited")}
	secondary := &stubProvider{name: "secondary", items: []models.RawItem{{Title: "from secondary"}}}
	chain := NewChain(zap.NewNop(), primary, secondary)

	items, err := chain.Fetch(context.Background(), []string{"tech"}, "en")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(items) != 1 || items[0].Title != "from secondary" {
		t.Errorf("items = %v, want secondary result", items)
	}
}

func TestChainEmptyResultIsSuccess(t *testing.T) {
	primary := &stubProvider{name: "primary"}
	secondary := &stubProvider{name: "secondary", items: []models.RawItem{{Title: "unused"}}}
	chain := NewChain(zap.NewNop(), primary, secondary)

	items, err := chain.Fetch(context.Background(), []string{"tech"}, "en")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %v, want empty slice from primary", items)
	}
	if secondary.calls != 0 {
		t.Errorf("secondary called %d times after empty success, want 0", secondary.calls)
	}
}

func TestChainAllProvidersFail(t *testing.T) {
	primary := &stubProvider{name: "primary", err: errors.New("down")}
	secondary := &stubProvider{name: "secondary", err: errors.New("also down")}
	chain := NewChain(zap.NewNop(), primary, secondary)

	_, err := chain.Fetch(context.Background(), []string{"tech"}, "en")
	if err == nil {
		t.Fatal("Fetch succeeded with every provider failing")
	}
}
