package advice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type mockProvider struct {
	msg    string
	err    error
	called bool
}

func (m *mockProvider) Generate(_ context.Context, _ Request) (string, error) {
	m.called = true
	return m.msg, m.err
}

func TestGenerator_PrimaryWins(t *testing.T) {
	primary := &mockProvider{msg: "Mooi gevonden!"}
	g := NewGenerator(primary, zap.NewNop())

	got := g.Generate(context.Background(), Request{Mode: ModeResults, ResultCount: 3})
	if got != "Mooi gevonden!" {
		t.Errorf("Generate = %q, want primary message", got)
	}
	if !primary.called {
		t.Error("primary was not called")
	}
}

func TestGenerator_FallbackOnPrimaryError(t *testing.T) {
	primary := &mockProvider{err: errors.New("provider down")}
	g := NewGenerator(primary, zap.NewNop())

	got := g.Generate(context.Background(), Request{Mode: ModeResults, ResultCount: 1})
	if got == "" {
		t.Fatal("Generate returned empty message on primary failure")
	}
	if !strings.Contains(got, "één") {
		t.Errorf("Generate = %q, want single-result template", got)
	}
}

func TestGenerator_FallbackOnEmptyPrimaryMessage(t *testing.T) {
	g := NewGenerator(&mockProvider{msg: ""}, zap.NewNop())

	if got := g.Generate(context.Background(), Request{Mode: ModeResults, ResultCount: 2}); got == "" {
		t.Error("Generate returned empty message")
	}
}

func TestGenerator_NilPrimary(t *testing.T) {
	g := NewGenerator(nil, zap.NewNop())

	got := g.Generate(context.Background(), Request{Mode: ModeEmpty, Query: "draak"})
	if got == "" {
		t.Fatal("Generate returned empty message")
	}
}

func TestFallback_Buckets(t *testing.T) {
	f := NewFallback()
	ctx := context.Background()

	one, _ := f.Generate(ctx, Request{Mode: ModeResults, ResultCount: 1})
	few, _ := f.Generate(ctx, Request{Mode: ModeResults, ResultCount: 10})
	many, _ := f.Generate(ctx, Request{Mode: ModeResults, ResultCount: 11})

	if one == few || few == many || one == many {
		t.Error("expected distinct templates per result-count bucket")
	}
	if !strings.Contains(few, "10") {
		t.Errorf("few-results template should mention the count, got %q", few)
	}
}

func TestFallback_EmptyMentionsThemes(t *testing.T) {
	f := NewFallback()

	got, err := f.Generate(context.Background(), Request{
		Mode:   ModeEmpty,
		Themes: []string{"dieren", "liefde"},
	})
	if err != nil {
		t.Fatalf("fallback returned error: %v", err)
	}
	if !strings.Contains(got, "dieren") || !strings.Contains(got, "liefde") {
		t.Errorf("empty-mode message should reference themes, got %q", got)
	}
}
