package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "codehub.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "openai",
		Model:        "gpt-4o",
		Purpose:      "analyze-multiple_choice",
		InputTokens:  120,
		OutputTokens: 340,
		LatencyMs:    2100,
		CostUSD:      0.0037,
		Success:      true,
		RequestBody:  `{"system":"..."}`,
		ResponseBody: `{"correctAnswer":"B"}`,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	e := events[0]
	if e.ID == "" {
		t.Error("event should get a generated id")
	}
	if e.CreatedAt.IsZero() {
		t.Error("event should get a timestamp")
	}
	if e.Provider != "openai" || e.Model != "gpt-4o" {
		t.Errorf("provider/model = %q/%q", e.Provider, e.Model)
	}
	if e.InputTokens != 120 || e.OutputTokens != 340 {
		t.Errorf("tokens = %d/%d", e.InputTokens, e.OutputTokens)
	}
	if e.CostUSD != 0.0037 {
		t.Errorf("cost = %v", e.CostUSD)
	}
	if !e.Success {
		t.Error("success flag lost")
	}
}

func TestQuery_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, purpose := range []string{"first", "second", "third"} {
		if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "mock", Model: "mock", Purpose: purpose, Success: true,
		}); err != nil {
			t.Fatalf("append %s: %v", purpose, err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].Purpose != "third" || events[2].Purpose != "first" {
		t.Errorf("events not newest-first: %s, %s, %s",
			events[0].Purpose, events[1].Purpose, events[2].Purpose)
	}
}

func TestQuery_Filters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	purposes := []string{"analyze-equation", "analyze-multiple_choice", "analyze-equation"}
	for _, p := range purposes {
		if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "mock", Model: "mock", Purpose: p, Success: true,
		}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "analyze-equation"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("purpose filter: got %d events, want 2", len(events))
	}

	events, err = repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("limit: got %d events, want 1", len(events))
	}

	events, err = repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("future From should match nothing, got %d", len(events))
	}
}

func TestQuery_FailureEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude-sonnet",
		Purpose:      "analyze-equation",
		Success:      false,
		ErrorMessage: "rate limited",
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if events[0].Success {
		t.Error("failure flag lost")
	}
	if events[0].ErrorMessage != "rate limited" {
		t.Errorf("error message = %q", events[0].ErrorMessage)
	}
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codehub.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendLLMRequest(context.Background(), LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "persist", Success: true,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	events, err := s2.EventRepo().QueryLLMEvents(context.Background(), QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events after reopen, want 1", len(events))
	}
}
