package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// eventRepo implements EventRepo on the llm_events table.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_events (
			id, created_at, provider, model, purpose,
			input_tokens, output_tokens, latency_ms, cost_usd,
			success, error_message, request_body, response_body
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		time.Now().UTC(),
		data.Provider,
		data.Model,
		data.Purpose,
		data.InputTokens,
		data.OutputTokens,
		data.LatencyMs,
		data.CostUSD,
		data.Success,
		data.ErrorMessage,
		data.RequestBody,
		data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("insert llm event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	query := `
		SELECT id, created_at, provider, model, purpose,
		       input_tokens, output_tokens, latency_ms, cost_usd,
		       success, error_message, request_body, response_body
		FROM llm_events WHERE 1=1`
	var args []any

	if opts.Purpose != "" {
		query += " AND purpose = ?"
		args = append(args, opts.Purpose)
	}
	if !opts.From.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, opts.From.UTC())
	}
	if !opts.To.IsZero() {
		query += " AND created_at <= ?"
		args = append(args, opts.To.UTC())
	}

	query += " ORDER BY created_at DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var events []LLMRequestEvent
	for rows.Next() {
		var e LLMRequestEvent
		if err := rows.Scan(
			&e.ID, &e.CreatedAt, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.CostUSD,
			&e.Success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
		); err != nil {
			return nil, fmt.Errorf("scan llm event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
