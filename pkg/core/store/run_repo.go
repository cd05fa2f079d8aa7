package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"three_statements/pkg/models"
)

// RunRepository is the persistence boundary for run archives. The pipeline
// never depends on it; archiving is a caller decision.
type RunRepository interface {
	Save(ctx context.Context, result *models.RunResult) error
	Load(ctx context.Context, runID string) (*models.RunResult, error)
	Recent(ctx context.Context, limit int) ([]RunHeader, error)
}

// RunHeader is the listing row for archived runs.
type RunHeader struct {
	RunID     string    `json:"run_id"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// RunRepo archives run results as JSONB blobs keyed by run ID.
//
// Schema assumption:
// CREATE TABLE IF NOT EXISTS engine_runs (
//   run_id TEXT PRIMARY KEY,
//   state TEXT,
//   result_json JSONB,
//   created_at TIMESTAMPTZ
// );
type RunRepo struct{}

// NewRunRepo creates a new repository instance.
func NewRunRepo() *RunRepo {
	return &RunRepo{}
}

// Save upserts the full run bundle keyed by run ID.
func (r *RunRepo) Save(ctx context.Context, result *models.RunResult) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal run %s: %w", result.RunID, err)
	}

	query := `
		INSERT INTO engine_runs (run_id, state, result_json, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (run_id)
		DO UPDATE SET
			state = EXCLUDED.state,
			result_json = EXCLUDED.result_json;
	`

	_, err = pool.Exec(ctx, query, result.RunID, string(result.State), jsonData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", result.RunID, err)
	}
	return nil
}

// Load retrieves one archived run by ID.
func (r *RunRepo) Load(ctx context.Context, runID string) (*models.RunResult, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT result_json FROM engine_runs WHERE run_id = $1`

	var jsonData []byte
	err := pool.QueryRow(ctx, query, runID).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no run found with id %s", runID)
		}
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}

	var result models.RunResult
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run %s: %w", runID, err)
	}
	return &result, nil
}

// Recent lists the newest archived runs, most recent first.
func (r *RunRepo) Recent(ctx context.Context, limit int) ([]RunHeader, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT run_id, state, created_at FROM engine_runs ORDER BY created_at DESC LIMIT $1`

	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var headers []RunHeader
	for rows.Next() {
		var h RunHeader
		if err := rows.Scan(&h.RunID, &h.State, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run header: %w", err)
		}
		headers = append(headers, h)
	}
	return headers, rows.Err()
}
