package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const drawingColumns = `id, user_id, scene_json, input_type, text_content, ai_insight, created_at`

func scanDrawing(row pgx.Row) (*Drawing, error) {
	var d Drawing
	var scene []byte
	if err := row.Scan(&d.ID, &d.UserID, &scene, &d.InputType, &d.TextContent, &d.AIInsight, &d.CreatedAt); err != nil {
		return nil, err
	}
	if len(scene) > 0 {
		d.SceneJSON = json.RawMessage(scene)
	}
	return &d, nil
}

// CreateDrawing inserts a drawing or text capture. An empty scene is stored as NULL.
func (db *DB) CreateDrawing(ctx context.Context, userID string, scene json.RawMessage, inputType string, textContent *string) (*Drawing, error) {
	var sceneParam any
	if len(scene) > 0 {
		sceneParam = string(scene)
	}
	d, err := scanDrawing(db.pool.QueryRow(ctx,
		`INSERT INTO drawings (user_id, scene_json, input_type, text_content)
		 VALUES ($1, $2::jsonb, $3, $4)
		 RETURNING `+drawingColumns,
		userID, sceneParam, inputType, textContent,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create drawing: %w", err)
	}
	return d, nil
}

// SetDrawingInsight stores the AI insight for a drawing.
func (db *DB) SetDrawingInsight(ctx context.Context, id uuid.UUID, insight string) error {
	_, err := db.pool.Exec(ctx, `UPDATE drawings SET ai_insight = $1 WHERE id = $2`, insight, id)
	if err != nil {
		return fmt.Errorf("failed to update drawing insight: %w", err)
	}
	return nil
}

// ListDrawings returns all of a user's drawings, newest first.
func (db *DB) ListDrawings(ctx context.Context, userID string) ([]Drawing, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+drawingColumns+` FROM drawings WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list drawings: %w", err)
	}
	defer rows.Close()

	var drawings []Drawing
	for rows.Next() {
		d, err := scanDrawing(rows)
		if err != nil {
			return nil, err
		}
		drawings = append(drawings, *d)
	}
	return drawings, rows.Err()
}
