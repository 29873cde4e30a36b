package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const alertColumns = `id, user_id, type, source, message, severity, acknowledged, created_at`

func scanAlert(row pgx.Row) (*RiskAlert, error) {
	var a RiskAlert
	if err := row.Scan(&a.ID, &a.UserID, &a.Type, &a.Source, &a.Message, &a.Severity, &a.Acknowledged, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateRiskAlert inserts an alert for userID.
func (db *DB) CreateRiskAlert(ctx context.Context, userID, alertType, source, message, severity string) (*RiskAlert, error) {
	a, err := scanAlert(db.pool.QueryRow(ctx,
		`INSERT INTO risk_alerts (user_id, type, source, message, severity)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+alertColumns,
		userID, alertType, source, message, severity,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create risk alert: %w", err)
	}
	return a, nil
}

func (db *DB) listAlerts(ctx context.Context, query string, args ...any) ([]RiskAlert, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list risk alerts: %w", err)
	}
	defer rows.Close()

	var alerts []RiskAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, *a)
	}
	return alerts, rows.Err()
}

// ListRiskAlerts returns one page of the user's alerts, newest first, plus the total count.
func (db *DB) ListRiskAlerts(ctx context.Context, userID string, limit, offset int) ([]RiskAlert, int, error) {
	var total int
	if err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM risk_alerts WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count risk alerts: %w", err)
	}

	alerts, err := db.listAlerts(ctx,
		`SELECT `+alertColumns+` FROM risk_alerts
		 WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	return alerts, total, nil
}

// ListUnacknowledgedAlerts returns the user's open alerts, newest first.
func (db *DB) ListUnacknowledgedAlerts(ctx context.Context, userID string) ([]RiskAlert, error) {
	return db.listAlerts(ctx,
		`SELECT `+alertColumns+` FROM risk_alerts
		 WHERE user_id = $1 AND acknowledged = FALSE ORDER BY created_at DESC`,
		userID,
	)
}

// AcknowledgeAlert flips acknowledged on one of the user's alerts. It returns
// nil, nil when the alert does not exist or belongs to another user.
func (db *DB) AcknowledgeAlert(ctx context.Context, userID string, id uuid.UUID) (*RiskAlert, error) {
	a, err := scanAlert(db.pool.QueryRow(ctx,
		`UPDATE risk_alerts SET acknowledged = TRUE
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+alertColumns,
		id, userID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to acknowledge alert: %w", err)
	}
	return a, nil
}

// HasOpenAlertSince reports whether the user has an unacknowledged alert of
// alertType created at or after since.
func (db *DB) HasOpenAlertSince(ctx context.Context, userID, alertType string, since time.Time) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM risk_alerts
		   WHERE user_id = $1 AND type = $2 AND acknowledged = FALSE AND created_at >= $3
		 )`,
		userID, alertType, since,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check open alerts: %w", err)
	}
	return exists, nil
}
