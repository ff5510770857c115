package repositories

import (
	"context"
	"fmt"

	"apartment-backend/internal/db"
	"apartment-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LoginLogRepository struct {
	DB *pgxpool.Pool
}

func NewLoginLogRepository(pool *pgxpool.Pool) *LoginLogRepository {
	return &LoginLogRepository{DB: pool}
}

// CreateLoginLog records a new login event
func (r *LoginLogRepository) CreateLoginLog(ctx context.Context, username, ipAddress, userAgent string) (int, error) {
	query := `
		INSERT INTO login_logs (username, login_time, ip_address, user_agent)
		VALUES ($1, NOW(), $2, $3)
		RETURNING id
	`

	var logID int
	err := db.Conn(ctx, r.DB).QueryRow(ctx, query, username, ipAddress, userAgent).Scan(&logID)
	if err != nil {
		return 0, fmt.Errorf("insert login log: %w", err)
	}

	return logID, nil
}

// ListRecent returns the latest login events, newest first
func (r *LoginLogRepository) ListRecent(ctx context.Context, limit int) ([]*models.LoginLog, error) {
	query := `
		SELECT id, username, login_time, ip_address, user_agent
		FROM login_logs
		ORDER BY login_time DESC
		LIMIT $1
	`

	rows, err := db.Conn(ctx, r.DB).Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list login logs: %w", err)
	}
	defer rows.Close()

	logs := []*models.LoginLog{}
	for rows.Next() {
		var l models.LoginLog
		if err := rows.Scan(&l.ID, &l.Username, &l.LoginTime, &l.IPAddress, &l.UserAgent); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
