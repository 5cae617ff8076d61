package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/plantops/attendance-backend-go/internal/domain/settings"
	"github.com/plantops/attendance-backend-go/internal/pkg/database"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.Repository {
	return &settingsRepositoryImpl{db: db}
}

func (r *settingsRepositoryImpl) Get(ctx context.Context) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT attendance_admin, overtime_hourly_rate, incentive_bonus FROM settings WHERE id`

	var s settings.Settings
	err := q.QueryRow(ctx, query).Scan(&s.AttendanceAdmin, &s.OvertimeHourlyRate, &s.IncentiveBonus)
	if errors.Is(err, pgx.ErrNoRows) {
		return settings.Settings{}, settings.ErrNotConfigured
	}
	return s, err
}

func (r *settingsRepositoryImpl) Update(ctx context.Context, s settings.Settings) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE settings
		SET attendance_admin = $1, overtime_hourly_rate = $2, incentive_bonus = $3
		WHERE id
	`

	commandTag, err := q.Exec(ctx, query, s.AttendanceAdmin, s.OvertimeHourlyRate, s.IncentiveBonus)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return settings.ErrNotConfigured
	}
	return nil
}
