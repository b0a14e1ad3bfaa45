package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cricboard/league-system/models"
)

var ErrGroupScheduleNotFound = errors.New("group schedule not found")

type GroupScheduleRepository interface {
	Create(ctx context.Context, schedule *models.GroupSchedule) error
	GetBySeason(ctx context.Context, seasonNumber int) (*models.GroupSchedule, error)
	GetLatest(ctx context.Context) (*models.GroupSchedule, error)
	ExistsForSeason(ctx context.Context, seasonNumber int) (bool, error)
	DeleteBySeason(ctx context.Context, seasonNumber int) error
}

type postgresGroupScheduleRepository struct {
	db *sql.DB
}

func NewPostgresGroupScheduleRepository(db *sql.DB) GroupScheduleRepository {
	return &postgresGroupScheduleRepository{db: db}
}

func (r *postgresGroupScheduleRepository) Create(ctx context.Context, schedule *models.GroupSchedule) error {
	groupsJSON, err := json.Marshal(schedule.Groups)
	if err != nil {
		return fmt.Errorf("failed to encode groups: %w", err)
	}

	query := `
		INSERT INTO group_schedules (season_number, groups_json)
		VALUES ($1, $2)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		schedule.SeasonNumber, groupsJSON,
	).Scan(&schedule.ID, &schedule.CreatedAt)
}

func (r *postgresGroupScheduleRepository) GetBySeason(ctx context.Context, seasonNumber int) (*models.GroupSchedule, error) {
	query := `
		SELECT id, season_number, groups_json, created_at
		FROM group_schedules
		WHERE season_number = $1
		ORDER BY created_at DESC
		LIMIT 1`
	return r.scanSchedule(r.db.QueryRowContext(ctx, query, seasonNumber))
}

func (r *postgresGroupScheduleRepository) GetLatest(ctx context.Context) (*models.GroupSchedule, error) {
	query := `
		SELECT id, season_number, groups_json, created_at
		FROM group_schedules
		ORDER BY created_at DESC
		LIMIT 1`
	return r.scanSchedule(r.db.QueryRowContext(ctx, query))
}

func (r *postgresGroupScheduleRepository) scanSchedule(row *sql.Row) (*models.GroupSchedule, error) {
	schedule := &models.GroupSchedule{}
	var groupsJSON []byte
	err := row.Scan(&schedule.ID, &schedule.SeasonNumber, &groupsJSON, &schedule.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupScheduleNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(groupsJSON, &schedule.Groups); err != nil {
		return nil, fmt.Errorf("failed to decode schedule %d groups: %w", schedule.ID, err)
	}
	return schedule, nil
}

func (r *postgresGroupScheduleRepository) ExistsForSeason(ctx context.Context, seasonNumber int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM group_schedules WHERE season_number = $1)`,
		seasonNumber,
	).Scan(&exists)
	return exists, err
}

// DeleteBySeason is idempotent: deleting an absent schedule is not an error.
func (r *postgresGroupScheduleRepository) DeleteBySeason(ctx context.Context, seasonNumber int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM group_schedules WHERE season_number = $1`, seasonNumber)
	return err
}
