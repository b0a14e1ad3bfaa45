package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cricboard/league-system/models"
	"github.com/lib/pq"
)

var (
	ErrSeasonNotFound       = errors.New("season not found")
	ErrSeasonNumberConflict = errors.New("season number already exists")
)

type SeasonRepository interface {
	Create(ctx context.Context, season *models.Season) error
	GetByID(ctx context.Context, id int) (*models.Season, error)
	GetByNumber(ctx context.Context, seasonNumber int) (*models.Season, error)
	List(ctx context.Context) ([]models.Season, error)
	NextSeasonNumber(ctx context.Context) (int, error)
	SetCurrent(ctx context.Context, seasonNumber int) error
	UpdateScheduleTime(ctx context.Context, seasonNumber int, at time.Time) error
	UpdateGroups(ctx context.Context, seasonNumber int, groups []models.Group) error
	UpdateParticipants(ctx context.Context, seasonNumber int, participants []string, matchIDs []int64) error
	ListDueForScheduling(ctx context.Context, now time.Time, deadlineGrace time.Duration) ([]models.Season, error)
	Delete(ctx context.Context, seasonNumber int) error
}

type postgresSeasonRepository struct {
	db *sql.DB
}

func NewPostgresSeasonRepository(db *sql.DB) SeasonRepository {
	return &postgresSeasonRepository{db: db}
}

const seasonColumns = `id, season_number, entry_deadline, is_current, schedule_generation_time, groups_json, participants, match_ids, created_at`

func (r *postgresSeasonRepository) Create(ctx context.Context, s *models.Season) error {
	query := `
		INSERT INTO seasons (season_number, entry_deadline, is_current)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		s.SeasonNumber, s.EntryDeadline, s.IsCurrent,
	).Scan(&s.ID, &s.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return ErrSeasonNumberConflict
	}
	return err
}

func (r *postgresSeasonRepository) GetByID(ctx context.Context, id int) (*models.Season, error) {
	query := `SELECT ` + seasonColumns + ` FROM seasons WHERE id = $1`
	return r.scanSeason(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresSeasonRepository) GetByNumber(ctx context.Context, seasonNumber int) (*models.Season, error) {
	query := `SELECT ` + seasonColumns + ` FROM seasons WHERE season_number = $1`
	return r.scanSeason(r.db.QueryRowContext(ctx, query, seasonNumber))
}

func (r *postgresSeasonRepository) scanSeason(row *sql.Row) (*models.Season, error) {
	s := &models.Season{}
	var groupsJSON []byte
	err := row.Scan(
		&s.ID, &s.SeasonNumber, &s.EntryDeadline, &s.IsCurrent,
		&s.ScheduleGenerationTime, &groupsJSON,
		pq.Array(&s.Participants), pq.Array(&s.MatchIDs), &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}
	if len(groupsJSON) > 0 {
		if err := json.Unmarshal(groupsJSON, &s.Groups); err != nil {
			return nil, fmt.Errorf("failed to decode season %d groups: %w", s.SeasonNumber, err)
		}
	}
	return s, nil
}

func (r *postgresSeasonRepository) List(ctx context.Context) ([]models.Season, error) {
	query := `SELECT ` + seasonColumns + ` FROM seasons ORDER BY season_number DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seasons := make([]models.Season, 0)
	for rows.Next() {
		var s models.Season
		var groupsJSON []byte
		if scanErr := rows.Scan(
			&s.ID, &s.SeasonNumber, &s.EntryDeadline, &s.IsCurrent,
			&s.ScheduleGenerationTime, &groupsJSON,
			pq.Array(&s.Participants), pq.Array(&s.MatchIDs), &s.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		if len(groupsJSON) > 0 {
			if err := json.Unmarshal(groupsJSON, &s.Groups); err != nil {
				return nil, fmt.Errorf("failed to decode season %d groups: %w", s.SeasonNumber, err)
			}
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

func (r *postgresSeasonRepository) NextSeasonNumber(ctx context.Context) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(season_number), 0) + 1 FROM seasons`,
	).Scan(&next)
	return next, err
}

// SetCurrent clears the flag on every season and sets it on the given one in
// a single transaction, so at most one season is ever current.
func (r *postgresSeasonRepository) SetCurrent(ctx context.Context, seasonNumber int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE seasons SET is_current = FALSE WHERE is_current`); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx,
		`UPDATE seasons SET is_current = TRUE WHERE season_number = $1`, seasonNumber)
	if err != nil {
		return err
	}
	if err := checkAffectedRows(result, ErrSeasonNotFound); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresSeasonRepository) UpdateScheduleTime(ctx context.Context, seasonNumber int, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE seasons SET schedule_generation_time = $1 WHERE season_number = $2`,
		at, seasonNumber)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSeasonNotFound)
}

func (r *postgresSeasonRepository) UpdateGroups(ctx context.Context, seasonNumber int, groups []models.Group) error {
	groupsJSON, err := json.Marshal(groups)
	if err != nil {
		return fmt.Errorf("failed to encode groups: %w", err)
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE seasons SET groups_json = $1 WHERE season_number = $2`,
		groupsJSON, seasonNumber)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSeasonNotFound)
}

func (r *postgresSeasonRepository) UpdateParticipants(ctx context.Context, seasonNumber int, participants []string, matchIDs []int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE seasons SET participants = $1, match_ids = $2 WHERE season_number = $3`,
		pq.Array(participants), pq.Array(matchIDs), seasonNumber)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSeasonNotFound)
}

// ListDueForScheduling selects seasons whose operator-set generation time has
// passed, or, absent an override, whose entry deadline passed more than the
// grace period ago.
func (r *postgresSeasonRepository) ListDueForScheduling(ctx context.Context, now time.Time, deadlineGrace time.Duration) ([]models.Season, error) {
	query := `
		SELECT ` + seasonColumns + `
		FROM seasons
		WHERE (schedule_generation_time IS NOT NULL AND schedule_generation_time <= $1)
		   OR (schedule_generation_time IS NULL AND entry_deadline <= $2)
		ORDER BY season_number`

	rows, err := r.db.QueryContext(ctx, query, now, now.Add(-deadlineGrace))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seasons := make([]models.Season, 0)
	for rows.Next() {
		var s models.Season
		var groupsJSON []byte
		if scanErr := rows.Scan(
			&s.ID, &s.SeasonNumber, &s.EntryDeadline, &s.IsCurrent,
			&s.ScheduleGenerationTime, &groupsJSON,
			pq.Array(&s.Participants), pq.Array(&s.MatchIDs), &s.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

func (r *postgresSeasonRepository) Delete(ctx context.Context, seasonNumber int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM seasons WHERE season_number = $1`, seasonNumber)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSeasonNotFound)
}
