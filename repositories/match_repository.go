package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/cricboard/league-system/models"
	"github.com/lib/pq"
)

var ErrMatchNotFound = errors.New("match not found")

type ListMatchesFilter struct {
	Stage  *models.MatchStage
	Result *models.MatchResultStatus
}

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	CreateBatch(ctx context.Context, matches []*models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListBySeason(ctx context.Context, seasonNumber int, filter ListMatchesFilter) ([]*models.Match, error)
	UpdateResult(ctx context.Context, match *models.Match) error
	UpdateLiveScore(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id int) error
	DeleteBySeasonStages(ctx context.Context, seasonNumber int, stages []models.MatchStage) (int64, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `
	id, season_number, stage, group_name, team_a_id, team_b_id,
	team_a_name, team_b_name, venue, match_time, result,
	team_a_runs, team_a_wickets, team_a_overs,
	team_b_runs, team_b_wickets, team_b_overs,
	winner, margin, match_number, fixed, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, m *models.Match) error {
	query := `
		INSERT INTO matches (
			season_number, stage, group_name, team_a_id, team_b_id,
			team_a_name, team_b_name, venue, match_time, result,
			team_a_runs, team_a_wickets, team_a_overs,
			team_b_runs, team_b_wickets, team_b_overs,
			winner, margin, match_number, fixed
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		m.SeasonNumber, m.Stage, m.GroupName, m.TeamAID, m.TeamBID,
		m.TeamAName, m.TeamBName, m.Venue, m.MatchTime, m.Result,
		m.TeamAScore.Runs, m.TeamAScore.Wickets, m.TeamAScore.Overs,
		m.TeamBScore.Runs, m.TeamBScore.Wickets, m.TeamBScore.Overs,
		m.Winner, m.Margin, m.MatchNumber, m.Fixed,
	).Scan(&m.ID, &m.CreatedAt)
}

// CreateBatch inserts fixtures one by one. There is deliberately no
// surrounding transaction: the rebuild paths are idempotent-by-replacement
// and a partial batch is recovered by retrying the whole generation.
func (r *postgresMatchRepository) CreateBatch(ctx context.Context, matches []*models.Match) error {
	for _, m := range matches {
		if err := r.Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	m := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.SeasonNumber, &m.Stage, &m.GroupName, &m.TeamAID, &m.TeamBID,
		&m.TeamAName, &m.TeamBName, &m.Venue, &m.MatchTime, &m.Result,
		&m.TeamAScore.Runs, &m.TeamAScore.Wickets, &m.TeamAScore.Overs,
		&m.TeamBScore.Runs, &m.TeamBScore.Wickets, &m.TeamBScore.Overs,
		&m.Winner, &m.Margin, &m.MatchNumber, &m.Fixed, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) ListBySeason(ctx context.Context, seasonNumber int, filter ListMatchesFilter) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE season_number = $1`
	args := []interface{}{seasonNumber}
	placeholder := 2

	if filter.Stage != nil {
		query += ` AND stage = $` + strconv.Itoa(placeholder)
		args = append(args, *filter.Stage)
		placeholder++
	}
	if filter.Result != nil {
		query += ` AND result = $` + strconv.Itoa(placeholder)
		args = append(args, *filter.Result)
	}
	query += ` ORDER BY match_number, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m := &models.Match{}
		if scanErr := rows.Scan(
			&m.ID, &m.SeasonNumber, &m.Stage, &m.GroupName, &m.TeamAID, &m.TeamBID,
			&m.TeamAName, &m.TeamBName, &m.Venue, &m.MatchTime, &m.Result,
			&m.TeamAScore.Runs, &m.TeamAScore.Wickets, &m.TeamAScore.Overs,
			&m.TeamBScore.Runs, &m.TeamBScore.Wickets, &m.TeamBScore.Overs,
			&m.Winner, &m.Margin, &m.MatchNumber, &m.Fixed, &m.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, m *models.Match) error {
	query := `
		UPDATE matches SET
			team_a_runs = $1, team_a_wickets = $2, team_a_overs = $3,
			team_b_runs = $4, team_b_wickets = $5, team_b_overs = $6,
			winner = $7, margin = $8, result = $9
		WHERE id = $10`

	result, err := r.db.ExecContext(ctx, query,
		m.TeamAScore.Runs, m.TeamAScore.Wickets, m.TeamAScore.Overs,
		m.TeamBScore.Runs, m.TeamBScore.Wickets, m.TeamBScore.Overs,
		m.Winner, m.Margin, m.Result,
		m.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateLiveScore(ctx context.Context, m *models.Match) error {
	query := `
		UPDATE matches SET
			team_a_runs = $1, team_a_wickets = $2, team_a_overs = $3,
			team_b_runs = $4, team_b_wickets = $5, team_b_overs = $6,
			result = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		m.TeamAScore.Runs, m.TeamAScore.Wickets, m.TeamAScore.Overs,
		m.TeamBScore.Runs, m.TeamBScore.Wickets, m.TeamBScore.Overs,
		m.Result,
		m.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteBySeasonStages(ctx context.Context, seasonNumber int, stages []models.MatchStage) (int64, error) {
	stageNames := make([]string, len(stages))
	for i, stage := range stages {
		stageNames[i] = string(stage)
	}
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM matches WHERE season_number = $1 AND stage = ANY($2)`,
		seasonNumber, pq.Array(stageNames))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
