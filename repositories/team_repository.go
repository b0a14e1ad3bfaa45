package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cricboard/league-system/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrTeamCodeConflict   = errors.New("team short code already exists")
	ErrRosterSlotNotFound = errors.New("roster slot not found")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListBySeason(ctx context.Context, seasonNumber int, status *models.TeamStatus) ([]models.Team, error)
	UpdateStatus(ctx context.Context, id int, status models.TeamStatus) error
	UpdateShortCode(ctx context.Context, id int, shortCode string) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	BindRosterSlot(ctx context.Context, teamID, slotNo int, playerCode string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

// Create inserts the team and its roster slots. The short code is assigned
// afterwards by the service, once the generated id is known.
func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO teams (season_number, name, short_code, status, logo_key)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)
		RETURNING id, created_at`

	err = tx.QueryRowContext(ctx, query,
		team.SeasonNumber, team.Name, team.ShortCode, team.Status, team.LogoKey,
	).Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrTeamCodeConflict
		}
		return err
	}

	for i := range team.Roster {
		slot := &team.Roster[i]
		slot.TeamID = team.ID
		slot.SlotNo = i + 1
		if err := insertRosterSlot(ctx, tx, slot); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertRosterSlot(ctx context.Context, exec SQLExecutor, slot *models.RosterSlot) error {
	return exec.QueryRowContext(ctx,
		`INSERT INTO team_players (team_id, slot_no, player_name, player_code)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		slot.TeamID, slot.SlotNo, slot.PlayerName, slot.PlayerCode,
	).Scan(&slot.ID)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, season_number, name, COALESCE(short_code, ''), status, logo_key, created_at
		FROM teams
		WHERE id = $1`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID, &team.SeasonNumber, &team.Name, &team.ShortCode,
		&team.Status, &team.LogoKey, &team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	roster, err := r.loadRoster(ctx, id)
	if err != nil {
		return nil, err
	}
	team.Roster = roster
	return team, nil
}

func (r *postgresTeamRepository) loadRoster(ctx context.Context, teamID int) ([]models.RosterSlot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, team_id, slot_no, player_name, player_code
		 FROM team_players WHERE team_id = $1 ORDER BY slot_no`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roster := make([]models.RosterSlot, 0)
	for rows.Next() {
		var slot models.RosterSlot
		if scanErr := rows.Scan(&slot.ID, &slot.TeamID, &slot.SlotNo, &slot.PlayerName, &slot.PlayerCode); scanErr != nil {
			return nil, scanErr
		}
		roster = append(roster, slot)
	}
	return roster, rows.Err()
}

func (r *postgresTeamRepository) ListBySeason(ctx context.Context, seasonNumber int, status *models.TeamStatus) ([]models.Team, error) {
	query := `
		SELECT id, season_number, name, COALESCE(short_code, ''), status, logo_key, created_at
		FROM teams
		WHERE season_number = $1`
	args := []interface{}{seasonNumber}

	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		if scanErr := rows.Scan(
			&team.ID, &team.SeasonNumber, &team.Name, &team.ShortCode,
			&team.Status, &team.LogoKey, &team.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) UpdateStatus(ctx context.Context, id int, status models.TeamStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateShortCode(ctx context.Context, id int, shortCode string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET short_code = $1 WHERE id = $2`, shortCode, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) BindRosterSlot(ctx context.Context, teamID, slotNo int, playerCode string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE team_players SET player_code = $1 WHERE team_id = $2 AND slot_no = $3`,
		playerCode, teamID, slotNo)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRosterSlotNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET logo_key = $1 WHERE id = $2`, logoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
