package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/cricboard/league-system/models"
	"github.com/cricboard/league-system/repositories"
	"github.com/cricboard/league-system/storage"
	"github.com/cricboard/league-system/utils"
)

// LogoUpload wraps the multipart file stream from a registration request.
type LogoUpload struct {
	Reader      io.Reader
	ContentType string
}

// RegisterTeamInput is a team entry submitted before the season deadline.
type RegisterTeamInput struct {
	SeasonNumber int      `json:"season_number"`
	Name         string   `json:"name"`
	PlayerNames  []string `json:"player_names"`
	Logo         *LogoUpload
}

type TeamService interface {
	// Register creates a pending team with its roster. The short code is
	// derived from the generated id and written back after the insert.
	Register(ctx context.Context, input RegisterTeamInput) (*models.Team, error)

	// Approve and Reject move a pending team out of review. Any other
	// starting status is refused.
	Approve(ctx context.Context, id int) (*models.Team, error)
	Reject(ctx context.Context, id int) (*models.Team, error)

	// BindRosterSlot attaches a verified player's code to one roster slot.
	// The code must belong to an existing player account.
	BindRosterSlot(ctx context.Context, teamID, slotNo int, playerCode string) (*models.Team, error)

	GetTeam(ctx context.Context, id int) (*models.Team, error)
	ListSeasonTeams(ctx context.Context, seasonNumber int, status *models.TeamStatus) ([]models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	userRepo repositories.UserRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewTeamService(teamRepo repositories.TeamRepository, userRepo repositories.UserRepository, uploader storage.FileUploader, logger *slog.Logger) TeamService {
	return &teamService{teamRepo: teamRepo, userRepo: userRepo, uploader: uploader, logger: logger}
}

func (s *teamService) Register(ctx context.Context, input RegisterTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	var logoKey *string
	if input.Logo != nil {
		if s.uploader == nil {
			return nil, ErrUploadsUnavailable
		}
		key := "team-logos/" + uuid.NewString() + getExtensionFromContentType(input.Logo.ContentType)
		if _, err := s.uploader.Upload(ctx, key, input.Logo.ContentType, input.Logo.Reader); err != nil {
			return nil, fmt.Errorf("failed to upload team logo: %w", err)
		}
		logoKey = &key
	}

	team := &models.Team{
		SeasonNumber: input.SeasonNumber,
		Name:         name,
		Status:       models.TeamStatusPending,
		LogoKey:      logoKey,
	}
	for _, playerName := range input.PlayerNames {
		playerName = strings.TrimSpace(playerName)
		if playerName == "" {
			continue
		}
		team.Roster = append(team.Roster, models.RosterSlot{PlayerName: playerName})
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to register team: %w", err)
	}

	team.ShortCode = utils.TeamShortCode(team.ID)
	if err := s.teamRepo.UpdateShortCode(ctx, team.ID, team.ShortCode); err != nil {
		return nil, fmt.Errorf("failed to assign team %d short code: %w", team.ID, err)
	}

	if team.LogoKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*team.LogoKey)
		team.LogoURL = &url
	}

	s.logger.Info("team registered",
		slog.Int("team_id", team.ID),
		slog.Int("season", team.SeasonNumber),
		slog.String("name", team.Name))
	return team, nil
}

func (s *teamService) Approve(ctx context.Context, id int) (*models.Team, error) {
	return s.transition(ctx, id, models.TeamStatusApproved)
}

func (s *teamService) Reject(ctx context.Context, id int) (*models.Team, error) {
	return s.transition(ctx, id, models.TeamStatusRejected)
}

func (s *teamService) transition(ctx context.Context, id int, to models.TeamStatus) (*models.Team, error) {
	team, err := s.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	if team.Status != models.TeamStatusPending {
		return nil, ErrInvalidTeamStatusChange
	}
	if err := s.teamRepo.UpdateStatus(ctx, id, to); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	team.Status = to
	return team, nil
}

func (s *teamService) BindRosterSlot(ctx context.Context, teamID, slotNo int, playerCode string) (*models.Team, error) {
	code := strings.ToUpper(strings.TrimSpace(playerCode))
	if code == "" {
		return nil, ErrPlayerCodeUnknown
	}

	player, err := s.userRepo.GetByPlayerCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrPlayerCodeUnknown
		}
		return nil, err
	}
	if player.Role != models.RolePlayer {
		return nil, ErrPlayerCodeUnknown
	}

	if err := s.teamRepo.BindRosterSlot(ctx, teamID, slotNo, code); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRosterSlotNotFound):
			return nil, ErrRosterSlotNotFound
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to bind roster slot %d of team %d: %w", slotNo, teamID, err)
	}

	s.logger.Info("roster slot bound",
		slog.Int("team_id", teamID),
		slog.Int("slot_no", slotNo),
		slog.String("player_code", code))
	return s.GetTeam(ctx, teamID)
}

func (s *teamService) GetTeam(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if team.LogoKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*team.LogoKey)
		team.LogoURL = &url
	}
	return team, nil
}

func (s *teamService) ListSeasonTeams(ctx context.Context, seasonNumber int, status *models.TeamStatus) ([]models.Team, error) {
	teams, err := s.teamRepo.ListBySeason(ctx, seasonNumber, status)
	if err != nil {
		return nil, err
	}
	if s.uploader != nil {
		for i := range teams {
			if teams[i].LogoKey != nil {
				url := s.uploader.GetPublicURL(*teams[i].LogoKey)
				teams[i].LogoURL = &url
			}
		}
	}
	return teams, nil
}

func getExtensionFromContentType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	default:
		return ""
	}
}
