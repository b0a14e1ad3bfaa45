package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/cricboard/league-system/league"
	"github.com/cricboard/league-system/models"
	"github.com/cricboard/league-system/repositories"
)

// allStages covers every stage wiped by a destructive schedule rebuild.
var allStages = []models.MatchStage{models.StageLeague, models.StagePlayoff, models.StageFinal}

type ScheduleService interface {
	// GenerateGroups partitions a season's approved teams into groups,
	// replacing any prior schedule and every existing match of the season.
	GenerateGroups(ctx context.Context, seasonNumber int) (*models.GroupSchedule, *models.Season, error)

	// GenerateGroupsIfMissing is the auto-trigger entry point: it generates
	// groups only when the season has none yet, and reports whether it did.
	GenerateGroupsIfMissing(ctx context.Context, seasonNumber int) (bool, error)

	// DeleteGroups removes the season's schedule and its denormalized copy.
	// Deleting an absent schedule succeeds.
	DeleteGroups(ctx context.Context, seasonNumber int) error

	GetSeasonSchedule(ctx context.Context, seasonNumber int) (*models.GroupSchedule, error)
	GetLatestSchedule(ctx context.Context) (*models.GroupSchedule, error)
}

type scheduleService struct {
	seasonRepo   repositories.SeasonRepository
	teamRepo     repositories.TeamRepository
	scheduleRepo repositories.GroupScheduleRepository
	matchRepo    repositories.MatchRepository
	newRNG       func() *rand.Rand
	logger       *slog.Logger
}

func NewScheduleService(
	seasonRepo repositories.SeasonRepository,
	teamRepo repositories.TeamRepository,
	scheduleRepo repositories.GroupScheduleRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) ScheduleService {
	return &scheduleService{
		seasonRepo:   seasonRepo,
		teamRepo:     teamRepo,
		scheduleRepo: scheduleRepo,
		matchRepo:    matchRepo,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		logger: logger,
	}
}

func (s *scheduleService) GenerateGroups(ctx context.Context, seasonNumber int) (*models.GroupSchedule, *models.Season, error) {
	season, err := s.seasonRepo.GetByNumber(ctx, seasonNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return nil, nil, ErrSeasonNotFound
		}
		return nil, nil, fmt.Errorf("failed to load season %d: %w", seasonNumber, err)
	}

	approved := models.TeamStatusApproved
	teams, err := s.teamRepo.ListBySeason(ctx, seasonNumber, &approved)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list approved teams for season %d: %w", seasonNumber, err)
	}

	// Checked before any mutation so a failed precondition has no side
	// effects.
	groups, err := league.PartitionTeams(teams, s.newRNG())
	if err != nil {
		if errors.Is(err, league.ErrNotEnoughTeams) {
			return nil, nil, ErrInsufficientParticipants
		}
		return nil, nil, err
	}

	// Destructive replacement: prior schedule and every match of the season
	// go first. The steps are not wrapped in a transaction; a mid-sequence
	// failure is recovered by retrying the whole generation.
	if _, err := s.matchRepo.DeleteBySeasonStages(ctx, seasonNumber, allStages); err != nil {
		return nil, nil, fmt.Errorf("failed to delete matches for season %d: %w", seasonNumber, err)
	}
	if err := s.scheduleRepo.DeleteBySeason(ctx, seasonNumber); err != nil {
		return nil, nil, fmt.Errorf("failed to delete prior schedule for season %d: %w", seasonNumber, err)
	}

	schedule := &models.GroupSchedule{
		SeasonNumber: seasonNumber,
		Groups:       groups,
	}
	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, nil, fmt.Errorf("failed to persist schedule for season %d: %w", seasonNumber, err)
	}
	if err := s.seasonRepo.UpdateGroups(ctx, seasonNumber, groups); err != nil {
		return nil, nil, fmt.Errorf("failed to update season %d groups: %w", seasonNumber, err)
	}
	season.Groups = groups

	s.logger.Info("group schedule generated",
		slog.Int("season", seasonNumber),
		slog.Int("teams", len(teams)),
		slog.Int("groups", len(groups)))

	return schedule, season, nil
}

func (s *scheduleService) GenerateGroupsIfMissing(ctx context.Context, seasonNumber int) (bool, error) {
	exists, err := s.scheduleRepo.ExistsForSeason(ctx, seasonNumber)
	if err != nil {
		return false, fmt.Errorf("failed to check schedule for season %d: %w", seasonNumber, err)
	}
	if exists {
		return false, nil
	}
	if _, _, err := s.GenerateGroups(ctx, seasonNumber); err != nil {
		return false, err
	}
	return true, nil
}

func (s *scheduleService) DeleteGroups(ctx context.Context, seasonNumber int) error {
	if err := s.scheduleRepo.DeleteBySeason(ctx, seasonNumber); err != nil {
		return fmt.Errorf("failed to delete schedule for season %d: %w", seasonNumber, err)
	}
	if err := s.seasonRepo.UpdateGroups(ctx, seasonNumber, nil); err != nil {
		// Deleting groups of an unknown season is still a successful no-op.
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return nil
		}
		return fmt.Errorf("failed to clear season %d groups: %w", seasonNumber, err)
	}
	return nil
}

func (s *scheduleService) GetSeasonSchedule(ctx context.Context, seasonNumber int) (*models.GroupSchedule, error) {
	schedule, err := s.scheduleRepo.GetBySeason(ctx, seasonNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return schedule, nil
}

func (s *scheduleService) GetLatestSchedule(ctx context.Context) (*models.GroupSchedule, error) {
	schedule, err := s.scheduleRepo.GetLatest(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return schedule, nil
}
