package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cricboard/league-system/league"
	"github.com/cricboard/league-system/models"
	"github.com/cricboard/league-system/repositories"
)

// defaultVenue is the placeholder recorded on generated fixtures until an
// operator assigns a real ground.
const defaultVenue = "TBD"

type FixtureService interface {
	// GenerateLeagueMatches rebuilds the season's league fixtures from its
	// current group schedule. Every existing league/playoff/final match is
	// deleted first; the returned count is the number of fixtures created.
	GenerateLeagueMatches(ctx context.Context, seasonRef string) (int, *models.Season, error)

	// DeleteSeasonMatches removes every match of the season and reports how
	// many were deleted.
	DeleteSeasonMatches(ctx context.Context, seasonNumber int) (int64, error)
}

type fixtureService struct {
	seasonRepo   repositories.SeasonRepository
	teamRepo     repositories.TeamRepository
	scheduleRepo repositories.GroupScheduleRepository
	matchRepo    repositories.MatchRepository
	now          func() time.Time
	logger       *slog.Logger
}

func NewFixtureService(
	seasonRepo repositories.SeasonRepository,
	teamRepo repositories.TeamRepository,
	scheduleRepo repositories.GroupScheduleRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) FixtureService {
	return &fixtureService{
		seasonRepo:   seasonRepo,
		teamRepo:     teamRepo,
		scheduleRepo: scheduleRepo,
		matchRepo:    matchRepo,
		now:          time.Now,
		logger:       logger,
	}
}

// resolveSeason accepts either a season number or an internal season id.
func (s *fixtureService) resolveSeason(ctx context.Context, seasonRef string) (*models.Season, error) {
	ref, err := strconv.Atoi(seasonRef)
	if err != nil {
		return nil, ErrSeasonNotFound
	}
	season, err := s.seasonRepo.GetByNumber(ctx, ref)
	if err == nil {
		return season, nil
	}
	if !errors.Is(err, repositories.ErrSeasonNotFound) {
		return nil, err
	}
	season, err = s.seasonRepo.GetByID(ctx, ref)
	if err != nil {
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}
	return season, nil
}

func (s *fixtureService) GenerateLeagueMatches(ctx context.Context, seasonRef string) (int, *models.Season, error) {
	season, err := s.resolveSeason(ctx, seasonRef)
	if err != nil {
		return 0, nil, err
	}
	seasonNumber := season.SeasonNumber

	schedule, err := s.scheduleRepo.GetBySeason(ctx, seasonNumber)
	if err != nil && !errors.Is(err, repositories.ErrGroupScheduleNotFound) {
		return 0, nil, fmt.Errorf("failed to load schedule for season %d: %w", seasonNumber, err)
	}

	approved := models.TeamStatusApproved
	approvedTeams, err := s.teamRepo.ListBySeason(ctx, seasonNumber, &approved)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list approved teams for season %d: %w", seasonNumber, err)
	}
	approvedByID := make(map[int]models.Team, len(approvedTeams))
	for _, team := range approvedTeams {
		approvedByID[team.ID] = team
	}

	// Full rebuild: the old batch goes before the new one is written. Not
	// transactional; a failure between the two steps leaves the season with
	// zero fixtures, recovered by retrying the generation.
	if _, err := s.matchRepo.DeleteBySeasonStages(ctx, seasonNumber, allStages); err != nil {
		return 0, nil, fmt.Errorf("failed to delete prior matches for season %d: %w", seasonNumber, err)
	}

	var (
		matches      []*models.Match
		participants []string
	)
	if schedule != nil && len(schedule.Groups) > 0 {
		// Only teams still approved at generation time get fixtures; teams
		// rejected after grouping silently fall out.
		filtered := make([]models.Group, 0, len(schedule.Groups))
		for _, group := range schedule.Groups {
			kept := models.Group{GroupName: group.GroupName}
			for _, gt := range group.Teams {
				if _, ok := approvedByID[gt.TeamID]; ok {
					kept.Teams = append(kept.Teams, gt)
					participants = append(participants, gt.TeamName)
				}
			}
			filtered = append(filtered, kept)
		}
		matches = league.LeagueFixtures(seasonNumber, filtered, s.now(), defaultVenue)
		if err := s.matchRepo.CreateBatch(ctx, matches); err != nil {
			return 0, nil, fmt.Errorf("failed to create fixtures for season %d: %w", seasonNumber, err)
		}
	} else {
		// No groups: record the approved roster only, with zero fixtures.
		for _, team := range approvedTeams {
			participants = append(participants, team.Name)
		}
	}

	matchIDs := make([]int64, len(matches))
	for i, m := range matches {
		matchIDs[i] = int64(m.ID)
	}
	if err := s.seasonRepo.UpdateParticipants(ctx, seasonNumber, dedupe(participants), matchIDs); err != nil {
		return 0, nil, fmt.Errorf("failed to update season %d participants: %w", seasonNumber, err)
	}

	s.logger.Info("league fixtures generated",
		slog.Int("season", seasonNumber),
		slog.Int("matches", len(matches)))

	return len(matches), season, nil
}

func (s *fixtureService) DeleteSeasonMatches(ctx context.Context, seasonNumber int) (int64, error) {
	deleted, err := s.matchRepo.DeleteBySeasonStages(ctx, seasonNumber, allStages)
	if err != nil {
		return 0, fmt.Errorf("failed to delete matches for season %d: %w", seasonNumber, err)
	}
	return deleted, nil
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
