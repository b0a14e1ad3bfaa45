package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cricboard/league-system/models"
	"github.com/cricboard/league-system/notify"
	"github.com/cricboard/league-system/repositories"
	"github.com/cricboard/league-system/utils"
)

// SideResultInput carries one innings as submitted by the scorer. Fields are
// untyped because clients send numbers as strings, floats or ints; anything
// unparsable counts as zero.
type SideResultInput struct {
	Runs    interface{} `json:"runs"`
	Wickets interface{} `json:"wickets"`
	Overs   interface{} `json:"overs"`
}

// MatchResultInput is the full result submission for a match.
type MatchResultInput struct {
	TeamA  SideResultInput `json:"team_a"`
	TeamB  SideResultInput `json:"team_b"`
	Winner string          `json:"winner"`
}

// LiveScoreInput is an in-progress score update; it never settles a winner.
type LiveScoreInput struct {
	TeamA SideResultInput `json:"team_a"`
	TeamB SideResultInput `json:"team_b"`
}

// CreateMatchInput describes a manually created fixture.
type CreateMatchInput struct {
	SeasonNumber int       `json:"season_number"`
	Stage        string    `json:"stage"`
	GroupName    *string   `json:"group_name"`
	TeamAID      *int      `json:"team_a_id"`
	TeamBID      *int      `json:"team_b_id"`
	TeamAName    string    `json:"team_a_name"`
	TeamBName    string    `json:"team_b_name"`
	Venue        string    `json:"venue"`
	MatchTime    time.Time `json:"match_time"`
	MatchNumber  int       `json:"match_number"`
	Fixed        bool      `json:"fixed"`
}

type MatchService interface {
	GetMatch(ctx context.Context, id int) (*models.Match, error)
	ListSeasonMatches(ctx context.Context, seasonNumber int, filter repositories.ListMatchesFilter) ([]*models.Match, error)
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)

	// UpdateResult finalizes a match: scores, derived winner/margin and the
	// completed status are persisted, then subscribers are notified.
	UpdateResult(ctx context.Context, id int, input MatchResultInput) (*models.Match, error)

	// UpdateLiveScore records in-progress figures and flips the match live.
	UpdateLiveScore(ctx context.Context, id int, input LiveScoreInput) (*models.Match, error)

	// DeleteMatch removes a match unless it is a fixed bracket slot.
	DeleteMatch(ctx context.Context, id int) error
}

type matchService struct {
	matchRepo repositories.MatchRepository
	publisher notify.Publisher
	logger    *slog.Logger
}

func NewMatchService(matchRepo repositories.MatchRepository, publisher notify.Publisher, logger *slog.Logger) MatchService {
	return &matchService{matchRepo: matchRepo, publisher: publisher, logger: logger}
}

func (s *matchService) GetMatch(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *matchService) ListSeasonMatches(ctx context.Context, seasonNumber int, filter repositories.ListMatchesFilter) ([]*models.Match, error) {
	return s.matchRepo.ListBySeason(ctx, seasonNumber, filter)
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	stage := models.MatchStage(input.Stage)
	switch stage {
	case models.StageLeague, models.StagePlayoff, models.StageFinal:
	default:
		return nil, ErrInvalidMatchStage
	}
	if input.TeamAName == "" || input.TeamBName == "" {
		if !input.Fixed {
			return nil, ErrValidationFailed
		}
	}

	match := &models.Match{
		SeasonNumber: input.SeasonNumber,
		Stage:        stage,
		GroupName:    input.GroupName,
		TeamAID:      input.TeamAID,
		TeamBID:      input.TeamBID,
		TeamAName:    input.TeamAName,
		TeamBName:    input.TeamBName,
		Venue:        input.Venue,
		MatchTime:    input.MatchTime,
		Result:       models.ResultUpcoming,
		TeamAScore:   models.InningsScore{Overs: "0"},
		TeamBScore:   models.InningsScore{Overs: "0"},
		MatchNumber:  input.MatchNumber,
		Fixed:        input.Fixed,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

func (s *matchService) UpdateResult(ctx context.Context, id int, input MatchResultInput) (*models.Match, error) {
	match, err := s.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}

	match.TeamAScore = coerceInnings(input.TeamA)
	match.TeamBScore = coerceInnings(input.TeamB)
	match.Winner, match.Margin = settleOutcome(input.Winner, match)
	match.Result = models.ResultCompleted

	if err := s.matchRepo.UpdateResult(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match %d result: %w", id, err)
	}

	s.notifyMatch(match)
	s.logger.Info("match result recorded",
		slog.Int("match_id", match.ID),
		slog.Int("season", match.SeasonNumber))
	return match, nil
}

func (s *matchService) UpdateLiveScore(ctx context.Context, id int, input LiveScoreInput) (*models.Match, error) {
	match, err := s.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}

	match.TeamAScore = coerceInnings(input.TeamA)
	match.TeamBScore = coerceInnings(input.TeamB)
	match.Result = models.ResultLive

	if err := s.matchRepo.UpdateLiveScore(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match %d live score: %w", id, err)
	}

	s.notifyMatch(match)
	return match, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, id int) error {
	match, err := s.GetMatch(ctx, id)
	if err != nil {
		return err
	}
	if match.Fixed {
		return ErrMatchDeletionForbidden
	}
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return err
	}
	return nil
}

// notifyMatch is fire-and-forget: the write already succeeded and a sink
// failure must not fail the request.
func (s *matchService) notifyMatch(match *models.Match) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(strconv.Itoa(match.ID), match); err != nil {
		s.logger.Warn("failed to publish match update",
			slog.Int("match_id", match.ID), slog.Any("error", err))
	}
}

func coerceInnings(in SideResultInput) models.InningsScore {
	return models.InningsScore{
		Runs:    utils.CoerceInt(in.Runs),
		Wickets: utils.CoerceInt(in.Wickets),
		Overs:   utils.CoerceOvers(in.Overs),
	}
}

// settleOutcome normalizes the submitted winner and derives the margin
// string. Unknown winner values are stored as no winner at all.
func settleOutcome(winner string, m *models.Match) (*string, *string) {
	switch winner {
	case models.WinnerTeamA:
		return strPtr(winner), strPtr(marginFor(m.TeamAScore, m.TeamBScore))
	case models.WinnerTeamB:
		return strPtr(winner), strPtr(marginFor(m.TeamBScore, m.TeamAScore))
	case models.WinnerTie, models.WinnerDraw, models.WinnerNoResult:
		// No scoreline margin for these; the outcome literal doubles as it.
		return strPtr(winner), strPtr(winner)
	default:
		return nil, nil
	}
}

func marginFor(winnerScore, loserScore models.InningsScore) string {
	runs := winnerScore.Runs - loserScore.Runs
	if runs < 0 {
		runs = -runs
	}
	wickets := 10 - winnerScore.Wickets
	return fmt.Sprintf("%d runs, %d wickets", runs, wickets)
}

func strPtr(s string) *string { return &s }
