package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cricboard/league-system/league"
	"github.com/cricboard/league-system/models"
	"github.com/cricboard/league-system/repositories"
)

type StandingsService interface {
	// PointsTable computes the season's standings from its schedule and
	// completed matches. A season without a schedule yields an empty table
	// rather than an error, so the endpoint stays readable before grouping.
	PointsTable(ctx context.Context, seasonNumber int) (*models.PointsTable, error)
}

type standingsService struct {
	scheduleRepo repositories.GroupScheduleRepository
	matchRepo    repositories.MatchRepository
}

func NewStandingsService(scheduleRepo repositories.GroupScheduleRepository, matchRepo repositories.MatchRepository) StandingsService {
	return &standingsService{scheduleRepo: scheduleRepo, matchRepo: matchRepo}
}

func (s *standingsService) PointsTable(ctx context.Context, seasonNumber int) (*models.PointsTable, error) {
	var (
		schedule *models.GroupSchedule
		matches  []*models.Match
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sched, err := s.scheduleRepo.GetBySeason(gctx, seasonNumber)
		if err != nil {
			if errors.Is(err, repositories.ErrGroupScheduleNotFound) {
				return nil
			}
			return fmt.Errorf("failed to load schedule for season %d: %w", seasonNumber, err)
		}
		schedule = sched
		return nil
	})
	g.Go(func() error {
		// Every stage counts: playoff and final results between grouped
		// teams still feed points, form and net run rate.
		list, err := s.matchRepo.ListBySeason(gctx, seasonNumber, repositories.ListMatchesFilter{})
		if err != nil {
			return fmt.Errorf("failed to list matches for season %d: %w", seasonNumber, err)
		}
		matches = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var groups []models.Group
	if schedule != nil {
		groups = schedule.Groups
	}
	table := league.ComputeStandings(groups, matches)
	return &table, nil
}
