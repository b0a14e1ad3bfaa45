package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cricboard/league-system/models"
	"github.com/cricboard/league-system/repositories"
)

// CreateSeasonInput carries the operator's season parameters; the season
// number itself is assigned by the service.
type CreateSeasonInput struct {
	EntryDeadline          time.Time  `json:"entry_deadline"`
	ScheduleGenerationTime *time.Time `json:"schedule_generation_time"`
	IsCurrent              bool       `json:"is_current"`
}

type SeasonService interface {
	Create(ctx context.Context, input CreateSeasonInput) (*models.Season, error)
	List(ctx context.Context) ([]models.Season, error)
	GetByNumber(ctx context.Context, seasonNumber int) (*models.Season, error)
	SetCurrent(ctx context.Context, seasonNumber int) error
	UpdateScheduleTime(ctx context.Context, seasonNumber int, at time.Time) error
	Delete(ctx context.Context, seasonNumber int) error
}

type seasonService struct {
	seasonRepo repositories.SeasonRepository
}

func NewSeasonService(seasonRepo repositories.SeasonRepository) SeasonService {
	return &seasonService{seasonRepo: seasonRepo}
}

func (s *seasonService) Create(ctx context.Context, input CreateSeasonInput) (*models.Season, error) {
	if input.EntryDeadline.IsZero() {
		return nil, ErrEntryDeadlineRequired
	}

	number, err := s.seasonRepo.NextSeasonNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate season number: %w", err)
	}

	// The row is inserted as not current; only the transactional SetCurrent
	// flips the flag, so two seasons can never end up current at once.
	season := &models.Season{
		SeasonNumber:           number,
		EntryDeadline:          input.EntryDeadline,
		ScheduleGenerationTime: input.ScheduleGenerationTime,
	}
	if err := s.seasonRepo.Create(ctx, season); err != nil {
		if errors.Is(err, repositories.ErrSeasonNumberConflict) {
			return nil, ErrSeasonNumberConflict
		}
		return nil, fmt.Errorf("failed to create season: %w", err)
	}

	if season.ScheduleGenerationTime != nil {
		if err := s.seasonRepo.UpdateScheduleTime(ctx, number, *season.ScheduleGenerationTime); err != nil {
			return nil, fmt.Errorf("failed to set season %d schedule time: %w", number, err)
		}
	}
	if input.IsCurrent {
		if err := s.seasonRepo.SetCurrent(ctx, number); err != nil {
			return nil, fmt.Errorf("failed to mark season %d current: %w", number, err)
		}
		season.IsCurrent = true
	}
	return season, nil
}

func (s *seasonService) List(ctx context.Context) ([]models.Season, error) {
	return s.seasonRepo.List(ctx)
}

func (s *seasonService) GetByNumber(ctx context.Context, seasonNumber int) (*models.Season, error) {
	season, err := s.seasonRepo.GetByNumber(ctx, seasonNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}
	return season, nil
}

func (s *seasonService) SetCurrent(ctx context.Context, seasonNumber int) error {
	if err := s.seasonRepo.SetCurrent(ctx, seasonNumber); err != nil {
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return ErrSeasonNotFound
		}
		return err
	}
	return nil
}

func (s *seasonService) UpdateScheduleTime(ctx context.Context, seasonNumber int, at time.Time) error {
	if err := s.seasonRepo.UpdateScheduleTime(ctx, seasonNumber, at); err != nil {
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return ErrSeasonNotFound
		}
		return err
	}
	return nil
}

func (s *seasonService) Delete(ctx context.Context, seasonNumber int) error {
	if err := s.seasonRepo.Delete(ctx, seasonNumber); err != nil {
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return ErrSeasonNotFound
		}
		return err
	}
	return nil
}
