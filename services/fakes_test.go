package services

import (
	"context"
	"sort"
	"time"

	"github.com/cricboard/league-system/models"
	"github.com/cricboard/league-system/repositories"
)

// In-memory repository doubles used across the service tests.

type fakeSeasonRepo struct {
	seasons       map[int]*models.Season // keyed by season number
	nextID        int
	setCurrentErr error
}

func newFakeSeasonRepo() *fakeSeasonRepo {
	return &fakeSeasonRepo{seasons: make(map[int]*models.Season)}
}

func (r *fakeSeasonRepo) add(s models.Season) *models.Season {
	r.nextID++
	s.ID = r.nextID
	r.seasons[s.SeasonNumber] = &s
	return &s
}

func (r *fakeSeasonRepo) Create(_ context.Context, s *models.Season) error {
	if _, ok := r.seasons[s.SeasonNumber]; ok {
		return repositories.ErrSeasonNumberConflict
	}
	r.nextID++
	s.ID = r.nextID
	s.CreatedAt = time.Now()
	copied := *s
	r.seasons[s.SeasonNumber] = &copied
	return nil
}

func (r *fakeSeasonRepo) GetByID(_ context.Context, id int) (*models.Season, error) {
	for _, s := range r.seasons {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, repositories.ErrSeasonNotFound
}

func (r *fakeSeasonRepo) GetByNumber(_ context.Context, number int) (*models.Season, error) {
	s, ok := r.seasons[number]
	if !ok {
		return nil, repositories.ErrSeasonNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSeasonRepo) List(_ context.Context) ([]models.Season, error) {
	out := make([]models.Season, 0, len(r.seasons))
	for _, s := range r.seasons {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeasonNumber > out[j].SeasonNumber })
	return out, nil
}

func (r *fakeSeasonRepo) NextSeasonNumber(_ context.Context) (int, error) {
	max := 0
	for number := range r.seasons {
		if number > max {
			max = number
		}
	}
	return max + 1, nil
}

func (r *fakeSeasonRepo) SetCurrent(_ context.Context, number int) error {
	if r.setCurrentErr != nil {
		return r.setCurrentErr
	}
	if _, ok := r.seasons[number]; !ok {
		return repositories.ErrSeasonNotFound
	}
	for _, s := range r.seasons {
		s.IsCurrent = s.SeasonNumber == number
	}
	return nil
}

func (r *fakeSeasonRepo) UpdateScheduleTime(_ context.Context, number int, at time.Time) error {
	s, ok := r.seasons[number]
	if !ok {
		return repositories.ErrSeasonNotFound
	}
	s.ScheduleGenerationTime = &at
	return nil
}

func (r *fakeSeasonRepo) UpdateGroups(_ context.Context, number int, groups []models.Group) error {
	s, ok := r.seasons[number]
	if !ok {
		return repositories.ErrSeasonNotFound
	}
	s.Groups = groups
	return nil
}

func (r *fakeSeasonRepo) UpdateParticipants(_ context.Context, number int, participants []string, matchIDs []int64) error {
	s, ok := r.seasons[number]
	if !ok {
		return repositories.ErrSeasonNotFound
	}
	s.Participants = participants
	s.MatchIDs = matchIDs
	return nil
}

func (r *fakeSeasonRepo) ListDueForScheduling(_ context.Context, now time.Time, grace time.Duration) ([]models.Season, error) {
	due := make([]models.Season, 0)
	for _, s := range r.seasons {
		switch {
		case s.ScheduleGenerationTime != nil:
			if !s.ScheduleGenerationTime.After(now) {
				due = append(due, *s)
			}
		default:
			if !s.EntryDeadline.After(now.Add(-grace)) {
				due = append(due, *s)
			}
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].SeasonNumber < due[j].SeasonNumber })
	return due, nil
}

func (r *fakeSeasonRepo) Delete(_ context.Context, number int) error {
	if _, ok := r.seasons[number]; !ok {
		return repositories.ErrSeasonNotFound
	}
	delete(r.seasons, number)
	return nil
}

type fakeTeamRepo struct {
	teams  map[int]*models.Team
	nextID int
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[int]*models.Team)}
}

func (r *fakeTeamRepo) addApproved(seasonNumber int, names ...string) []models.Team {
	out := make([]models.Team, 0, len(names))
	for _, name := range names {
		r.nextID++
		team := &models.Team{
			ID:           r.nextID,
			SeasonNumber: seasonNumber,
			Name:         name,
			ShortCode:    name[:1],
			Status:       models.TeamStatusApproved,
		}
		r.teams[team.ID] = team
		out = append(out, *team)
	}
	return out
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	r.nextID++
	team.ID = r.nextID
	team.CreatedAt = time.Now()
	for i := range team.Roster {
		team.Roster[i].TeamID = team.ID
		team.Roster[i].SlotNo = i + 1
		team.Roster[i].ID = team.ID*100 + i
	}
	copied := *team
	r.teams[team.ID] = &copied
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *team
	return &copied, nil
}

func (r *fakeTeamRepo) ListBySeason(_ context.Context, seasonNumber int, status *models.TeamStatus) ([]models.Team, error) {
	out := make([]models.Team, 0)
	for _, team := range r.teams {
		if team.SeasonNumber != seasonNumber {
			continue
		}
		if status != nil && team.Status != *status {
			continue
		}
		out = append(out, *team)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTeamRepo) UpdateStatus(_ context.Context, id int, status models.TeamStatus) error {
	team, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.Status = status
	return nil
}

func (r *fakeTeamRepo) UpdateShortCode(_ context.Context, id int, shortCode string) error {
	team, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.ShortCode = shortCode
	return nil
}

func (r *fakeTeamRepo) UpdateLogoKey(_ context.Context, id int, logoKey *string) error {
	team, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.LogoKey = logoKey
	return nil
}

func (r *fakeTeamRepo) BindRosterSlot(_ context.Context, teamID, slotNo int, playerCode string) error {
	team, ok := r.teams[teamID]
	if !ok {
		return repositories.ErrRosterSlotNotFound
	}
	for i := range team.Roster {
		if team.Roster[i].SlotNo == slotNo {
			code := playerCode
			team.Roster[i].PlayerCode = &code
			return nil
		}
	}
	return repositories.ErrRosterSlotNotFound
}

type fakeScheduleRepo struct {
	schedules map[int]*models.GroupSchedule
	nextID    int
	deletes   int
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[int]*models.GroupSchedule)}
}

func (r *fakeScheduleRepo) Create(_ context.Context, schedule *models.GroupSchedule) error {
	r.nextID++
	schedule.ID = r.nextID
	schedule.CreatedAt = time.Now()
	copied := *schedule
	r.schedules[schedule.SeasonNumber] = &copied
	return nil
}

func (r *fakeScheduleRepo) GetBySeason(_ context.Context, seasonNumber int) (*models.GroupSchedule, error) {
	schedule, ok := r.schedules[seasonNumber]
	if !ok {
		return nil, repositories.ErrGroupScheduleNotFound
	}
	copied := *schedule
	return &copied, nil
}

func (r *fakeScheduleRepo) GetLatest(_ context.Context) (*models.GroupSchedule, error) {
	var latest *models.GroupSchedule
	for _, schedule := range r.schedules {
		if latest == nil || schedule.ID > latest.ID {
			latest = schedule
		}
	}
	if latest == nil {
		return nil, repositories.ErrGroupScheduleNotFound
	}
	copied := *latest
	return &copied, nil
}

func (r *fakeScheduleRepo) ExistsForSeason(_ context.Context, seasonNumber int) (bool, error) {
	_, ok := r.schedules[seasonNumber]
	return ok, nil
}

func (r *fakeScheduleRepo) DeleteBySeason(_ context.Context, seasonNumber int) error {
	if _, ok := r.schedules[seasonNumber]; ok {
		r.deletes++
	}
	delete(r.schedules, seasonNumber)
	return nil
}

type fakeMatchRepo struct {
	matches map[int]*models.Match
	nextID  int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[int]*models.Match)}
}

func (r *fakeMatchRepo) Create(_ context.Context, m *models.Match) error {
	r.nextID++
	m.ID = r.nextID
	m.CreatedAt = time.Now()
	copied := *m
	r.matches[m.ID] = &copied
	return nil
}

func (r *fakeMatchRepo) CreateBatch(ctx context.Context, matches []*models.Match) error {
	for _, m := range matches {
		if err := r.Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMatchRepo) ListBySeason(_ context.Context, seasonNumber int, filter repositories.ListMatchesFilter) ([]*models.Match, error) {
	out := make([]*models.Match, 0)
	for _, m := range r.matches {
		if m.SeasonNumber != seasonNumber {
			continue
		}
		if filter.Stage != nil && m.Stage != *filter.Stage {
			continue
		}
		if filter.Result != nil && m.Result != *filter.Result {
			continue
		}
		copied := *m
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchNumber != out[j].MatchNumber {
			return out[i].MatchNumber < out[j].MatchNumber
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakeMatchRepo) UpdateResult(_ context.Context, m *models.Match) error {
	stored, ok := r.matches[m.ID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	stored.TeamAScore = m.TeamAScore
	stored.TeamBScore = m.TeamBScore
	stored.Winner = m.Winner
	stored.Margin = m.Margin
	stored.Result = m.Result
	return nil
}

func (r *fakeMatchRepo) UpdateLiveScore(_ context.Context, m *models.Match) error {
	stored, ok := r.matches[m.ID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	stored.TeamAScore = m.TeamAScore
	stored.TeamBScore = m.TeamBScore
	stored.Result = m.Result
	return nil
}

func (r *fakeMatchRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}

func (r *fakeMatchRepo) DeleteBySeasonStages(_ context.Context, seasonNumber int, stages []models.MatchStage) (int64, error) {
	staged := make(map[models.MatchStage]bool, len(stages))
	for _, stage := range stages {
		staged[stage] = true
	}
	var deleted int64
	for id, m := range r.matches {
		if m.SeasonNumber == seasonNumber && staged[m.Stage] {
			delete(r.matches, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetByPlayerCode(_ context.Context, code string) (*models.User, error) {
	for _, u := range r.users {
		if u.PlayerCode != nil && *u.PlayerCode == code {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) UpdatePlayerCode(_ context.Context, id int, code string) error {
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.PlayerCode = &code
	return nil
}

func listAll() repositories.ListMatchesFilter {
	return repositories.ListMatchesFilter{}
}

// recordingPublisher captures notifications for assertion.
type recordingPublisher struct {
	topics   []string
	payloads []interface{}
	err      error
}

func (p *recordingPublisher) Publish(topic string, payload interface{}) error {
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return p.err
}
