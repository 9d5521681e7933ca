package executor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchestra-automation/orchestra/internal/domain"
	"github.com/orchestra-automation/orchestra/internal/scheduler"
)

type nopLogger struct{}

func (nopLogger) Debug(repo, category, msg string) {}
func (nopLogger) Info(repo, category, msg string)  {}
func (nopLogger) Warn(repo, category, msg string)  {}
func (nopLogger) Error(repo, category, msg string) {}

type stubSession struct {
	status domain.SessionStatus
}

func (s stubSession) CheckStatus() domain.SessionStatus {
	return s.status
}

func (s stubSession) Summary() domain.SessionSummary {
	return domain.SessionSummary{Active: s.status != domain.SessionNone}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

// memStore is an in-memory TaskStore for wiring a real scheduler.
type memStore struct {
	tasks   []domain.ScheduledTask
	loadErr error
}

func (m *memStore) Load() ([]domain.ScheduledTask, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]domain.ScheduledTask, len(m.tasks))
	copy(out, m.tasks)
	return out, nil
}

func (m *memStore) Save(tasks []domain.ScheduledTask, updatedAt time.Time) error {
	m.tasks = make([]domain.ScheduledTask, len(tasks))
	copy(m.tasks, tasks)
	return nil
}

// fakeGateway returns canned repository state. Zero value answers
// everything with empty data. A non-empty gatherPanic makes the gather
// calls panic with that message.
type fakeGateway struct {
	data           domain.RepoData
	weekend        domain.WeekendData
	involved       []domain.PullRequest
	involvedErr    error
	comments       map[int][]domain.Comment
	reviewComments map[int][]domain.Comment
	commits        map[string][]domain.Commit
	gatherPanic    string
}

func (g *fakeGateway) GatherWorkdayData() *domain.RepoData {
	if g.gatherPanic != "" {
		panic(g.gatherPanic)
	}
	data := g.data
	return &data
}

func (g *fakeGateway) GatherWeekendData() *domain.WeekendData {
	if g.gatherPanic != "" {
		panic(g.gatherPanic)
	}
	data := g.weekend
	return &data
}

func (g *fakeGateway) PRComments(number int) ([]domain.Comment, error) {
	return g.comments[number], nil
}

func (g *fakeGateway) PRReviewComments(number int) ([]domain.Comment, error) {
	return g.reviewComments[number], nil
}

func (g *fakeGateway) SearchInvolvedPRs() ([]domain.PullRequest, error) {
	return g.involved, g.involvedErr
}

func (g *fakeGateway) CommentOnPR(number int, body string) error {
	return nil
}

func (g *fakeGateway) CommentOnIssue(number int, body string) error {
	return nil
}

func (g *fakeGateway) UpdatePRDescription(number int, body string) error {
	return nil
}

func (g *fakeGateway) CreatePR(opts domain.CreatePROptions) (int, error) {
	return 0, nil
}

func (g *fakeGateway) CommitsSince(branch string, since time.Time) ([]domain.Commit, error) {
	return g.commits[branch], nil
}

func (g *fakeGateway) RebaseBranch(branch, base string) domain.RebaseOutcome {
	return domain.RebaseOutcome{Success: true}
}

// fakeFactory hands out per-repo fake gateways and records access order.
type fakeFactory struct {
	gateways map[string]*fakeGateway
	order    []string
}

func (f *fakeFactory) ForRepo(repo domain.RepoConfig) domain.RepoGateway {
	f.order = append(f.order, repo.Name)
	if gw, ok := f.gateways[repo.Name]; ok {
		return gw
	}
	return &fakeGateway{}
}

func testDeps(session domain.SessionStatus, factory *fakeFactory, store domain.TaskStore) Deps {
	if store == nil {
		store = &memStore{}
	}
	clock := fixedClock{t: time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)}
	return Deps{
		Gateways:  factory,
		Session:   stubSession{status: session},
		Scheduler: scheduler.New(store, clock),
		Log:       nopLogger{},
		Clock:     clock,
		Settings:  domain.DefaultSettings(),
	}
}

func TestForMode(t *testing.T) {
	deps := testDeps(domain.SessionNormal, &fakeFactory{}, nil)

	for mode, want := range map[domain.WorkMode]any{
		domain.ModeWorkday:   &Workday{},
		domain.ModeWorknight: &Worknight{},
		domain.ModeWeekend:   &Weekend{},
	} {
		exec, err := ForMode(mode, deps)
		require.NoError(t, err)
		assert.IsType(t, want, exec)
	}
}

func TestForMode_Unknown(t *testing.T) {
	deps := testDeps(domain.SessionNormal, &fakeFactory{}, nil)

	_, err := ForMode(domain.ModeOff, deps)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownWorkMode)
}
