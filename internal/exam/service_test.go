package exam

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/example/terve/internal/database"
	apperrors "github.com/example/terve/internal/errors"
	"github.com/example/terve/internal/random"
	"github.com/example/terve/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	instances *database.ExamInstanceRepository
	results   *database.ExamResultRepository
	users     *database.UserRepository
	userID    int64
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		instances: database.NewExamInstanceRepository(db),
		results:   database.NewExamResultRepository(db),
		users:     database.NewUserRepository(db),
		now:       time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	f.userID = f.createUser(t, "aino")
	return f
}

func (f *fixture) createUser(t *testing.T, oauthID string) int64 {
	t.Helper()
	user := &models.User{Email: oauthID + "@example.com", OAuthProvider: "github", OAuthID: oauthID}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user.ID
}

func (f *fixture) service() *Service {
	return NewService(f.instances, f.results,
		WithRandom(random.Seeded(7)),
		WithClock(func() time.Time { return f.now }),
	)
}

func answerKey(inst *Instance) map[int]string {
	answers := make(map[int]string, len(inst.Questions))
	for _, q := range inst.Questions {
		answers[q.ID] = q.CorrectAnswer
	}
	return answers
}

func TestBeginStoresExam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inst, sess, err := f.service().Begin(ctx, f.userID, models.A2)
	require.NoError(t, err)

	assert.Equal(t, inst.ID, sess.ExamID)
	assert.Equal(t, models.A2, sess.TargetLevel)
	assert.True(t, sess.StartedAt.Equal(f.now))

	stored, err := f.instances.Get(ctx, inst.ID)
	require.NoError(t, err)
	assert.Equal(t, f.userID, stored.UserID)
	assert.True(t, stored.ExpiresAt.Equal(f.now.Add(60*time.Minute)))
}

func TestSubmitGradesAndStoresResult(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.service()

	inst, sess, err := svc.Begin(ctx, f.userID, models.B1)
	require.NoError(t, err)

	f.now = f.now.Add(30 * time.Minute)
	outcome, err := svc.Submit(ctx, f.userID, sess, inst.ID, answerKey(inst))
	require.NoError(t, err)

	assert.Equal(t, 100, outcome.Percentage)
	assert.True(t, outcome.Passed)
	assert.Equal(t, 30, outcome.TimeSpentMinutes)
	assert.Equal(t, QuestionCount, outcome.Result.QuestionsCorrect)

	stored, err := svc.Result(ctx, f.userID, outcome.ResultID)
	require.NoError(t, err)
	assert.Equal(t, models.ExamTypeMockCEFR, stored.ExamType)
	assert.Equal(t, models.B1, stored.TargetLevel)
	assert.Equal(t, inst.MaxScore(), stored.MaxScore)
	assert.Equal(t, QuestionCount, stored.TotalQuestions)
	assert.Len(t, stored.SectionScores(), len(Sections))

	// the exam is consumed
	_, err = svc.Submit(ctx, f.userID, sess, inst.ID, answerKey(inst))
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidSessionState))
}

func TestSubmitRejectsInvalidSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.service()

	inst, sess, err := svc.Begin(ctx, f.userID, models.A1)
	require.NoError(t, err)
	other := f.createUser(t, "otto")

	tests := []struct {
		name   string
		userID int64
		sess   *Session
		examID string
	}{
		{"no session", f.userID, nil, inst.ID},
		{"session without level", f.userID, &Session{ExamID: inst.ID, StartedAt: sess.StartedAt}, inst.ID},
		{"session without start", f.userID, &Session{ExamID: inst.ID, TargetLevel: models.A1}, inst.ID},
		{"different exam", f.userID, sess, "another-exam"},
		{"unknown exam", f.userID, &Session{ExamID: "missing", TargetLevel: models.A1, StartedAt: f.now}, ""},
		{"another learner", other, sess, inst.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, tt.userID, tt.sess, tt.examID, answerKey(inst))
			assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidSessionState), "got %v", err)
		})
	}

	count, err := f.results.CountByUser(ctx, f.userID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSubmitAfterTimeLimitAbandonsExam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.service()

	inst, sess, err := svc.Begin(ctx, f.userID, models.A1)
	require.NoError(t, err)

	f.now = f.now.Add(45*time.Minute + DefaultGrace + time.Second)
	_, err = svc.Submit(ctx, f.userID, sess, inst.ID, answerKey(inst))
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidSessionState))

	_, err = f.instances.Get(ctx, inst.ID)
	assert.Error(t, err)
}

func TestHistoryAndResultOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.service()

	for i := 0; i < HistoryPageSize+3; i++ {
		require.NoError(t, f.results.Create(ctx, &models.ExamResult{
			UserID: f.userID, ExamType: models.ExamTypeMockCEFR, TargetLevel: models.A1,
			Score: i, MaxScore: 100, CreatedAt: f.now.Add(time.Duration(i) * time.Minute),
		}))
	}

	first, err := svc.History(ctx, f.userID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 2, first.LastPage)
	assert.Equal(t, HistoryPageSize+3, first.Total)
	require.Len(t, first.Results, HistoryPageSize)
	assert.Equal(t, HistoryPageSize+2, first.Results[0].Score)

	second, err := svc.History(ctx, f.userID, 2)
	require.NoError(t, err)
	assert.Len(t, second.Results, 3)

	for _, page := range []int{3, math.MaxInt} {
		past, err := svc.History(ctx, f.userID, page)
		require.NoError(t, err, "page %d", page)
		assert.Equal(t, 2, past.Page)
		assert.Len(t, past.Results, 3)
	}

	recent, err := svc.Recent(ctx, f.userID, RecentLimit)
	require.NoError(t, err)
	assert.Len(t, recent, RecentLimit)

	other := f.createUser(t, "otto")
	_, err = svc.Result(ctx, other, recent[0].ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	_, err = svc.Result(ctx, f.userID, 999999)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestAverageScoresAndStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.service()

	for i, score := range []int{40, 61, 90} {
		level := models.A1
		if i == 2 {
			level = models.B1
		}
		require.NoError(t, f.results.Create(ctx, &models.ExamResult{
			UserID: f.userID, ExamType: models.ExamTypeMockCEFR, TargetLevel: level,
			Score: score, MaxScore: 100, CreatedAt: f.now.Add(time.Duration(i) * time.Hour),
		}))
	}

	averages, err := svc.AverageScores(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, LevelAverage{Average: 51, Attempts: 2}, averages[models.A1])
	assert.Equal(t, LevelAverage{Average: 90, Attempts: 1}, averages[models.B1])

	stats, err := svc.DetailedStats(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalExams)
	assert.Equal(t, 64, stats.AverageScore)
	require.Len(t, stats.RecentTrend, 3)
	assert.Equal(t, 40, stats.RecentTrend[0].Score)
	assert.Equal(t, 90, stats.RecentTrend[2].Score)
}

func TestPurgeAbandoned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.service()

	old, _, err := svc.Begin(ctx, f.userID, models.A1) // expires after 45 minutes
	require.NoError(t, err)
	f.now = f.now.Add(40 * time.Minute)
	fresh, _, err := svc.Begin(ctx, f.userID, models.A1)
	require.NoError(t, err)

	f.now = f.now.Add(10 * time.Minute)
	purged, err := svc.PurgeAbandoned(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	_, err = f.instances.Get(ctx, old.ID)
	assert.Error(t, err)
	_, err = f.instances.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}
