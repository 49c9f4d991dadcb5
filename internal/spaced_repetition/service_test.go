package spaced_repetition

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/example/terve/internal/database"
	apperrors "github.com/example/terve/internal/errors"
	"github.com/example/terve/internal/random"
	"github.com/example/terve/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db       *sqlx.DB
	words    *database.WordRepository
	progress *database.LearnerWordRepository
	userID   int64
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	user := &models.User{Email: "liisa@example.com", OAuthProvider: "google", OAuthID: "liisa"}
	require.NoError(t, database.NewUserRepository(db).Create(context.Background(), user))

	return &fixture{
		db:       db,
		words:    database.NewWordRepository(db),
		progress: database.NewLearnerWordRepository(db),
		userID:   user.ID,
		now:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) service(opts ...Option) *Service {
	opts = append([]Option{WithClock(func() time.Time { return f.now })}, opts...)
	return NewService(f.words, f.progress, opts...)
}

// addWords creates n catalog words of a level with consecutive ranks starting at firstRank.
func (f *fixture) addWords(t *testing.T, level models.Level, firstRank, n, difficulty int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		rank := firstRank + i
		w := &models.Word{
			Finnish:         fmt.Sprintf("%s-sana-%d", level, rank),
			English:         fmt.Sprintf("%s-word-%d", level, rank),
			CEFRLevel:       level,
			CommonalityRank: rank,
			Difficulty:      difficulty,
		}
		require.NoError(t, f.words.Create(context.Background(), w))
		ids = append(ids, w.ID)
	}
	return ids
}

func TestSeedNewLearner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a1 := f.addWords(t, models.A1, 1, 105, 1)
	f.addWords(t, models.A2, 1, 5, 1)

	added, err := f.service().SeedNewLearner(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 100, added)

	owned, err := f.progress.OwnedWordIDs(ctx, f.userID)
	require.NoError(t, err)
	assert.ElementsMatch(t, a1[:100], owned)

	stats, err := f.service().Stats(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 100, stats.Learning)
	assert.Equal(t, 100, stats.Total)
}

func TestTopUpWithoutHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	easy := f.addWords(t, models.A1, 1, 12, 2)
	f.addWords(t, models.A1, 100, 3, 4)

	added, err := f.service().TopUp(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, TopUpBatch, added)

	owned, err := f.progress.OwnedWordIDs(ctx, f.userID)
	require.NoError(t, err)
	assert.ElementsMatch(t, easy[:10], owned)
}

func TestTopUpRespectsFloor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ids := f.addWords(t, models.A1, 1, 120, 1)

	_, err := f.progress.AddMany(ctx, f.userID, ids[:95], models.CategoryLearning)
	require.NoError(t, err)

	added, err := f.service().TopUp(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 5, added)

	added, err = f.service().TopUp(ctx, f.userID)
	require.NoError(t, err)
	assert.Zero(t, added)

	count, err := f.progress.CountByCategory(ctx, f.userID, models.CategoryLearning)
	require.NoError(t, err)
	assert.Equal(t, PoolFloor, count)
}

func TestTopUpFollowsRecentComplexity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a2Medium := f.addWords(t, models.A2, 1, 10, 3)
	a2Hard := f.addWords(t, models.A2, 50, 3, 4)
	a2Easy := f.addWords(t, models.A2, 80, 2, 1)
	f.addWords(t, models.B1, 1, 5, 3)

	_, err := f.progress.AddMany(ctx, f.userID, a2Medium[:4], models.CategoryLearning)
	require.NoError(t, err)

	added, err := f.service().TopUp(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 9, added)

	owned, err := f.progress.OwnedWordIDs(ctx, f.userID)
	require.NoError(t, err)
	assert.Subset(t, owned, a2Medium)
	for _, id := range a2Easy {
		assert.NotContains(t, owned, id)
	}
	assert.Contains(t, owned, a2Hard[0])
}

func TestMoveCategoryTopsUp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ids := f.addWords(t, models.A1, 1, 101, 1)
	svc := f.service()

	_, err := svc.SeedNewLearner(ctx, f.userID)
	require.NoError(t, err)

	require.NoError(t, svc.MoveCategory(ctx, f.userID, ids[0], models.CategoryWellKnown))

	stats, err := svc.Stats(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 100, stats.Learning)
	assert.Equal(t, 1, stats.WellKnown)

	exists, err := f.progress.Exists(ctx, f.userID, ids[100])
	require.NoError(t, err)
	assert.True(t, exists)

	err = svc.MoveCategory(ctx, f.userID, ids[1], "forgotten")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	err = svc.MoveCategory(ctx, f.userID, 99999, models.CategoryTodo)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestAddWord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ids := f.addWords(t, models.B1, 1, 2, 3)
	svc := f.service()

	require.NoError(t, svc.AddWord(ctx, f.userID, ids[0]))

	err := svc.AddWord(ctx, f.userID, ids[0])
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	assert.Contains(t, err.Error(), "already in your collection")

	err = svc.AddWord(ctx, f.userID, 12345)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	lw, err := f.progress.Get(ctx, f.userID, ids[0])
	require.NoError(t, err)
	assert.Equal(t, models.CategoryLearning, lw.Category)
	assert.Zero(t, lw.ReviewCount)
}

func TestAnswerAndDueCards(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ids := f.addWords(t, models.A1, 1, 3, 1)
	svc := f.service(WithRandom(random.NewSequence(0)))

	_, err := f.progress.AddMany(ctx, f.userID, ids, models.CategoryLearning)
	require.NoError(t, err)

	due, err := svc.DueCount(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 3, due)

	lw, err := svc.Answer(ctx, f.userID, ids[0], true)
	require.NoError(t, err)
	assert.Equal(t, 1, lw.ReviewCount)
	assert.Equal(t, 100, lw.MasteryPercentage())
	assert.True(t, lw.NextReviewAt.Equal(f.now.Add(24*time.Hour)))

	_, err = svc.Answer(ctx, f.userID, ids[1], false)
	require.NoError(t, err)

	due, err = svc.DueCount(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 1, due)

	next, err := svc.NextDueCard(ctx, f.userID, models.CategoryLearning)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, ids[2], next.WordID)

	next, err = svc.NextDueCard(ctx, f.userID, models.CategoryTodo)
	require.NoError(t, err)
	assert.Nil(t, next)

	_, err = svc.NextDueCard(ctx, f.userID, "bogus")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Answer(ctx, f.userID, 4242, true)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	f.now = f.now.Add(5 * time.Hour)
	due, err = svc.DueCount(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 2, due)
}

type stubExamples struct {
	calls int
}

func (s *stubExamples) ExampleSentence(ctx context.Context, finnish, english string) (string, error) {
	s.calls++
	return "Tämä on " + finnish + ".", nil
}

func TestPracticeAddsExampleSentence(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ids := f.addWords(t, models.A1, 1, 1, 1)
	examples := &stubExamples{}
	svc := f.service(WithExampleWriter(examples))

	card, err := svc.Practice(ctx, f.userID, models.CategoryLearning)
	require.NoError(t, err)
	assert.Nil(t, card)

	require.NoError(t, svc.AddWord(ctx, f.userID, ids[0]))
	card, err = svc.Practice(ctx, f.userID, models.CategoryLearning)
	require.NoError(t, err)
	require.NotNil(t, card)
	assert.Equal(t, "A1-sana-1", card.Finnish)
	assert.Equal(t, "Tämä on A1-sana-1.", card.Context)
	assert.Equal(t, 1, examples.calls)
}
