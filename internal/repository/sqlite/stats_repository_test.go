package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
	"github.com/vytor/wordflash/internal/repository/sqlite"
	"github.com/vytor/wordflash/internal/srs"
	"github.com/vytor/wordflash/internal/testutil"
)

type StatsRepositorySuite struct {
	suite.Suite
	db        *sql.DB
	repo      repository.StatsRepository
	catalog   repository.CatalogRepository
	progress  repository.ProgressRepository
	profileID int64
	now       time.Time
}

func (s *StatsRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewStatsRepository(s.db)
	s.catalog = sqlite.NewCatalogRepository(s.db)
	s.progress = sqlite.NewProgressRepository(s.db)
	s.now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	p, err := sqlite.NewProfileRepository(s.db).Upsert(context.Background(), models.Profile{
		Username: "stats", NativeLang: "ru", TargetLang: "en", LearnBatchSize: 5, DailyReviewWords: 10,
	})
	s.Require().NoError(err)
	s.profileID = p.ID
}

func (s *StatsRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StatsRepositorySuite) learned(lemma string, lang string, due time.Time) int64 {
	ctx := context.Background()
	id, err := s.catalog.UpsertWord(ctx, models.Word{Lemma: lemma, Lang: lang})
	s.Require().NoError(err)
	_, err = s.progress.InsertNew(ctx, []models.WordProgress{srs.SeedDue(s.profileID, id, due)})
	s.Require().NoError(err)
	return id
}

func (s *StatsRepositorySuite) answers(wordID int64, results ...string) {
	for _, r := range results {
		_, err := s.db.ExecContext(context.Background(),
			`INSERT INTO review_events (profile_id, word_id, result, created_at) VALUES (?, ?, ?, ?)`,
			s.profileID, wordID, r, s.now)
		s.Require().NoError(err)
	}
}

func (s *StatsRepositorySuite) TestWeakWordsOrdering() {
	ctx := context.Background()
	dom := s.learned("дом", "ru", s.now)
	kot := s.learned("кот", "ru", s.now)
	sad := s.learned("сад", "ru", s.now)
	clean := s.learned("лес", "ru", s.now)
	foreign := s.learned("house", "en", s.now)

	s.answers(dom, models.ResultWrong, models.ResultWrong, models.ResultCorrect)
	s.answers(kot, models.ResultWrong, models.ResultWrong)
	s.answers(sad, models.ResultWrong, models.ResultCorrect, models.ResultCorrect, models.ResultCorrect)
	s.answers(clean, models.ResultCorrect)
	s.answers(foreign, models.ResultWrong)

	words, total, err := s.repo.WeakWords(ctx, s.profileID, "ru", 2)
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Require().Len(words, 2)
	s.Equal(kot, words[0].WordID)
	s.Equal("кот", words[0].Word)
	s.Equal(0.0, words[0].Accuracy)
	s.Equal(dom, words[1].WordID)
	s.Equal(0.333, words[1].Accuracy)
	s.NotNil(words[1].NextReviewAt)
}

func (s *StatsRepositorySuite) TestReviewPlan() {
	ctx := context.Background()
	later := s.learned("бег", "ru", s.now.Add(48*time.Hour))
	soonB := s.learned("яблоко", "ru", s.now)
	soonA := s.learned("арбуз", "ru", s.now)
	s.learned("tree", "en", s.now)

	s.Require().NoError(s.catalog.AddCustomWord(ctx, s.profileID, later, "en", "run"))

	items, total, err := s.repo.ReviewPlan(ctx, s.profileID, "ru", 0)
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Require().Len(items, 3)
	s.Equal([]int64{soonA, soonB, later}, []int64{items[0].WordID, items[1].WordID, items[2].WordID})
	s.True(items[2].Custom)
	s.False(items[0].Custom)
	s.True(items[0].NextReviewAt.Equal(s.now))

	limited, total, err := s.repo.ReviewPlan(ctx, s.profileID, "ru", 1)
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Len(limited, 1)
}

func TestStatsRepositorySuite(t *testing.T) {
	suite.Run(t, new(StatsRepositorySuite))
}
