package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vytor/wordflash/internal/answer"
	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
	"github.com/vytor/wordflash/internal/srs"
	"github.com/vytor/wordflash/internal/textnorm"
)

// StudyService runs learn and review sessions
type StudyService interface {
	StartLearn(ctx context.Context, profileID int64) (*models.LearnBatch, error)
	SubmitLearn(ctx context.Context, profileID int64, sub models.Submission) (*models.LearnOutcome, error)
	StartReview(ctx context.Context, profileID int64) (*models.ReviewBatch, error)
	SubmitReview(ctx context.Context, profileID int64, sub models.Submission) (*models.ReviewOutcome, error)
	// SeedReview makes up to limit unstudied catalog words due for review
	// immediately and returns how many were added.
	SeedReview(ctx context.Context, profileID int64, limit int) (int, error)
	AddCustomWord(ctx context.Context, profileID int64, lemma, translation string) error
}

// StudyConfig holds batch sizes used when a profile does not set its own.
type StudyConfig struct {
	LearnBatchSize  int
	ReviewBatchSize int
}

type studyService struct {
	profiles repository.ProfileRepository
	catalog  repository.CatalogRepository
	progress repository.ProgressRepository
	sessions repository.SessionRepository
	cfg      StudyConfig
	now      func() time.Time
}

// NewStudyService creates a new StudyService
func NewStudyService(
	profiles repository.ProfileRepository,
	catalog repository.CatalogRepository,
	progress repository.ProgressRepository,
	sessions repository.SessionRepository,
	cfg StudyConfig,
) StudyService {
	return &studyService{
		profiles: profiles,
		catalog:  catalog,
		progress: progress,
		sessions: sessions,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *studyService) StartLearn(ctx context.Context, profileID int64) (*models.LearnBatch, error) {
	log := logger.FromContext(ctx).WithField("profile_id", profileID)

	profile, err := loadProfile(ctx, s.profiles, profileID)
	if err != nil {
		return nil, err
	}
	limit := batchSize(profile.LearnBatchSize, s.cfg.LearnBatchSize)
	if limit <= 0 {
		return nil, errors.NewValidationError("learn_batch_size", "must be positive")
	}

	words, err := s.catalog.CustomWordsToLearn(ctx, profile.ID, profile.NativeLang, profile.TargetLang, limit)
	if err != nil {
		log.Error("failed to load custom words: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if remaining := limit - len(words); remaining > 0 {
		ranked, err := s.catalog.CatalogWordsToLearn(ctx, profile.ID, profile.NativeLang, profile.TargetLang, limit)
		if err != nil {
			log.Error("failed to load catalog words: %v", err)
			return nil, errors.NewInternalError(err)
		}
		words = appendUnique(words, ranked, remaining)
	}

	ids := make([]int64, len(words))
	for i, w := range words {
		ids[i] = w.ID
	}
	translations, err := s.catalog.Translations(ctx, profile.ID, ids, profile.TargetLang)
	if err != nil {
		log.Error("failed to load translations: %v", err)
		return nil, errors.NewInternalError(err)
	}

	batch := &models.LearnBatch{Words: []models.LearnWord{}}
	for _, w := range words {
		options := displayTranslations(translations.Texts(w.ID))
		if len(options) == 0 {
			log.Debug("skipping word %d without translation", w.ID)
			continue
		}
		batch.Words = append(batch.Words, models.LearnWord{
			WordID:       w.ID,
			Word:         w.Lemma,
			Translation:  options[0],
			Translations: options,
			Rank:         w.Rank,
		})
	}

	if len(batch.Words) > 0 {
		id, err := s.sessions.Create(ctx, profile.ID, models.SessionLearn)
		if err != nil {
			log.Error("failed to create learn session: %v", err)
			return nil, errors.NewInternalError(err)
		}
		batch.SessionID = &id
	}
	log.Info("learn batch ready: %d words", len(batch.Words))
	return batch, nil
}

func (s *studyService) SubmitLearn(ctx context.Context, profileID int64, sub models.Submission) (*models.LearnOutcome, error) {
	log := logger.FromContext(ctx).WithField("profile_id", profileID)

	profile, err := loadProfile(ctx, s.profiles, profileID)
	if err != nil {
		return nil, err
	}
	ids, err := submittedWordIDs(sub)
	if err != nil {
		return nil, err
	}
	if err := s.checkSession(ctx, profile.ID, sub.SessionID, models.SessionLearn); err != nil {
		return nil, err
	}

	translations, err := s.catalog.Translations(ctx, profile.ID, ids, profile.TargetLang)
	if err != nil {
		log.Error("failed to load translations: %v", err)
		return nil, errors.NewInternalError(err)
	}

	now := s.now()
	out := &models.LearnOutcome{WordsTotal: len(sub.Words), Results: make([]models.AnswerResult, 0, len(sub.Words))}
	for _, in := range sub.Words {
		res := answer.Evaluate(in.Answer, translations.Texts(in.WordID))
		if res.Correct {
			out.WordsCorrect++
		}
		out.Results = append(out.Results, models.AnswerResult{
			WordID:         in.WordID,
			Correct:        res.Correct,
			CorrectAnswers: res.Accepted,
		})
	}
	out.AllCorrect = out.WordsCorrect == out.WordsTotal

	// Words only count as learned once the whole batch is answered correctly.
	if out.AllCorrect {
		rows := make([]models.WordProgress, len(ids))
		for i, id := range ids {
			rows[i] = srs.NewLearned(profile.ID, id, now)
		}
		n, err := s.progress.InsertNew(ctx, rows)
		if err != nil {
			log.Error("failed to store learned words: %v", err)
			return nil, errors.NewInternalError(err)
		}
		out.Learned = n
		for i := range out.Results {
			out.Results[i].NextReviewAt = rows[i].NextReviewAt
		}
	}

	if err := s.finishSession(ctx, sub.SessionID, out.WordsTotal, out.WordsCorrect, now); err != nil {
		return nil, err
	}
	log.Info("learn submitted: %d/%d correct, %d learned", out.WordsCorrect, out.WordsTotal, out.Learned)
	return out, nil
}

func (s *studyService) StartReview(ctx context.Context, profileID int64) (*models.ReviewBatch, error) {
	log := logger.FromContext(ctx).WithField("profile_id", profileID)

	profile, err := loadProfile(ctx, s.profiles, profileID)
	if err != nil {
		return nil, err
	}
	limit := batchSize(profile.DailyReviewWords, s.cfg.ReviewBatchSize)
	if limit <= 0 {
		return nil, errors.NewValidationError("daily_review_words", "must be positive")
	}

	due, err := s.progress.Due(ctx, profile.ID, s.now(), limit)
	if err != nil {
		log.Error("failed to load due words: %v", err)
		return nil, errors.NewInternalError(err)
	}
	ids := make([]int64, len(due))
	for i, d := range due {
		ids[i] = d.WordID
	}
	translations, err := s.catalog.Translations(ctx, profile.ID, ids, profile.TargetLang)
	if err != nil {
		log.Error("failed to load translations: %v", err)
		return nil, errors.NewInternalError(err)
	}

	batch := &models.ReviewBatch{Words: []models.ReviewWord{}}
	for _, d := range due {
		options := displayTranslations(translations.Texts(d.WordID))
		if len(options) == 0 {
			continue
		}
		batch.Words = append(batch.Words, models.ReviewWord{
			WordID:       d.WordID,
			Word:         d.Lemma,
			Translation:  options[0],
			Translations: options,
			LearnedAt:    d.LearnedAt,
			NextReviewAt: d.NextReviewAt,
			Stage:        d.Stage,
		})
	}

	if len(batch.Words) > 0 {
		id, err := s.sessions.Create(ctx, profile.ID, models.SessionReview)
		if err != nil {
			log.Error("failed to create review session: %v", err)
			return nil, errors.NewInternalError(err)
		}
		batch.SessionID = &id
	}
	log.Info("review batch ready: %d of %d due words", len(batch.Words), len(due))
	return batch, nil
}

func (s *studyService) SubmitReview(ctx context.Context, profileID int64, sub models.Submission) (*models.ReviewOutcome, error) {
	log := logger.FromContext(ctx).WithField("profile_id", profileID)

	profile, err := loadProfile(ctx, s.profiles, profileID)
	if err != nil {
		return nil, err
	}
	ids, err := submittedWordIDs(sub)
	if err != nil {
		return nil, err
	}
	if err := s.checkSession(ctx, profile.ID, sub.SessionID, models.SessionReview); err != nil {
		return nil, err
	}

	progress, err := s.progress.Get(ctx, profile.ID, ids)
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	for _, id := range ids {
		if _, ok := progress[id]; !ok {
			return nil, errors.NewValidationError("word_id", fmt.Sprintf("word %d has not been learned", id))
		}
	}

	translations, err := s.catalog.Translations(ctx, profile.ID, ids, profile.TargetLang)
	if err != nil {
		log.Error("failed to load translations: %v", err)
		return nil, errors.NewInternalError(err)
	}

	now := s.now()
	out := &models.ReviewOutcome{WordsTotal: len(sub.Words), Results: make([]models.AnswerResult, 0, len(sub.Words))}
	rows := make([]models.WordProgress, 0, len(sub.Words))
	events := make([]models.ReviewEvent, 0, len(sub.Words))
	for _, in := range sub.Words {
		res := answer.Evaluate(in.Answer, translations.Texts(in.WordID))
		quality := answer.ApplyQualityOverride(res.Correct, res.Quality, in.Quality)
		updated := srs.ApplyReview(progress[in.WordID], quality, res.Correct, now)
		rows = append(rows, updated)
		events = append(events, srs.ReviewEvent(updated, res.Correct, now))

		if res.Correct {
			out.WordsCorrect++
		}
		out.Results = append(out.Results, models.AnswerResult{
			WordID:         in.WordID,
			Correct:        res.Correct,
			CorrectAnswers: res.Accepted,
			NextReviewAt:   updated.NextReviewAt,
		})
	}
	out.WordsIncorrect = out.WordsTotal - out.WordsCorrect

	if err := s.progress.SaveReviews(ctx, rows, events); err != nil {
		if stderrors.Is(err, repository.ErrStaleProgress) {
			log.Warn("review submission lost a concurrent update: %v", err)
			return nil, errors.NewConflictError("word progress", err)
		}
		log.Error("failed to save reviews: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if err := s.finishSession(ctx, sub.SessionID, out.WordsTotal, out.WordsCorrect, now); err != nil {
		return nil, err
	}
	log.Info("review submitted: %d/%d correct", out.WordsCorrect, out.WordsTotal)
	return out, nil
}

func (s *studyService) SeedReview(ctx context.Context, profileID int64, limit int) (int, error) {
	log := logger.FromContext(ctx).WithField("profile_id", profileID)

	profile, err := loadProfile(ctx, s.profiles, profileID)
	if err != nil {
		return 0, err
	}
	limit = batchSize(limit, s.cfg.ReviewBatchSize)
	if limit <= 0 {
		return 0, errors.NewValidationError("limit", "must be positive")
	}

	words, err := s.catalog.CatalogWordsToLearn(ctx, profile.ID, profile.NativeLang, profile.TargetLang, limit)
	if err != nil {
		log.Error("failed to load words to seed: %v", err)
		return 0, errors.NewInternalError(err)
	}
	now := s.now()
	rows := make([]models.WordProgress, len(words))
	for i, w := range words {
		rows[i] = srs.SeedDue(profile.ID, w.ID, now)
	}
	n, err := s.progress.InsertNew(ctx, rows)
	if err != nil {
		log.Error("failed to seed review words: %v", err)
		return 0, errors.NewInternalError(err)
	}
	log.Info("seeded %d review words", n)
	return n, nil
}

func (s *studyService) AddCustomWord(ctx context.Context, profileID int64, lemma, translation string) error {
	log := logger.FromContext(ctx).WithField("profile_id", profileID)

	profile, err := loadProfile(ctx, s.profiles, profileID)
	if err != nil {
		return err
	}
	lemma = textnorm.Normalize(lemma)
	translation = strings.TrimSpace(translation)
	if lemma == "" {
		return errors.NewValidationError("word", "cannot be empty")
	}
	if len(textnorm.SplitOptions(translation)) == 0 {
		return errors.NewValidationError("translation", "cannot be empty")
	}

	wordID, err := s.catalog.UpsertWord(ctx, models.Word{Lemma: lemma, Lang: profile.NativeLang})
	if err != nil {
		log.Error("failed to store custom word: %v", err)
		return errors.NewInternalError(err)
	}
	if err := s.catalog.AddCustomWord(ctx, profile.ID, wordID, profile.TargetLang, translation); err != nil {
		log.Error("failed to store custom translation: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

// checkSession verifies that an optional session id names a session of the
// learner of the given type.
func (s *studyService) checkSession(ctx context.Context, profileID int64, sessionID *int64, sessionType string) error {
	if sessionID == nil {
		return nil
	}
	session, err := s.sessions.Get(ctx, *sessionID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load session %d: %v", *sessionID, err)
		return errors.NewInternalError(err)
	}
	if session == nil || session.ProfileID != profileID || session.SessionType != sessionType {
		return errors.NewNotFoundError("session", *sessionID)
	}
	return nil
}

func (s *studyService) finishSession(ctx context.Context, sessionID *int64, total, correct int, now time.Time) error {
	if sessionID == nil {
		return nil
	}
	if err := s.sessions.Finish(ctx, *sessionID, total, correct, now); err != nil {
		logger.FromContext(ctx).Error("failed to finish session %d: %v", *sessionID, err)
		return errors.NewInternalError(err)
	}
	return nil
}

func submittedWordIDs(sub models.Submission) ([]int64, error) {
	if len(sub.Words) == 0 {
		return nil, errors.NewValidationError("words", "cannot be empty")
	}
	seen := make(map[int64]struct{}, len(sub.Words))
	ids := make([]int64, 0, len(sub.Words))
	for _, in := range sub.Words {
		if in.WordID <= 0 {
			return nil, errors.NewValidationError("word_id", "must be positive")
		}
		if _, dup := seen[in.WordID]; dup {
			return nil, errors.NewValidationError("words", fmt.Sprintf("duplicate word_id %d", in.WordID))
		}
		seen[in.WordID] = struct{}{}
		ids = append(ids, in.WordID)
	}
	return ids, nil
}

func batchSize(own, fallback int) int {
	if own > 0 {
		return own
	}
	return fallback
}

// displayTranslations returns the distinct trimmed translations in sorted
// order.
func displayTranslations(texts []string) []string {
	seen := make(map[string]struct{}, len(texts))
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func appendUnique(dst, src []models.Word, n int) []models.Word {
	seen := make(map[int64]struct{}, len(dst))
	for _, w := range dst {
		seen[w.ID] = struct{}{}
	}
	for _, w := range src {
		if n == 0 {
			break
		}
		if _, ok := seen[w.ID]; ok {
			continue
		}
		seen[w.ID] = struct{}{}
		dst = append(dst, w)
		n--
	}
	return dst
}
