package services

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

const (
	DefaultWeakWordsLimit = 20
	maxWeakWordsLimit     = 100
	maxReviewPlanLimit    = 5000
	weakWordsTTL          = 2 * time.Minute
)

// StatsService reports on a learner's study history
type StatsService interface {
	// WeakWords lists words answered wrongly most often. Results for the
	// default limit are cached briefly unless refresh is set.
	WeakWords(ctx context.Context, profileID int64, limit int, refresh bool) (*models.WeakWords, error)
	// ReviewPlan lists scheduled words by next review. A limit of zero
	// returns every scheduled word.
	ReviewPlan(ctx context.Context, profileID int64, limit int) (*models.ReviewPlan, error)
}

type cachedWeakWords struct {
	data      *models.WeakWords
	updatedAt time.Time
}

type statsService struct {
	profiles repository.ProfileRepository
	catalog  repository.CatalogRepository
	stats    repository.StatsRepository
	now      func() time.Time

	mu    sync.Mutex
	cache map[int64]cachedWeakWords
}

// NewStatsService creates a new StatsService
func NewStatsService(profiles repository.ProfileRepository, catalog repository.CatalogRepository, stats repository.StatsRepository) StatsService {
	return &statsService{
		profiles: profiles,
		catalog:  catalog,
		stats:    stats,
		now:      func() time.Time { return time.Now().UTC() },
		cache:    make(map[int64]cachedWeakWords),
	}
}

func (s *statsService) WeakWords(ctx context.Context, profileID int64, limit int, refresh bool) (*models.WeakWords, error) {
	log := logger.FromContext(ctx).WithField("profile_id", profileID)
	log.Debug("getting weak words: limit=%d, refresh=%v", limit, refresh)

	if limit < 1 || limit > maxWeakWordsLimit {
		return nil, errors.NewValidationError("limit", "must be between 1 and 100")
	}
	profile, err := loadProfile(ctx, s.profiles, profileID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	cacheable := limit == DefaultWeakWordsLimit
	if cacheable && !refresh {
		if hit, ok := s.cached(profile.ID, now); ok {
			log.Debug("weak words served from cache")
			return hit, nil
		}
	}

	words, total, err := s.stats.WeakWords(ctx, profile.ID, profile.NativeLang, limit)
	if err != nil {
		log.Error("failed to get weak words: %v", err)
		return nil, errors.NewInternalError(err)
	}
	ids := make([]int64, len(words))
	for i, w := range words {
		ids[i] = w.WordID
	}
	translations, err := s.catalog.Translations(ctx, profile.ID, ids, profile.TargetLang)
	if err != nil {
		log.Error("failed to load translations: %v", err)
		return nil, errors.NewInternalError(err)
	}

	out := &models.WeakWords{Total: total, Items: make([]models.WeakWord, 0, len(words))}
	for _, w := range words {
		w.Translations = displayTranslations(translations.Texts(w.WordID))
		out.Items = append(out.Items, w)
	}

	if cacheable {
		s.mu.Lock()
		s.cache[profile.ID] = cachedWeakWords{data: out, updatedAt: now}
		s.mu.Unlock()
	}
	return out, nil
}

func (s *statsService) cached(profileID int64, now time.Time) (*models.WeakWords, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cache[profileID]
	if !ok || now.Sub(c.updatedAt) > weakWordsTTL {
		return nil, false
	}
	return c.data, true
}

func (s *statsService) ReviewPlan(ctx context.Context, profileID int64, limit int) (*models.ReviewPlan, error) {
	log := logger.FromContext(ctx).WithField("profile_id", profileID)
	log.Debug("getting review plan: limit=%d", limit)

	if limit < 0 || limit > maxReviewPlanLimit {
		return nil, errors.NewValidationError("limit", "must be between 0 and 5000")
	}
	profile, err := loadProfile(ctx, s.profiles, profileID)
	if err != nil {
		return nil, err
	}

	items, total, err := s.stats.ReviewPlan(ctx, profile.ID, profile.NativeLang, limit)
	if err != nil {
		log.Error("failed to get review plan: %v", err)
		return nil, errors.NewInternalError(err)
	}
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.WordID
	}
	translations, err := s.catalog.Translations(ctx, profile.ID, ids, profile.TargetLang)
	if err != nil {
		log.Error("failed to load translations: %v", err)
		return nil, errors.NewInternalError(err)
	}

	plan := &models.ReviewPlan{Total: total, Items: make([]models.ReviewPlanItem, 0, len(items))}
	for _, it := range items {
		it.Translations = displayTranslations(translations.Texts(it.WordID))
		plan.Items = append(plan.Items, it)
	}
	return plan, nil
}
