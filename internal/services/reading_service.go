package services

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/reading"
	"github.com/vytor/wordflash/internal/repository"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Reading request bounds.
const (
	MaxReadingTargetWords = 50
	MaxReadingDays        = 30
)

// ReadingService builds reading-practice previews around recently learned
// words.
type ReadingService interface {
	Preview(ctx context.Context, profileID int64, req models.ReadingRequest) (*models.ReadingPreview, error)
	// Flag hides passages from the learner's future previews and returns how
	// many were newly hidden.
	Flag(ctx context.Context, profileID int64, passageIDs []int64) (int, error)
	Corpora(ctx context.Context, profileID int64) ([]models.Corpus, error)
	// SetCorpusEnabled switches a corpus on or off for the learner.
	SetCorpusEnabled(ctx context.Context, profileID int64, slug string, enabled bool) error
	// RefreshIndex rebuilds the cached passage index of one language.
	RefreshIndex(ctx context.Context, lang string) error
	// RefreshAll rebuilds the index of every language with reading sources.
	RefreshAll(ctx context.Context) error
}

// ReadingConfig tunes preview construction.
type ReadingConfig struct {
	LookbackDays   int
	CandidateLimit int
	BundleBases    int
}

type readingService struct {
	profiles repository.ProfileRepository
	catalog  repository.CatalogRepository
	progress repository.ProgressRepository
	reading  repository.ReadingRepository
	cfg      ReadingConfig
	now      func() time.Time

	mu      sync.RWMutex
	indexes map[string]*reading.Index
	builds  singleflight.Group
}

// NewReadingService creates a new ReadingService
func NewReadingService(
	profiles repository.ProfileRepository,
	catalog repository.CatalogRepository,
	progress repository.ProgressRepository,
	readingRepo repository.ReadingRepository,
	cfg ReadingConfig,
) ReadingService {
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 3
	}
	if cfg.CandidateLimit <= 0 {
		cfg.CandidateLimit = reading.DefaultCandidateLimit
	}
	if cfg.BundleBases <= 0 {
		cfg.BundleBases = reading.DefaultBundleBases
	}
	return &readingService{
		profiles: profiles,
		catalog:  catalog,
		progress: progress,
		reading:  readingRepo,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
		indexes:  make(map[string]*reading.Index),
	}
}

func (s *readingService) Preview(ctx context.Context, profileID int64, req models.ReadingRequest) (*models.ReadingPreview, error) {
	log := logger.FromContext(ctx).WithField("profile_id", profileID)

	profile, err := loadProfile(ctx, s.profiles, profileID)
	if err != nil {
		return nil, err
	}

	targetWords := min(max(req.TargetWords, 1), MaxReadingTargetWords)
	days := req.Days
	if days == 0 {
		days = s.cfg.LookbackDays
	}
	days = min(max(days, 1), MaxReadingDays)
	variant := max(req.Variant, 0)
	log.Debug("reading preview: target_words=%d, days=%d, variant=%d", targetWords, days, variant)

	var (
		targets []string
		sources []models.ReadingSource
		blocked []int64
		idx     *reading.Index
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		targets, err = s.targetTokens(gctx, profile, targetWords, days)
		return err
	})
	g.Go(func() error {
		var err error
		sources, err = s.sources(gctx, profile)
		return err
	})
	g.Go(func() error {
		var err error
		blocked, err = s.reading.BlockedPassages(gctx, profile.ID)
		return err
	})
	g.Go(func() error {
		var err error
		idx, err = s.index(gctx, profile.TargetLang)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to load reading inputs: %v", err)
		return nil, errors.NewInternalError(err)
	}

	preview := &models.ReadingPreview{
		TargetWordsRequested: targetWords,
		SourceTitles:         []string{},
		CorpusNames:          []string{},
		PassageIDs:           []int64{},
		HighlightTokens:      []string{},
	}
	if len(targets) == 0 {
		preview.Message = reading.MsgNoTargets
		return preview, nil
	}
	preview.TargetWords = len(targets)
	if len(sources) == 0 {
		preview.Message = reading.MsgNoSources
		return preview, nil
	}

	filter := reading.Filter{
		Sources: make(map[int64]struct{}, len(sources)),
		Blocked: make(map[int64]struct{}, len(blocked)),
	}
	bySource := make(map[int64]models.ReadingSource, len(sources))
	for _, src := range sources {
		filter.Sources[src.ID] = struct{}{}
		bySource[src.ID] = src
	}
	for _, id := range blocked {
		filter.Blocked[id] = struct{}{}
	}

	candidates := idx.Rank(targets, filter, s.cfg.CandidateLimit)
	sel, ok := reading.Select(candidates, targets, targetWords, variant, s.cfg.BundleBases)
	if !ok {
		preview.Message = reading.MsgNoPassages
		return preview, nil
	}

	preview.Text = sel.Text()
	preview.PassageIDs = sel.PassageIDs()
	preview.WordCount = sel.WordCount
	preview.Hits = sel.Hits
	preview.Coverage = sel.Coverage
	preview.HighlightTokens = sel.Highlighted
	for _, p := range sel.Passages {
		src := bySource[p.SourceID]
		preview.SourceTitles = appendDistinct(preview.SourceTitles, src.Title)
		preview.CorpusNames = appendDistinct(preview.CorpusNames, src.CorpusName)
	}
	if len(preview.SourceTitles) > 0 {
		preview.Title = preview.SourceTitles[0]
	}
	if len(preview.SourceTitles) == 1 {
		preview.SourceTitle = &preview.SourceTitles[0]
	}
	if len(preview.CorpusNames) == 1 {
		preview.CorpusName = &preview.CorpusNames[0]
	}

	log.Info("reading preview built: passages=%d, words=%d, coverage=%.2f", len(preview.PassageIDs), preview.WordCount, preview.Coverage)
	return preview, nil
}

func (s *readingService) targetTokens(ctx context.Context, profile *models.Profile, n, days int) ([]string, error) {
	since := s.now().AddDate(0, 0, -days)
	ids, err := s.progress.RecentlyLearned(ctx, profile.ID, since, reading.MaxRecentWords)
	if err != nil || len(ids) == 0 {
		return nil, err
	}
	set, err := s.catalog.Translations(ctx, profile.ID, ids, profile.TargetLang)
	if err != nil {
		return nil, err
	}
	texts := make(map[int64][]string, len(set))
	for id := range set {
		texts[id] = set.Texts(id)
	}
	return reading.ExtractTargetTokens(ids, texts, n), nil
}

// sources returns the sources of the learner's enabled corpora, or every
// source of the language when that leaves nothing.
func (s *readingService) sources(ctx context.Context, profile *models.Profile) ([]models.ReadingSource, error) {
	corpora, err := s.reading.EnabledCorpora(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	sources, err := s.reading.Sources(ctx, profile.TargetLang, corpora)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 && len(corpora) > 0 {
		logger.FromContext(ctx).Debug("enabled corpora have no sources, falling back to all %s sources", profile.TargetLang)
		return s.reading.Sources(ctx, profile.TargetLang, nil)
	}
	return sources, nil
}

func (s *readingService) Flag(ctx context.Context, profileID int64, passageIDs []int64) (int, error) {
	log := logger.FromContext(ctx).WithField("profile_id", profileID)

	profile, err := loadProfile(ctx, s.profiles, profileID)
	if err != nil {
		return 0, err
	}
	ids := make([]int64, 0, len(passageIDs))
	seen := make(map[int64]struct{}, len(passageIDs))
	for _, id := range passageIDs {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	n, err := s.reading.BlockPassages(ctx, profile.ID, ids)
	if err != nil {
		log.Error("failed to flag passages: %v", err)
		return 0, errors.NewInternalError(err)
	}
	log.Info("flagged %d passages", n)
	return n, nil
}

func (s *readingService) Corpora(ctx context.Context, profileID int64) ([]models.Corpus, error) {
	profile, err := loadProfile(ctx, s.profiles, profileID)
	if err != nil {
		return nil, err
	}
	corpora, err := s.reading.Corpora(ctx, profile.ID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list corpora: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if corpora == nil {
		corpora = []models.Corpus{}
	}
	return corpora, nil
}

func (s *readingService) SetCorpusEnabled(ctx context.Context, profileID int64, slug string, enabled bool) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{"profile_id": profileID, "corpus": slug})

	corpora, err := s.Corpora(ctx, profileID)
	if err != nil {
		return err
	}
	for _, c := range corpora {
		if c.Slug != slug {
			continue
		}
		if err := s.reading.SetCorpusEnabled(ctx, profileID, c.ID, enabled); err != nil {
			log.Error("failed to toggle corpus: %v", err)
			return errors.NewInternalError(err)
		}
		log.Info("corpus enabled=%t", enabled)
		return nil
	}
	return errors.NewNotFoundError("corpus", slug)
}

// index returns the cached index of lang, building it on first use.
func (s *readingService) index(ctx context.Context, lang string) (*reading.Index, error) {
	s.mu.RLock()
	idx, ok := s.indexes[lang]
	s.mu.RUnlock()
	if ok {
		return idx, nil
	}
	return s.build(ctx, lang)
}

func (s *readingService) build(ctx context.Context, lang string) (*reading.Index, error) {
	v, err, _ := s.builds.Do(lang, func() (any, error) {
		log := logger.FromContext(ctx).WithField("lang", lang)
		start := time.Now()

		passages, err := s.reading.Passages(ctx, lang)
		if err != nil {
			return nil, err
		}
		kept := passages[:0]
		for _, p := range passages {
			if reading.MatchesTargetLanguage(p.Text, lang) {
				kept = append(kept, p)
			}
		}
		idx := reading.NewIndex(kept)

		s.mu.Lock()
		s.indexes[lang] = idx
		s.mu.Unlock()

		log.Info("passage index built: %d of %d passages in %v", len(kept), len(passages), time.Since(start))
		return idx, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*reading.Index), nil
}

func (s *readingService) RefreshIndex(ctx context.Context, lang string) error {
	if _, err := s.build(ctx, lang); err != nil {
		logger.FromContext(ctx).Error("failed to refresh %s index: %v", lang, err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *readingService) RefreshAll(ctx context.Context) error {
	langs, err := s.reading.Languages(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list reading languages: %v", err)
		return errors.NewInternalError(err)
	}
	for _, lang := range langs {
		if err := s.RefreshIndex(ctx, lang); err != nil {
			return err
		}
	}
	return nil
}

func appendDistinct(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
