package services

import (
	"context"
	"strings"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

// Languages a profile may study or answer in.
var supportedLangs = map[string]struct{}{"en": {}, "ru": {}}

// ProfileService handles profile-related business logic
type ProfileService interface {
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	CreateProfile(ctx context.Context, in models.Profile) (*models.Profile, error)
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	DeleteProfile(ctx context.Context, id int64) error
}

// ProfileDefaults fills settings a new profile leaves empty.
type ProfileDefaults struct {
	NativeLang       string
	TargetLang       string
	LearnBatchSize   int
	DailyReviewWords int
}

type profileService struct {
	profileRepo repository.ProfileRepository
	defaults    ProfileDefaults
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo repository.ProfileRepository, defaults ProfileDefaults) ProfileService {
	return &profileService{profileRepo: profileRepo, defaults: defaults}
}

func (s *profileService) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing profiles")

	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		log.Error("failed to list profiles: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return profiles, nil
}

func (s *profileService) CreateProfile(ctx context.Context, in models.Profile) (*models.Profile, error) {
	log := logger.FromContext(ctx)

	in.Username = strings.TrimSpace(in.Username)
	in.NativeLang = strings.ToLower(strings.TrimSpace(in.NativeLang))
	in.TargetLang = strings.ToLower(strings.TrimSpace(in.TargetLang))
	log.Debug("creating profile: username=%s", in.Username)

	if in.Username == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}
	if in.NativeLang == "" {
		in.NativeLang = s.defaults.NativeLang
	}
	if in.TargetLang == "" {
		in.TargetLang = s.defaults.TargetLang
	}
	if in.LearnBatchSize == 0 {
		in.LearnBatchSize = s.defaults.LearnBatchSize
	}
	if in.DailyReviewWords == 0 {
		in.DailyReviewWords = s.defaults.DailyReviewWords
	}

	if _, ok := supportedLangs[in.NativeLang]; !ok {
		return nil, errors.NewValidationError("native_lang", "unsupported language "+in.NativeLang)
	}
	if _, ok := supportedLangs[in.TargetLang]; !ok {
		return nil, errors.NewValidationError("target_lang", "unsupported language "+in.TargetLang)
	}
	if in.NativeLang == in.TargetLang {
		return nil, errors.NewValidationError("target_lang", "must differ from native_lang")
	}
	if in.LearnBatchSize <= 0 {
		return nil, errors.NewValidationError("learn_batch_size", "must be positive")
	}
	if in.DailyReviewWords <= 0 {
		return nil, errors.NewValidationError("daily_review_words", "must be positive")
	}

	profile, err := s.profileRepo.Upsert(ctx, in)
	if err != nil {
		log.Error("failed to create profile: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	return loadProfile(ctx, s.profileRepo, id)
}

func (s *profileService) DeleteProfile(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting profile: id=%d", id)

	if err := s.profileRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete profile: %v", err)
		return errors.NewInternalError(err)
	}

	return nil
}

func loadProfile(ctx context.Context, repo repository.ProfileRepository, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting profile: id=%d", id)

	profile, err := repo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", id)
	}
	return profile, nil
}
