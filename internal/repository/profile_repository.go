package repository

import (
	"context"

	"github.com/vytor/wordflash/internal/models"
)

// ProfileRepository handles profile data access
type ProfileRepository interface {
	Get(ctx context.Context, id int64) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	// Upsert creates the profile or updates the settings of an existing one
	// with the same username.
	Upsert(ctx context.Context, p models.Profile) (*models.Profile, error)
	Delete(ctx context.Context, id int64) error
}
