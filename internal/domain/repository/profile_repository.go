package repository

import (
	"context"

	"github.com/devlinkhq/devlink/internal/domain/entity"
)

// ProfileRepository persists profile aggregates. Save is a compare-and-swap
// on the aggregate version: a stale save fails rather than overwriting a
// concurrent writer.
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	GetAll(ctx context.Context) ([]entity.Profile, error)
	Save(ctx context.Context, p *entity.Profile) error
	DeleteByUserID(ctx context.Context, userID string) error
}
