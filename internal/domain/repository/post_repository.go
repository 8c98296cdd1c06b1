package repository

import (
	"context"

	"github.com/devlinkhq/devlink/internal/domain/entity"
)

// PostRepository persists post aggregates. Save carries the same
// compare-and-swap contract as ProfileRepository.Save.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetAll(ctx context.Context) ([]entity.Post, error)
	Save(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id string) error
	DeleteByAuthor(ctx context.Context, userID string) error
}
