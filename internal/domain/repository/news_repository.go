package repository

import (
	"context"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
)

type NewsRepository interface {
	List(ctx context.Context, limit, offset int) ([]*entity.NewsPost, int64, error)
	GetBySlug(ctx context.Context, slug string) (*entity.NewsPost, error)
}
