package usecase

import (
	"context"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/repository"
)

type NewsUseCase struct {
	newsRepo repository.NewsRepository
}

func NewNewsUseCase(newsRepo repository.NewsRepository) *NewsUseCase {
	return &NewsUseCase{
		newsRepo: newsRepo,
	}
}

func (uc *NewsUseCase) ListPosts(ctx context.Context, page, pageSize int) ([]*entity.NewsPost, int64, error) {
	offset := (page - 1) * pageSize
	return uc.newsRepo.List(ctx, pageSize, offset)
}

func (uc *NewsUseCase) GetPostBySlug(ctx context.Context, slug string) (*entity.NewsPost, error) {
	return uc.newsRepo.GetBySlug(ctx, slug)
}
