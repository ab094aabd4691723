package repository

import (
	"context"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
	ListByOrganization(ctx context.Context, organization string) ([]*entity.Profile, error)
}
