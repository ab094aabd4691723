package usecase

import (
	"context"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/repository"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/errors"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
	}
}

type UpdateProfileInput struct {
	Name         *string `json:"name,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	Organization *string `json:"organization,omitempty"`
	AvatarURL    *string `json:"avatar_url,omitempty"`
}

// GetOrCreate returns the profile for uid, creating a stub row from the auth
// provider's email on first sight.
func (uc *ProfileUseCase) GetOrCreate(ctx context.Context, uid, email string) (*entity.Profile, error) {
	profile, err := uc.profileRepo.GetByID(ctx, uid)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	profile = &entity.Profile{
		ID:    uid,
		Email: email,
	}
	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (uc *ProfileUseCase) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	return uc.profileRepo.GetByID(ctx, id)
}

func (uc *ProfileUseCase) Update(ctx context.Context, userID string, input UpdateProfileInput) (*entity.Profile, error) {
	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.Organization != nil {
		profile.Organization = *input.Organization
	}
	if input.AvatarURL != nil {
		profile.AvatarURL = *input.AvatarURL
	}

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
