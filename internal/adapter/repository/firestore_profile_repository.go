package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/repository"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/errors"
)

type firestoreProfileRepository struct {
	client *firestore.Client
}

func NewFirestoreProfileRepository(client *firestore.Client) repository.ProfileRepository {
	return &firestoreProfileRepository{
		client: client,
	}
}

func (r *firestoreProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	_, err := r.client.Collection("profiles").Doc(profile.ID).Set(ctx, profile)
	if err != nil {
		return errors.Internal("Failed to create profile", err)
	}

	return nil
}

func (r *firestoreProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	doc, err := r.client.Collection("profiles").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Profile", err)
		}
		return nil, errors.Internal("Failed to get profile", err)
	}

	var profile entity.Profile
	if err := doc.DataTo(&profile); err != nil {
		return nil, errors.Internal("Failed to parse profile data", err)
	}

	return &profile, nil
}

func (r *firestoreProfileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	profile.UpdatedAt = time.Now()

	_, err := r.client.Collection("profiles").Doc(profile.ID).Set(ctx, profile)
	if err != nil {
		return errors.Internal("Failed to update profile", err)
	}

	return nil
}

func (r *firestoreProfileRepository) ListByOrganization(ctx context.Context, organization string) ([]*entity.Profile, error) {
	docs, err := r.client.Collection("profiles").Where("organization", "==", organization).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query profiles by organization", err)
	}

	var profiles []*entity.Profile
	for _, doc := range docs {
		var profile entity.Profile
		if err := doc.DataTo(&profile); err != nil {
			continue
		}
		profiles = append(profiles, &profile)
	}

	return profiles, nil
}
