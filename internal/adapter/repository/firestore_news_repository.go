package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/repository"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/errors"
)

type firestoreNewsRepository struct {
	client *firestore.Client
}

func NewFirestoreNewsRepository(client *firestore.Client) repository.NewsRepository {
	return &firestoreNewsRepository{client: client}
}

func (r *firestoreNewsRepository) List(ctx context.Context, limit, offset int) ([]*entity.NewsPost, int64, error) {
	query := r.client.Collection("news").OrderBy("publishedAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch news posts", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var posts []*entity.NewsPost

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate news posts", err)
		}

		var post entity.NewsPost
		if err := doc.DataTo(&post); err != nil {
			return nil, 0, errors.Internal("Failed to parse news post data", err)
		}
		posts = append(posts, &post)
	}

	return posts, total, nil
}

func (r *firestoreNewsRepository) GetBySlug(ctx context.Context, slug string) (*entity.NewsPost, error) {
	query := r.client.Collection("news").Where("slug", "==", slug).Limit(1)

	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("News post", nil)
		}
		return nil, errors.Internal("Failed to query news post", err)
	}

	var post entity.NewsPost
	if err := doc.DataTo(&post); err != nil {
		return nil, errors.Internal("Failed to parse news post data", err)
	}

	return &post, nil
}
