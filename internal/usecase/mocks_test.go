package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/repository"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/service"
)

type mockListingRepository struct {
	mock.Mock
}

func (m *mockListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *mockListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Listing), args.Error(1)
}

func (m *mockListingRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Listing, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Listing), args.Error(1)
}

func (m *mockListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *mockListingRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Listing, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Listing), args.Get(1).(int64), args.Error(2)
}

func (m *mockListingRepository) Search(ctx context.Context, query string, filter map[string]interface{}, bounds *repository.GeoBounds, availableAfter time.Time, limit, offset int) ([]*entity.Listing, int64, error) {
	args := m.Called(ctx, query, filter, bounds, availableAfter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Listing), args.Get(1).(int64), args.Error(2)
}

func (m *mockListingRepository) ListByOwnerID(ctx context.Context, ownerID string, status string, limit, offset int) ([]*entity.Listing, int64, error) {
	args := m.Called(ctx, ownerID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Listing), args.Get(1).(int64), args.Error(2)
}

func (m *mockListingRepository) ListExpired(ctx context.Context, before time.Time) ([]*entity.Listing, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Listing), args.Error(1)
}

func (m *mockListingRepository) TransitionStatus(ctx context.Context, listingID, newStatus string) error {
	args := m.Called(ctx, listingID, newStatus)
	return args.Error(0)
}

type mockChatRepository struct {
	mock.Mock
}

func (m *mockChatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	args := m.Called(ctx, chat)
	if args.Error(0) == nil && chat.ID == "" {
		chat.ID = "chat-generated"
		chat.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *mockChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Chat), args.Error(1)
}

func (m *mockChatRepository) GetByListingAndBuyer(ctx context.Context, listingID, buyerID string) (*entity.Chat, error) {
	args := m.Called(ctx, listingID, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Chat), args.Error(1)
}

func (m *mockChatRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Chat), args.Get(1).(int64), args.Error(2)
}

func (m *mockChatRepository) ListByBuyerID(ctx context.Context, buyerID string) ([]*entity.Chat, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Chat), args.Error(1)
}

func (m *mockChatRepository) ListActive(ctx context.Context) ([]*entity.Chat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Chat), args.Error(1)
}

func (m *mockChatRepository) Update(ctx context.Context, chat *entity.Chat) error {
	args := m.Called(ctx, chat)
	return args.Error(0)
}

func (m *mockChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	args := m.Called(ctx, message)
	if args.Error(0) == nil && message.ID == "" {
		message.ID = "msg-generated"
		message.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *mockChatRepository) GetMessagesByChat(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	args := m.Called(ctx, chatID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Message), args.Get(1).(int64), args.Error(2)
}

func (m *mockChatRepository) UpsertReadState(ctx context.Context, state *entity.ReadState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *mockChatRepository) GetReadState(ctx context.Context, chatID, userID string) (*entity.ReadState, error) {
	args := m.Called(ctx, chatID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReadState), args.Error(1)
}

func (m *mockChatRepository) SetHasUnread(ctx context.Context, chatID, userID string, hasUnread bool) error {
	args := m.Called(ctx, chatID, userID, hasUnread)
	return args.Error(0)
}

type mockWishlistRepository struct {
	mock.Mock
}

func (m *mockWishlistRepository) Add(ctx context.Context, userID, listingID string) (*entity.WishlistItem, error) {
	args := m.Called(ctx, userID, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WishlistItem), args.Error(1)
}

func (m *mockWishlistRepository) Remove(ctx context.Context, userID, listingID string) error {
	args := m.Called(ctx, userID, listingID)
	return args.Error(0)
}

func (m *mockWishlistRepository) IsSaved(ctx context.Context, userID, listingID string) (bool, error) {
	args := m.Called(ctx, userID, listingID)
	return args.Bool(0), args.Error(1)
}

func (m *mockWishlistRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.WishlistItemWithListing, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.WishlistItemWithListing), args.Get(1).(int64), args.Error(2)
}

func (m *mockWishlistRepository) Count(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockProfileRepository struct {
	mock.Mock
}

func (m *mockProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *mockProfileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileRepository) ListByOrganization(ctx context.Context, organization string) ([]*entity.Profile, error) {
	args := m.Called(ctx, organization)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Profile), args.Error(1)
}

// stubGeocoder returns a fixed point, or fails when failing is set.
type stubGeocoder struct {
	point   *service.GeoPoint
	failing bool
}

func (s *stubGeocoder) Geocode(ctx context.Context, address string) (*service.GeoPoint, error) {
	if s.failing {
		return nil, context.DeadlineExceeded
	}
	if s.point != nil {
		return s.point, nil
	}
	return &service.GeoPoint{Lat: 40.44, Lng: -79.99}, nil
}

// stubEmailService accepts everything and records nothing. Notification
// delivery runs on its own goroutine, recording here would race.
type stubEmailService struct{}

func (s *stubEmailService) Send(ctx context.Context, to, subject, text string) error {
	return nil
}
