package repository

import (
	"context"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	GetByListingAndBuyer(ctx context.Context, listingID, buyerID string) (*entity.Chat, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error)
	ListByBuyerID(ctx context.Context, buyerID string) ([]*entity.Chat, error)
	ListActive(ctx context.Context) ([]*entity.Chat, error)
	Update(ctx context.Context, chat *entity.Chat) error

	// Message methods
	CreateMessage(ctx context.Context, message *entity.Message) error
	GetMessagesByChat(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error)

	// Read-state methods; upsert is keyed on (chat, user)
	UpsertReadState(ctx context.Context, state *entity.ReadState) error
	GetReadState(ctx context.Context, chatID, userID string) (*entity.ReadState, error)
	SetHasUnread(ctx context.Context, chatID, userID string, hasUnread bool) error
}
