package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/repository"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/errors"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/logger"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}

	now := time.Now()
	chat.CreatedAt = now
	chat.UpdatedAt = now

	_, err := r.client.Collection("chats").Doc(chat.ID).Set(ctx, chat)
	if err != nil {
		return errors.Internal("Failed to create chat", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.client.Collection("chats").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat", nil)
		}
		return nil, errors.Internal("Failed to get chat", err)
	}

	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.Internal("Failed to parse chat data", err)
	}

	return &chat, nil
}

func (r *firestoreChatRepository) GetByListingAndBuyer(ctx context.Context, listingID, buyerID string) (*entity.Chat, error) {
	query := r.client.Collection("chats").
		Where("listingId", "==", listingID).
		Where("buyerId", "==", buyerID).
		Limit(1)

	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Chat", nil)
		}
		return nil, errors.Internal("Failed to query chat by listing and buyer", err)
	}

	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.Internal("Failed to parse chat data", err)
	}

	return &chat, nil
}

func (r *firestoreChatRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	query := r.client.Collection("chats").
		Where("participants", "array-contains", userID).
		OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching chats for user %s: %v", userID, err)
		return nil, 0, errors.Internal("Failed to fetch chats", err)
	}

	total := int64(len(allDocs))

	start := offset
	end := len(allDocs)
	if limit > 0 {
		end = start + limit
		if end > len(allDocs) {
			end = len(allDocs)
		}
	}
	if start > len(allDocs) {
		start = len(allDocs)
	}

	var chats []*entity.Chat
	for i := start; i < end; i++ {
		var chat entity.Chat
		if err := allDocs[i].DataTo(&chat); err != nil {
			logger.Warn("Error parsing chat data for user %s: %v", userID, err)
			continue
		}
		chats = append(chats, &chat)
	}

	return chats, total, nil
}

func (r *firestoreChatRepository) ListByBuyerID(ctx context.Context, buyerID string) ([]*entity.Chat, error) {
	docs, err := r.client.Collection("chats").Where("buyerId", "==", buyerID).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query chats by buyer", err)
	}

	var chats []*entity.Chat
	for _, doc := range docs {
		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			continue
		}
		chats = append(chats, &chat)
	}

	return chats, nil
}

func (r *firestoreChatRepository) ListActive(ctx context.Context) ([]*entity.Chat, error) {
	docs, err := r.client.Collection("chats").Where("isActive", "==", true).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query active chats", err)
	}

	var chats []*entity.Chat
	for _, doc := range docs {
		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			continue
		}
		chats = append(chats, &chat)
	}

	return chats, nil
}

func (r *firestoreChatRepository) Update(ctx context.Context, chat *entity.Chat) error {
	chat.UpdatedAt = time.Now()

	_, err := r.client.Collection("chats").Doc(chat.ID).Set(ctx, chat)
	if err != nil {
		return errors.Internal("Failed to update chat", err)
	}

	return nil
}

func (r *firestoreChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	message.CreatedAt = time.Now()

	_, err := r.client.Collection("chats").Doc(message.ChatID).Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetMessagesByChat(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.client.Collection("chats").Doc(chatID).Collection("messages").OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while counting messages for chat %s: %v", chatID, err)
		return nil, 0, errors.Internal("Failed to count messages for chat", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, 0, errors.Internal("Failed to parse message data", err)
		}

		messages = append(messages, &message)
	}

	return messages, total, nil
}

// readStateID gives each (chat, user) pair a deterministic document id, which
// makes UpsertReadState duplicate-safe.
func readStateID(chatID, userID string) string {
	return fmt.Sprintf("%s_%s", chatID, userID)
}

func (r *firestoreChatRepository) UpsertReadState(ctx context.Context, state *entity.ReadState) error {
	_, err := r.client.Collection("readStates").Doc(readStateID(state.ChatID, state.UserID)).Set(ctx, state)
	if err != nil {
		return errors.Internal("Failed to upsert read state", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetReadState(ctx context.Context, chatID, userID string) (*entity.ReadState, error) {
	doc, err := r.client.Collection("readStates").Doc(readStateID(chatID, userID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Read state", nil)
		}
		return nil, errors.Internal("Failed to get read state", err)
	}

	var state entity.ReadState
	if err := doc.DataTo(&state); err != nil {
		return nil, errors.Internal("Failed to parse read state data", err)
	}

	return &state, nil
}

func (r *firestoreChatRepository) SetHasUnread(ctx context.Context, chatID, userID string, hasUnread bool) error {
	updates := []firestore.Update{
		{Path: "hasUnread", Value: hasUnread},
	}
	if !hasUnread {
		updates = append(updates, firestore.Update{Path: "lastReadAt", Value: time.Now()})
	}

	_, err := r.client.Collection("readStates").Doc(readStateID(chatID, userID)).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			// Row missing (legacy chat), recreate it instead of failing
			return r.UpsertReadState(ctx, &entity.ReadState{
				ChatID:     chatID,
				UserID:     userID,
				HasUnread:  hasUnread,
				LastReadAt: time.Now(),
			})
		}
		return errors.Internal("Failed to update read state", err)
	}

	return nil
}
