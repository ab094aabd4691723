package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/entity"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/repository"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/service"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/infrastructure/ratelimit"
	ws "github.com/mattwyattcooper/circularbuild-sub000/internal/infrastructure/websocket"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/errors"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/logger"
)

// ChatUseCase maintains conversations tied 1:1 to a (listing, buyer) pair,
// enforces participant-only access and tracks per-participant unread state.
type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	listingRepo repository.ListingRepository
	profileRepo repository.ProfileRepository
	wsManager   *ws.Manager
	email       service.EmailService
	rateLimiter *ratelimit.RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	listingRepo repository.ListingRepository,
	profileRepo repository.ProfileRepository,
	wsManager *ws.Manager,
	email service.EmailService,
) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		chatRepo:    chatRepo,
		listingRepo: listingRepo,
		profileRepo: profileRepo,
		wsManager:   wsManager,
		email:       email,
		rateLimiter: rateLimiter,
	}
}

type StartChatInput struct {
	ListingID      string
	InitialMessage string
}

type SendMessageInput struct {
	ChatID string
	Body   string
}

type ChatResponse struct {
	*entity.Chat
	Listing   *entity.Listing `json:"listing,omitempty"`
	OtherUser *entity.Profile `json:"other_user,omitempty"`
	HasUnread bool            `json:"has_unread"`
}

type MessageResponse struct {
	*entity.Message
	Sender *entity.Profile `json:"sender,omitempty"`
}

// StartChat opens (or returns) the conversation between buyerID and the
// listing's owner. Idempotent: repeated calls for the same (listing, buyer)
// return the same chat, and the two read-state rows are upserted either way.
func (uc *ChatUseCase) StartChat(ctx context.Context, buyerID string, input StartChatInput) (*ChatResponse, error) {
	allowed, waitTime := uc.rateLimiter.Allow(buyerID, "start_chat")
	if !allowed {
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before starting another chat", waitTime)
	}

	listing, err := uc.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}

	if listing.OwnerID == buyerID {
		return nil, errors.Validation("Cannot contact your own listing", nil)
	}

	chat, err := uc.chatRepo.GetByListingAndBuyer(ctx, input.ListingID, buyerID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}

		chat = &entity.Chat{
			ListingID:    listing.ID,
			BuyerID:      buyerID,
			SellerID:     listing.OwnerID,
			Participants: []string{buyerID, listing.OwnerID},
			IsActive:     listing.IsActive(),
		}

		if err := uc.chatRepo.Create(ctx, chat); err != nil {
			return nil, err
		}
	}

	if err := uc.ensureReadStates(ctx, chat); err != nil {
		return nil, err
	}

	if input.InitialMessage != "" {
		if _, err := uc.SendMessage(ctx, buyerID, SendMessageInput{
			ChatID: chat.ID,
			Body:   input.InitialMessage,
		}); err != nil {
			return nil, err
		}
	}

	seller, err := uc.profileRepo.GetByID(ctx, listing.OwnerID)
	if err != nil {
		logger.Warn("StartChat: seller profile %s not found: %v", listing.OwnerID, err)
		seller = nil
	}

	return &ChatResponse{
		Chat:      chat,
		Listing:   listing,
		OtherUser: seller,
	}, nil
}

func (uc *ChatUseCase) ensureReadStates(ctx context.Context, chat *entity.Chat) error {
	for _, userID := range []string{chat.BuyerID, chat.SellerID} {
		if _, err := uc.chatRepo.GetReadState(ctx, chat.ID, userID); err == nil {
			continue
		} else if !errors.Is(err, "NOT_FOUND") {
			return err
		}

		if err := uc.chatRepo.UpsertReadState(ctx, &entity.ReadState{
			ChatID:     chat.ID,
			UserID:     userID,
			HasUnread:  false,
			LastReadAt: time.Now(),
		}); err != nil {
			return err
		}
	}

	return nil
}

// SendMessage appends a message to an open chat. Closed chats reject writes
// server-side regardless of what the client's UI allows.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*MessageResponse, error) {
	allowed, waitTime := uc.rateLimiter.Allow(senderID, "send_message")
	if !allowed {
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before sending another message", waitTime)
	}

	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, errors.Validation("Message body cannot be empty", nil)
	}

	chat, err := uc.chatRepo.GetByID(ctx, input.ChatID)
	if err != nil {
		return nil, err
	}

	if !chat.HasParticipant(senderID) {
		return nil, errors.Forbidden("User is not a participant in this chat", nil)
	}

	if !chat.IsActive {
		return nil, errors.ClosedChat("This conversation is closed because the listing is no longer active")
	}

	message := &entity.Message{
		ChatID:   chat.ID,
		SenderID: senderID,
		Body:     body,
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	chat.LastMessage = body
	chat.LastMessageAt = message.CreatedAt
	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		logger.Error("SendMessage: failed to update chat %s last message: %v", chat.ID, err)
	}

	counterpartID := chat.Counterpart(senderID)
	if err := uc.chatRepo.SetHasUnread(ctx, chat.ID, counterpartID, true); err != nil {
		logger.Error("SendMessage: failed to mark unread for %s on chat %s: %v", counterpartID, chat.ID, err)
	}

	sender, err := uc.profileRepo.GetByID(ctx, senderID)
	if err != nil {
		sender = nil
	}

	uc.broadcastMessage(chat, message, sender)
	go uc.notifyCounterpart(chat, counterpartID, sender, body)

	return &MessageResponse{
		Message: message,
		Sender:  sender,
	}, nil
}

func (uc *ChatUseCase) broadcastMessage(chat *entity.Chat, message *entity.Message, sender *entity.Profile) {
	notification := map[string]interface{}{
		"type":    "new_message",
		"chat_id": chat.ID,
		"message": message,
		"sender":  sender,
	}

	notificationJSON, _ := json.Marshal(notification)
	uc.wsManager.SendToChatRoom(chat.ID, notificationJSON, message.SenderID)
	uc.wsManager.SendToUser(chat.Counterpart(message.SenderID), notificationJSON)
}

// notifyCounterpart emails the other participant. Best-effort: failures are
// logged and never fail the send.
func (uc *ChatUseCase) notifyCounterpart(chat *entity.Chat, counterpartID string, sender *entity.Profile, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	counterpart, err := uc.profileRepo.GetByID(ctx, counterpartID)
	if err != nil || counterpart.Email == "" {
		logger.Warn("Message notification skipped, no profile email for %s", counterpartID)
		return
	}

	senderName := "Someone"
	if sender != nil && sender.Name != "" {
		senderName = sender.Name
	}

	preview := body
	if len(preview) > 120 {
		preview = preview[:120] + "..."
	}

	subject := fmt.Sprintf("New message from %s", senderName)
	if err := uc.email.Send(ctx, counterpart.Email, subject, preview); err != nil {
		logger.Warn("Message notification email to %s failed: %v", counterpart.Email, err)
	}
}

// MarkRead clears the caller's own unread flag only.
func (uc *ChatUseCase) MarkRead(ctx context.Context, userID, chatID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}

	if !chat.HasParticipant(userID) {
		return errors.Forbidden("User is not a participant in this chat", nil)
	}

	return uc.chatRepo.SetHasUnread(ctx, chatID, userID, false)
}

// ListChats returns the caller's chats newest-created first, annotated with
// the counterpart profile, last message time and the caller's unread flag.
func (uc *ChatUseCase) ListChats(ctx context.Context, userID string, limit, offset int) ([]*ChatResponse, int64, error) {
	chats, total, err := uc.chatRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*ChatResponse, 0, len(chats))
	for _, chat := range chats {
		resp := &ChatResponse{Chat: chat}

		if other, err := uc.profileRepo.GetByID(ctx, chat.Counterpart(userID)); err == nil {
			resp.OtherUser = other
		}
		if listing, err := uc.listingRepo.GetByID(ctx, chat.ListingID); err == nil {
			resp.Listing = listing
		}
		if state, err := uc.chatRepo.GetReadState(ctx, chat.ID, userID); err == nil {
			resp.HasUnread = state.HasUnread
		}

		responses = append(responses, resp)
	}

	return responses, total, nil
}

// GetChatMessages returns message history. Closed chats stay readable.
func (uc *ChatUseCase) GetChatMessages(ctx context.Context, userID, chatID string, limit, offset int) ([]*MessageResponse, int64, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}

	if !chat.HasParticipant(userID) {
		return nil, 0, errors.Forbidden("User is not a participant in this chat", nil)
	}

	messages, total, err := uc.chatRepo.GetMessagesByChat(ctx, chatID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	// Two participants at most, so resolve profiles once
	profiles := make(map[string]*entity.Profile, 2)
	responses := make([]*MessageResponse, 0, len(messages))
	for _, message := range messages {
		sender, ok := profiles[message.SenderID]
		if !ok {
			sender, _ = uc.profileRepo.GetByID(ctx, message.SenderID)
			profiles[message.SenderID] = sender
		}
		responses = append(responses, &MessageResponse{
			Message: message,
			Sender:  sender,
		})
	}

	return responses, total, nil
}

func (uc *ChatUseCase) GetChatByID(ctx context.Context, userID, chatID string) (*ChatResponse, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !chat.HasParticipant(userID) {
		return nil, errors.Forbidden("User is not a participant in this chat", nil)
	}

	resp := &ChatResponse{Chat: chat}
	if other, err := uc.profileRepo.GetByID(ctx, chat.Counterpart(userID)); err == nil {
		resp.OtherUser = other
	}
	if listing, err := uc.listingRepo.GetByID(ctx, chat.ListingID); err == nil {
		resp.Listing = listing
	}
	if state, err := uc.chatRepo.GetReadState(ctx, chat.ID, userID); err == nil {
		resp.HasUnread = state.HasUnread
	}

	return resp, nil
}
