package entity

import "time"

// Chat is the conversation between a prospective recipient and a listing
// owner. There is at most one chat per (listing, buyer) pair. A chat is never
// deleted; it is deactivated when its listing leaves the active status.
type Chat struct {
	ID           string   `json:"id" firestore:"id"`
	ListingID    string   `json:"listing_id" firestore:"listingId"`
	BuyerID      string   `json:"buyer_id" firestore:"buyerId"`
	SellerID     string   `json:"seller_id" firestore:"sellerId"`
	Participants []string `json:"participants" firestore:"participants"`

	IsActive      bool      `json:"is_active" firestore:"isActive"`
	LastMessage   string    `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time `json:"last_message_at" firestore:"lastMessageAt"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updated_at" firestore:"updatedAt"`
}

// HasParticipant reports whether userID is the chat's buyer or seller.
func (c *Chat) HasParticipant(userID string) bool {
	return userID == c.BuyerID || userID == c.SellerID
}

// Counterpart returns the other participant's id.
func (c *Chat) Counterpart(userID string) string {
	if userID == c.BuyerID {
		return c.SellerID
	}
	return c.BuyerID
}

// ReadState is the per-participant unread marker, one row per (chat, user).
type ReadState struct {
	ChatID     string    `json:"chat_id" firestore:"chatId"`
	UserID     string    `json:"user_id" firestore:"userId"`
	HasUnread  bool      `json:"has_unread" firestore:"hasUnread"`
	LastReadAt time.Time `json:"last_read_at" firestore:"lastReadAt"`
}
