package entity

import "time"

// Message is immutable once created and never deleted. Messages in a closed
// chat stay readable; only appending is blocked.
type Message struct {
	ID        string    `json:"id" firestore:"id"`
	ChatID    string    `json:"chat_id" firestore:"chatId"`
	SenderID  string    `json:"sender_id" firestore:"senderId"`
	Body      string    `json:"body" firestore:"body"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
