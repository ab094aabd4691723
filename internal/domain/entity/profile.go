package entity

import (
	"time"
)

// Profile mirrors the auth provider's user record plus marketplace fields.
// Organization is a free-text affiliation label used for aggregate impact
// reporting; it is not a first-class entity.
type Profile struct {
	ID           string `json:"id" firestore:"id"`
	Email        string `json:"email" firestore:"email"`
	Name         string `json:"name" firestore:"name"`
	Bio          string `json:"bio,omitempty" firestore:"bio,omitempty"`
	Organization string `json:"organization,omitempty" firestore:"organization,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
