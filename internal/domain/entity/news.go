package entity

import "time"

// NewsPost is editorial content. Posts are seeded out of band; the API only
// reads them.
type NewsPost struct {
	ID           string    `json:"id" firestore:"id"`
	Slug         string    `json:"slug" firestore:"slug"`
	Title        string    `json:"title" firestore:"title"`
	HeroImageURL string    `json:"hero_image_url,omitempty" firestore:"heroImageURL,omitempty"`
	Body         string    `json:"body" firestore:"body"`
	PublishedAt  time.Time `json:"published_at" firestore:"publishedAt"`
}
