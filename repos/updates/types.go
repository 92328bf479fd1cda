package updates

import "time"

// Update is one post on the news feed.
type Update struct {
	ID          string    `firestore:"id" json:"id"`
	Title       string    `firestore:"title" json:"title"`
	Description string    `firestore:"description" json:"description"`
	Author      string    `firestore:"author" json:"author"`
	Date        string    `firestore:"date" json:"date"`
	CreatedAt   time.Time `firestore:"created_at" json:"created_at"`
}

// PublishRequest is the JSON payload for creating an update.
type PublishRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
}
