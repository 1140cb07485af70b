package models

import "time"

// Tournament is created by an admin and readable by anyone. Tournaments
// are never deleted through the API.
type Tournament struct {
	ID              string    `bson:"_id" json:"id"`
	Title           string    `bson:"title" json:"title"`
	Description     string    `bson:"description" json:"description"`
	EntryPrice      float64   `bson:"entry_price" json:"entry_price"`
	PrizePool       float64   `bson:"prize_pool" json:"prize_pool"`
	MaxParticipants int       `bson:"max_participants" json:"max_participants"`
	CreatedBy       string    `bson:"created_by" json:"created_by"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}
