package models

import "time"

// Upload is the bookkeeping record for a stored payment-proof file. The
// registration flow only carries the URL; this record exists so admins can
// trace an orphaned proof back to its uploader.
type Upload struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Key         string    `bson:"key" json:"key"`
	URL         string    `bson:"url" json:"url"`
	Thumbnail   string    `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	ContentType string    `bson:"content_type" json:"content_type"`
	Size        int64     `bson:"size" json:"size"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
