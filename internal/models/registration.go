package models

import "time"

// RegistrationStatus is set to pending on creation and only changed by
// admin action. Membership is validated at the edges; transitions are not.
type RegistrationStatus string

const (
	StatusPending  RegistrationStatus = "pending"
	StatusApproved RegistrationStatus = "approved"
	StatusRejected RegistrationStatus = "rejected"
)

func (s RegistrationStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Registration links a user to a tournament. The payment proof is a URL
// returned by the upload endpoint; it is stored as-is with no referential
// enforcement.
type Registration struct {
	ID           string             `bson:"_id" json:"id"`
	TournamentID string             `bson:"tournament_id" json:"tournament_id"`
	UserID       string             `bson:"user_id" json:"user_id"`
	MobileNumber string             `bson:"mobile_number" json:"mobile_number"`
	PaymentProof string             `bson:"payment_proof" json:"payment_proof"`
	Status       RegistrationStatus `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
