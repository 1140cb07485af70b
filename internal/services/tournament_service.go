package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Unknownlegend09/ff-tournament/internal/models"
	"github.com/Unknownlegend09/ff-tournament/internal/repository"
)

var (
	ErrInvalidTournament = errors.New("invalid tournament fields")
	ErrInvalidStatus     = errors.New("status must be pending, approved or rejected")
)

// TournamentService orchestrates tournament creation, listing and the
// registration lifecycle.
type TournamentService struct {
	tournaments   repository.TournamentRepository
	registrations repository.RegistrationRepository
	logger        *zap.SugaredLogger
}

func NewTournamentService(tournaments repository.TournamentRepository, registrations repository.RegistrationRepository, logger *zap.SugaredLogger) *TournamentService {
	return &TournamentService{tournaments: tournaments, registrations: registrations, logger: logger}
}

// CreateTournamentInput carries the admin-supplied fields.
type CreateTournamentInput struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	EntryPrice      float64 `json:"entry_price"`
	PrizePool       float64 `json:"prize_pool"`
	MaxParticipants int     `json:"max_participants"`
}

func (in CreateTournamentInput) validate() error {
	if in.Title == "" {
		return ErrInvalidTournament
	}
	if in.EntryPrice < 0 || in.PrizePool < 0 {
		return ErrInvalidTournament
	}
	if in.MaxParticipants < 1 {
		return ErrInvalidTournament
	}
	return nil
}

func (s *TournamentService) Create(ctx context.Context, createdBy string, in CreateTournamentInput) (*models.Tournament, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	t := &models.Tournament{
		ID:              uuid.NewString(),
		Title:           in.Title,
		Description:     in.Description,
		EntryPrice:      in.EntryPrice,
		PrizePool:       in.PrizePool,
		MaxParticipants: in.MaxParticipants,
		CreatedBy:       createdBy,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.tournaments.Create(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Infow("tournament created", "tournament_id", t.ID, "title", t.Title)
	return t, nil
}

func (s *TournamentService) List(ctx context.Context) ([]models.Tournament, error) {
	return s.tournaments.FindAll(ctx)
}

// Register enrolls a user into a tournament with status pending. The
// tournament must exist at creation time; duplicate registrations by the
// same user are permitted and produce distinct records.
func (s *TournamentService) Register(ctx context.Context, tournamentID, userID, mobileNumber, paymentProof string) (*models.Registration, error) {
	if _, err := s.tournaments.FindByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	reg := &models.Registration{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		UserID:       userID,
		MobileNumber: mobileNumber,
		PaymentProof: paymentProof,
		Status:       models.StatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.registrations.Create(ctx, reg); err != nil {
		return nil, err
	}
	s.logger.Infow("registration created", "registration_id", reg.ID, "tournament_id", tournamentID, "user_id", userID)
	return reg, nil
}

func (s *TournamentService) ListRegistrations(ctx context.Context) ([]models.Registration, error) {
	return s.registrations.FindAll(ctx)
}

func (s *TournamentService) ListUserRegistrations(ctx context.Context, userID string) ([]models.Registration, error) {
	return s.registrations.FindByUserID(ctx, userID)
}

// UpdateRegistrationStatus overwrites the status. Membership in the
// status set is checked; transition validity deliberately is not
// (approved back to pending is allowed).
func (s *TournamentService) UpdateRegistrationStatus(ctx context.Context, id string, status models.RegistrationStatus) (*models.Registration, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	reg, err := s.registrations.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("registration status updated", "registration_id", id, "status", status)
	return reg, nil
}
