package repository

import (
	"context"
	"sync"

	"github.com/Unknownlegend09/ff-tournament/internal/models"
)

// In-memory implementations of the repositories, used by the service and
// handler tests. They enforce the same uniqueness rules the Mongo
// indexes do.

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by username
}

func NewMemoryUserRepo() UserRepository {
	return &memoryUserRepo{users: map[string]*models.User{}}
}

func (r *memoryUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Username]; ok {
		return ErrDuplicateUser
	}
	cp := *u
	r.users[u.Username] = &cp
	return nil
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

type memoryTournamentRepo struct {
	mu          sync.Mutex
	order       []string
	tournaments map[string]*models.Tournament
}

func NewMemoryTournamentRepo() TournamentRepository {
	return &memoryTournamentRepo{tournaments: map[string]*models.Tournament{}}
}

func (r *memoryTournamentRepo) Create(_ context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.tournaments[t.ID] = &cp
	r.order = append(r.order, t.ID)
	return nil
}

func (r *memoryTournamentRepo) FindByID(_ context.Context, id string) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tournaments[id]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memoryTournamentRepo) FindAll(_ context.Context) ([]models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Tournament, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.tournaments[id])
	}
	return out, nil
}

type memoryRegistrationRepo struct {
	mu   sync.Mutex
	regs []*models.Registration
}

func NewMemoryRegistrationRepo() RegistrationRepository {
	return &memoryRegistrationRepo{}
}

func (r *memoryRegistrationRepo) Create(_ context.Context, reg *models.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *reg
	r.regs = append(r.regs, &cp)
	return nil
}

func (r *memoryRegistrationRepo) FindByID(_ context.Context, id string) (*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.regs {
		if reg.ID == id {
			cp := *reg
			return &cp, nil
		}
	}
	return nil, ErrRegistrationNotFound
}

func (r *memoryRegistrationRepo) FindAll(_ context.Context) ([]models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Registration, 0, len(r.regs))
	for _, reg := range r.regs {
		out = append(out, *reg)
	}
	return out, nil
}

func (r *memoryRegistrationRepo) FindByUserID(_ context.Context, userID string) ([]models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Registration{}
	for _, reg := range r.regs {
		if reg.UserID == userID {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (r *memoryRegistrationRepo) UpdateStatus(_ context.Context, id string, status models.RegistrationStatus) (*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.regs {
		if reg.ID == id {
			reg.Status = status
			cp := *reg
			return &cp, nil
		}
	}
	return nil, ErrRegistrationNotFound
}

type memoryUploadRepo struct {
	mu      sync.Mutex
	uploads []*models.Upload
}

func NewMemoryUploadRepo() UploadRepository {
	return &memoryUploadRepo{}
}

func (r *memoryUploadRepo) Insert(_ context.Context, u *models.Upload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.uploads = append(r.uploads, &cp)
	return nil
}
