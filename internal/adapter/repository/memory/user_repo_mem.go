package memory

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"user-rest-service/internal/domain/user"
)

// UserRepoMem implements the user Repository interface with an in-process map.
// All mutations are serialized behind a single mutex; ids are monotonic and
// never reused, and listing preserves insertion order.
type UserRepoMem struct {
	mu     sync.Mutex
	users  map[int64]user.User
	order  []int64 // insertion order of ids
	nextID int64   // strictly greater than every stored id
	log    *zap.Logger
}

// NewUserRepoMem creates an in-memory repository pre-populated with the given
// seed users. nextID starts one past the highest seeded id.
func NewUserRepoMem(seed []user.User, log *zap.Logger) *UserRepoMem {
	r := &UserRepoMem{
		users:  make(map[int64]user.User, len(seed)),
		order:  make([]int64, 0, len(seed)),
		nextID: 1,
		log:    log,
	}

	for _, u := range seed {
		r.users[u.ID] = u
		r.order = append(r.order, u.ID)
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
	}

	return r
}

// Create assigns the next id, inserts the user, and returns the assigned id.
func (r *UserRepoMem) Create(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++

	stored := user.User{
		ID:    id,
		Name:  u.Name,
		Email: u.Email,
	}
	r.users[id] = stored
	r.order = append(r.order, id)

	r.log.Debug("user created", zap.Int64("id", id))
	return id, nil
}

// GetByID returns the user with the given id, or nil when absent.
func (r *UserRepoMem) GetByID(ctx context.Context, id int64) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// List returns all users in insertion order.
func (r *UserRepoMem) List(ctx context.Context) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]user.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.users[id])
	}
	return out, nil
}

// Count returns the number of stored users.
func (r *UserRepoMem) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.users)), nil
}
