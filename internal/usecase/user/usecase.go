package user

import (
	"context"

	"go.uber.org/zap"

	domain "user-rest-service/internal/domain/user"
	pkgerrors "user-rest-service/pkg/errors"
)

// Repository defines the interface for user data access operations.
// It abstracts the data layer, allowing different implementations
// (in-memory, SQLite, cached) to be used interchangeably.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error) // Assign the next id and insert, returning the id
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error) // All users, insertion order
	Count(ctx context.Context) (int64, error)
}

// Service implements the business logic for user management operations.
// It provides a clean separation between the transport layer and data layer.
type Service struct {
	repo Repository
	log  *zap.Logger
}

// New creates a new instance of Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log}
}

// CreateUser inserts a new user with a store-assigned id. Empty name and email
// are valid; presence checks are the only validation by contract.
func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	s.log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	u := &domain.User{
		Name:  in.Name,
		Email: in.Email,
	}

	id, err := s.repo.Create(ctx, u)
	if err != nil {
		s.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	return &CreateUserResponse{
		User: User{
			ID:    id,
			Name:  in.Name,
			Email: in.Email,
		},
	}, nil
}

// GetUser retrieves a user by ID. A missing user is a business-logic failure,
// reported as ErrUserNotFound rather than a transport error.
func (s *Service) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	u, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		s.log.Error("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}
	if u == nil {
		s.log.Debug("user not found", zap.Int64("id", in.ID))
		return nil, pkgerrors.ErrUserNotFound
	}

	return &GetUserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}, nil
}

// ListUsers retrieves the full collection in insertion order. An empty store
// yields an empty list, not an error.
func (s *Service) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	domainUsers, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = User{
			ID:    du.ID,
			Name:  du.Name,
			Email: du.Email,
		}
	}

	return &ListUsersResponse{Users: users}, nil
}

// CountUsers returns the current store size.
func (s *Service) CountUsers(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		s.log.Error("failed to count users", zap.Error(err))
		return 0, err
	}
	return n, nil
}
