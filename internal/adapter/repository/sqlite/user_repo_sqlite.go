package sqlite

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-rest-service/internal/domain/user"
)

// UserRepoSQLite implements the user Repository interface using GORM over an
// in-memory SQLite database. The engine serializes writes, ids auto-increment
// past the seed, and nothing is persisted across process restarts.
type UserRepoSQLite struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"` // Unique identifier with auto-increment
	Name  string // User's name, may be empty
	Email string // User's email address, may be empty
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// NewUserRepoSQLite creates the repository, migrates the schema, and seeds the
// table when empty so auto-increment continues past the seeded ids.
func NewUserRepoSQLite(db *gorm.DB, seed []user.User, log *zap.Logger) (*UserRepoSQLite, error) {
	if err := db.AutoMigrate(&UserSchema{}); err != nil {
		return nil, fmt.Errorf("failed to migrate users table: %w", err)
	}

	r := &UserRepoSQLite{db: db, log: log}

	var count int64
	if err := db.Model(&UserSchema{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if count == 0 && len(seed) > 0 {
		rows := make([]UserSchema, len(seed))
		for i, u := range seed {
			rows[i] = UserSchema{ID: u.ID, Name: u.Name, Email: u.Email}
		}
		if err := db.Create(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to seed users: %w", err)
		}
		log.Info("seeded users table", zap.Int("count", len(rows)))
	}

	return r, nil
}

// Create inserts a new user and returns the auto-assigned id.
func (r *UserRepoSQLite) Create(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	model := UserSchema{
		Name:  u.Name,
		Email: u.Email,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create user in db", zap.Error(err))
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	return model.ID, nil
}

// GetByID returns the user with the given id, or nil when absent.
func (r *UserRepoSQLite) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	err := r.db.WithContext(ctx).First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("failed to get user from db", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user.User{
		ID:    model.ID,
		Name:  model.Name,
		Email: model.Email,
	}, nil
}

// List returns all users ordered by id, which equals insertion order because
// ids are monotonic and rows are never deleted.
func (r *UserRepoSQLite) List(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i, m := range models {
		users[i] = user.User{
			ID:    m.ID,
			Name:  m.Name,
			Email: m.Email,
		}
	}
	return users, nil
}

// Count returns the number of stored users.
func (r *UserRepoSQLite) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&UserSchema{}).Count(&count).Error; err != nil {
		r.log.Error("failed to count users in db", zap.Error(err))
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
