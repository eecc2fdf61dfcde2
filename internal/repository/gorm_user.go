package repository

import (
	"context" // Context for DB operations
	"errors"  // errors.Is / errors.As
	"strings" // Index name matching

	"amine_web/internal/domain" // Domain models

	"github.com/go-sql-driver/mysql" // MySQL driver errors
	"gorm.io/gorm"                   // GORM ORM library
)

// MySQL error number for a unique-key violation
const mysqlDuplicateEntry = 1062

// GormUserRepository implements UserRepository on top of GORM/MySQL
type GormUserRepository struct {
	db *gorm.DB // Shared connection pool
}

// NewGormUserRepository creates a GORM-backed user repository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByEmail looks up a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User // Fetch user from database
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound // No such email
		}
		return nil, err // Storage fault
	}
	return &user, nil
}

// FindByUsername looks up a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User // Fetch user from database
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound // No such username
		}
		return nil, err // Storage fault
	}
	return &user, nil
}

// FindByID looks up a user by primary key
func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User // Fetch user from database
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound // No such user
		}
		return nil, err // Storage fault
	}
	return &user, nil
}

// Create inserts a new user, translating unique-key violations.
// Two concurrent registrations can both pass the service pre-checks; the
// unique indexes are the real arbiter, so the constraint violation from the
// losing insert must come back as the same conflict the pre-check reports.
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

// translateDuplicate maps a MySQL duplicate-entry error onto the conflict
// sentinel for the violated index; other errors pass through untouched.
func translateDuplicate(err error) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != mysqlDuplicateEntry {
		return err // Not a duplicate-key violation
	}
	// The 1062 message names the violated key, e.g.
	// "Duplicate entry 'a@b.com' for key 'users.idx_users_email'"
	if strings.Contains(mysqlErr.Message, "username") {
		return ErrDuplicateUsername
	}
	// Email is checked before username, so it is also the fallback
	return ErrDuplicateEmail
}

// Delete removes a user together with their interactions and posts.
// The children go first, inside the same transaction, so a failure at any
// step leaves the user and their content fully intact.
func (r *GormUserRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Interactions reference posts, remove them first
		if err := tx.Where("user_id = ?", id).Delete(&domain.Interaction{}).Error; err != nil {
			return err
		}
		// Then the user's posts
		if err := tx.Where("author_id = ?", id).Delete(&domain.Post{}).Error; err != nil {
			return err
		}
		// Finally the user row itself
		res := tx.Delete(&domain.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound // Nothing deleted, user never existed
		}
		return nil
	})
}

// List returns all users
func (r *GormUserRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User // Fetch all users
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
