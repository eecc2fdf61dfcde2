package service

import (
	"context" // Context propagation to storage
	"errors"  // errors.Is checks
	"fmt"     // Error wrapping
	"strconv" // User ID to token subject
	"time"    // Token lifetime

	"amine_web/internal/domain"     // Domain models
	"amine_web/internal/repository" // User storage
	"amine_web/internal/utils"      // Hashing and tokens

	"github.com/sirupsen/logrus" // Structured logging
)

// AuthService implements login, registration and token issuance
type AuthService struct {
	users     repository.UserRepository // User lookup and persistence
	jwtSecret string                    // Symmetric signing secret
	jwtAlg    string                    // Signing algorithm identifier
	tokenTTL  time.Duration             // Access token lifetime
}

// NewAuthService creates an AuthService. The secret, algorithm and TTL come
// from the startup configuration and never change afterwards.
func NewAuthService(users repository.UserRepository, jwtSecret, jwtAlg string, tokenTTLMinutes int) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
		jwtAlg:    jwtAlg,
		tokenTTL:  time.Duration(tokenTTLMinutes) * time.Minute,
	}
}

// Authenticate validates a login attempt by flexible identifier.
// The identifier is tried as an email first and as a username second;
// an identifier that matches one user's email and another user's username
// resolves to the email match. Unknown identifier and wrong password both
// come back as ErrInvalidCredentials; a disabled account whose credentials
// matched comes back as ErrInactiveUser.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	logCtx := logrus.WithField("identifier", identifier)

	// Email lookup first, username second
	user, err := s.users.FindByEmail(ctx, identifier)
	if errors.Is(err, repository.ErrNotFound) {
		user, err = s.users.FindByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logCtx.Warn("login failed: unknown identifier")
			return nil, ErrInvalidCredentials // Never reveal that the user is unknown
		}
		logCtx.WithError(err).Error("login failed: user lookup error")
		return nil, fmt.Errorf("user lookup: %w", err) // Storage fault, surfaces as server error
	}

	// Verify the password against the stored hash
	if !utils.CheckPassword(password, user.HashedPassword) {
		logCtx.Warn("login failed: password mismatch")
		return nil, ErrInvalidCredentials
	}

	// Credentials matched; a disabled account still may not log in
	if !user.IsActive {
		logCtx.WithField("user_id", user.ID).Warn("login failed: inactive user")
		return nil, ErrInactiveUser
	}

	logCtx.WithField("user_id", user.ID).Info("user authenticated")
	return user, nil
}

// IssueToken creates a signed access token whose subject is the user's id
func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	return utils.GenerateToken(strconv.FormatUint(uint64(user.ID), 10), s.tokenTTL, s.jwtSecret, s.jwtAlg)
}

// Register creates a new user after checking that both email and username
// are free. The email check runs (and reports) before the username check, so
// a request conflicting on both is reported as an email conflict. The
// superuser flag is always false on the created record, whatever the request
// carried.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	logCtx := logrus.WithFields(logrus.Fields{"email": email, "username": username})

	// Email uniqueness pre-check
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		logCtx.Warn("registration rejected: email taken")
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		logCtx.WithError(err).Error("registration failed: email lookup error")
		return nil, fmt.Errorf("email lookup: %w", err)
	}

	// Username uniqueness pre-check
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		logCtx.Warn("registration rejected: username taken")
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		logCtx.WithError(err).Error("registration failed: username lookup error")
		return nil, fmt.Errorf("username lookup: %w", err)
	}

	// Hash the password; the raw password is never stored
	hash, err := utils.HashPassword(password)
	if err != nil {
		logCtx.WithError(err).Error("registration failed: password hashing error")
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:          email,
		Username:       username,
		HashedPassword: hash,
		IsActive:       true,
		IsSuperuser:    false, // Never settable through registration
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration may win the race between the pre-checks
		// and the insert; the unique-index violation reports the same conflict
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			logCtx.Warn("registration rejected: email taken at insert")
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrDuplicateUsername):
			logCtx.Warn("registration rejected: username taken at insert")
			return nil, ErrUsernameTaken
		}
		logCtx.WithError(err).Error("registration failed: insert error")
		return nil, fmt.Errorf("create user: %w", err)
	}

	logCtx.WithField("user_id", user.ID).Info("user registered")
	return user, nil
}
