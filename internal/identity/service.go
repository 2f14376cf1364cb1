package identity

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/skillbridge/skillbridge/internal"
)

// Repository defines the persistence collaborator for user records.
type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByExternalID(ctx context.Context, externalID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	LinkExternalID(ctx context.Context, userID, externalID string) (*User, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ResolveUser maps an external identity to a provisioned user record.
// Lookup order: externalID first, then normalized email for first sign-in,
// in which case the externalID is linked. Accounts are never auto-provisioned;
// an unknown identity fails with UserNotFound so the caller can tell the
// person to contact an administrator.
func (s *Service) ResolveUser(ctx context.Context, externalID, email string) (*User, error) {
	if externalID == "" {
		return nil, internal.NewValidationFieldError("external_id", "external_id is required", internal.ErrCodeValidationFailed)
	}

	user, err := s.repo.GetByExternalID(ctx, externalID)
	if err == nil {
		if !user.IsActiveUser() {
			s.logger.Warn("resolved user is inactive", "user_id", user.ID)
			return nil, internal.ErrUserInactive
		}
		return user, nil
	}
	if !errors.Is(err, internal.ErrUserNotFound) {
		s.logger.Error("external id lookup failed", "error", err)
		return nil, internal.NewCollaboratorError("identity lookup failed", err)
	}

	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil, internal.ErrUserNotFound
	}

	user, err = s.repo.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			s.logger.Warn("no provisioned account for identity", "email", normalized)
			return nil, internal.ErrUserNotFound
		}
		s.logger.Error("email lookup failed", "error", err, "email", normalized)
		return nil, internal.NewCollaboratorError("identity lookup failed", err)
	}

	if !user.IsActiveUser() {
		s.logger.Warn("resolved user is inactive", "user_id", user.ID)
		return nil, internal.ErrUserInactive
	}

	// First sign-in: link the external identity to the provisioned record.
	// The repository write is conditional, so a concurrent resolve of the
	// same identity cannot produce a duplicate linkage.
	linked, err := s.repo.LinkExternalID(ctx, user.ID, externalID)
	if err != nil {
		s.logger.Error("failed to link external id", "error", err, "user_id", user.ID)
		return nil, internal.NewCollaboratorError("failed to link external identity", err)
	}

	s.logger.Info("linked external identity on first sign-in",
		"user_id", linked.ID,
		"email", linked.Email)

	return linked, nil
}

// GetByID returns a user by internal id.
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewCollaboratorError("user lookup failed", err)
	}
	return user, nil
}
