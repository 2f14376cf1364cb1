package auth

import (
	"context"
	"log/slog"

	"github.com/skillbridge/skillbridge/internal/access"
	"github.com/skillbridge/skillbridge/internal/identity"
)

// IdentityResolver maps verified token claims to a provisioned user.
type IdentityResolver interface {
	ResolveUser(ctx context.Context, externalID, email string) (*identity.User, error)
}

// SurfaceClassifier derives the surfaces a resolved user may enter.
type SurfaceClassifier interface {
	AccessibleSurfaces(ctx context.Context, user *identity.User) []access.Surface
}

type Service struct {
	verifier *TokenVerifier
	identity IdentityResolver
	access   SurfaceClassifier
	logger   *slog.Logger
}

func NewService(verifier *TokenVerifier, identityResolver IdentityResolver, surfaceClassifier SurfaceClassifier, logger *slog.Logger) *Service {
	return &Service{
		verifier: verifier,
		identity: identityResolver,
		access:   surfaceClassifier,
		logger:   logger,
	}
}

// Authenticate verifies the bearer token, resolves the provisioned account
// behind it and classifies its surfaces. Surfaces are recomputed on every
// request; nothing about access is cached between calls.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*AuthenticatedUser, error) {
	claims, err := s.verifier.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.identity.ResolveUser(ctx, claims.Subject, claims.Email)
	if err != nil {
		return nil, err
	}

	surfaces := s.access.AccessibleSurfaces(ctx, user)

	return &AuthenticatedUser{
		User:     user,
		Surfaces: surfaces,
	}, nil
}
