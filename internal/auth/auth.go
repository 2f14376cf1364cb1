package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/skillbridge/skillbridge/internal"
	"github.com/skillbridge/skillbridge/internal/access"
	"github.com/skillbridge/skillbridge/internal/identity"
)

// Claims are the fields this service reads from an identity provider token.
// The subject is the provider's stable user id; email is only consulted on
// first sign-in, before the subject has been linked.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenVerifier checks RS256 signatures on tokens the identity provider
// issued. This service never signs tokens of its own.
type TokenVerifier struct {
	publicKey *rsa.PublicKey
	issuer    string
	audience  string
	clockSkew time.Duration
}

func NewTokenVerifier(publicKey *rsa.PublicKey, issuer, audience string, clockSkew time.Duration) *TokenVerifier {
	return &TokenVerifier{
		publicKey: publicKey,
		issuer:    issuer,
		audience:  audience,
		clockSkew: clockSkew,
	}
}

func (v *TokenVerifier) Verify(tokenString string) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithLeeway(v.clockSkew),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		options = append(options, jwt.WithAudience(v.audience))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.publicKey, nil
	}, options...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return nil, internal.ErrInvalidToken
	}

	return claims, nil
}

// AuthenticatedUser is the resolved identity plus the surfaces it may enter,
// carried in the request context for the rest of the pipeline.
type AuthenticatedUser struct {
	User     *identity.User
	Surfaces []access.Surface
}

func (u *AuthenticatedUser) CanAccess(surface access.Surface) bool {
	return access.Contains(u.Surfaces, surface)
}

type authUserKey struct{}

func ContextWithUser(ctx context.Context, user *AuthenticatedUser) context.Context {
	return context.WithValue(ctx, authUserKey{}, user)
}

func UserFromContext(ctx context.Context) (*AuthenticatedUser, bool) {
	user, ok := ctx.Value(authUserKey{}).(*AuthenticatedUser)
	return user, ok
}
