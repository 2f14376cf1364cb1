package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/skillbridge/skillbridge/internal"
	"github.com/skillbridge/skillbridge/internal/access"
	"github.com/skillbridge/skillbridge/internal/auth"
	"github.com/skillbridge/skillbridge/internal/identity"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

const testIssuer = "https://identity.skillbridge.local/"

// MockIdentityResolver implements auth.IdentityResolver
type MockIdentityResolver struct {
	users map[string]*identity.User // keyed by external id
}

func NewMockIdentityResolver() *MockIdentityResolver {
	return &MockIdentityResolver{users: make(map[string]*identity.User)}
}

func (m *MockIdentityResolver) ResolveUser(ctx context.Context, externalID, email string) (*identity.User, error) {
	u, exists := m.users[externalID]
	if !exists {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

// MockSurfaceClassifier implements auth.SurfaceClassifier
type MockSurfaceClassifier struct {
	surfaces []access.Surface
}

func (m *MockSurfaceClassifier) AccessibleSurfaces(ctx context.Context, user *identity.User) []access.Surface {
	return m.surfaces
}

var _ = Describe("Auth", func() {
	var (
		privateKey *rsa.PrivateKey
		verifier   *auth.TokenVerifier
	)

	signToken := func(key *rsa.PrivateKey, claims jwt.MapClaims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
		signed, err := token.SignedString(key)
		Expect(err).NotTo(HaveOccurred())
		return signed
	}

	validClaims := func() jwt.MapClaims {
		return jwt.MapClaims{
			"sub":   "auth_004",
			"email": "jennifer.anderson@skillbridge.com",
			"iss":   testIssuer,
			"exp":   time.Now().Add(time.Hour).Unix(),
			"iat":   time.Now().Unix(),
		}
	}

	BeforeEach(func() {
		var err error
		privateKey, err = rsa.GenerateKey(rand.Reader, 2048)
		Expect(err).NotTo(HaveOccurred())
		verifier = auth.NewTokenVerifier(&privateKey.PublicKey, testIssuer, "", time.Minute)
	})

	Describe("TokenVerifier", func() {
		It("should accept a valid RS256 token", func() {
			claims, err := verifier.Verify(signToken(privateKey, validClaims()))
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.Subject).To(Equal("auth_004"))
			Expect(claims.Email).To(Equal("jennifer.anderson@skillbridge.com"))
		})

		It("should reject an expired token", func() {
			c := validClaims()
			c["exp"] = time.Now().Add(-time.Hour).Unix()
			_, err := verifier.Verify(signToken(privateKey, c))
			Expect(err).To(Equal(internal.ErrTokenExpired))
		})

		It("should tolerate expiry within the clock skew", func() {
			c := validClaims()
			c["exp"] = time.Now().Add(-10 * time.Second).Unix()
			_, err := verifier.Verify(signToken(privateKey, c))
			Expect(err).NotTo(HaveOccurred())
		})

		It("should reject a token without an expiry", func() {
			c := validClaims()
			delete(c, "exp")
			_, err := verifier.Verify(signToken(privateKey, c))
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("should reject a token from another issuer", func() {
			c := validClaims()
			c["iss"] = "https://evil.example.com/"
			_, err := verifier.Verify(signToken(privateKey, c))
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("should reject a token signed with a different key", func() {
			otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
			Expect(err).NotTo(HaveOccurred())
			_, err = verifier.Verify(signToken(otherKey, validClaims()))
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("should reject a token without a subject", func() {
			c := validClaims()
			delete(c, "sub")
			_, err := verifier.Verify(signToken(privateKey, c))
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("should reject garbage input", func() {
			_, err := verifier.Verify("not-a-token")
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		Context("with an audience configured", func() {
			BeforeEach(func() {
				verifier = auth.NewTokenVerifier(&privateKey.PublicKey, testIssuer, "skillbridge-api", time.Minute)
			})

			It("should reject a token for another audience", func() {
				c := validClaims()
				c["aud"] = "other-api"
				_, err := verifier.Verify(signToken(privateKey, c))
				Expect(err).To(Equal(internal.ErrInvalidToken))
			})

			It("should accept the configured audience", func() {
				c := validClaims()
				c["aud"] = "skillbridge-api"
				_, err := verifier.Verify(signToken(privateKey, c))
				Expect(err).NotTo(HaveOccurred())
			})
		})
	})

	Describe("Service.Authenticate", func() {
		var (
			resolver   *MockIdentityResolver
			classifier *MockSurfaceClassifier
			service    *auth.Service
		)

		BeforeEach(func() {
			resolver = NewMockIdentityResolver()
			classifier = &MockSurfaceClassifier{surfaces: []access.Surface{access.SurfaceEmployee}}
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
			service = auth.NewService(verifier, resolver, classifier, logger)

			resolver.users["auth_004"] = &identity.User{
				ID:         "usr_004",
				Email:      "jennifer.anderson@skillbridge.com",
				SystemRole: identity.SystemRoleEmployee,
				Status:     identity.StatusActive,
			}
		})

		It("should resolve the user and attach surfaces", func() {
			user, err := service.Authenticate(context.Background(), signToken(privateKey, validClaims()))
			Expect(err).NotTo(HaveOccurred())
			Expect(user.User.ID).To(Equal("usr_004"))
			Expect(user.CanAccess(access.SurfaceEmployee)).To(BeTrue())
			Expect(user.CanAccess(access.SurfaceSystemAdmin)).To(BeFalse())
		})

		It("should fail for a valid token without a provisioned account", func() {
			c := validClaims()
			c["sub"] = "auth_999"
			_, err := service.Authenticate(context.Background(), signToken(privateKey, c))
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})

		It("should fail before resolution on a bad token", func() {
			_, err := service.Authenticate(context.Background(), "not-a-token")
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})

	Describe("context round trip", func() {
		It("should carry the authenticated user through the request context", func() {
			user := &auth.AuthenticatedUser{
				User:     &identity.User{ID: "usr_004"},
				Surfaces: []access.Surface{access.SurfaceEmployee},
			}
			ctx := auth.ContextWithUser(context.Background(), user)

			got, ok := auth.UserFromContext(ctx)
			Expect(ok).To(BeTrue())
			Expect(got.User.ID).To(Equal("usr_004"))
		})

		It("should report absence on an empty context", func() {
			_, ok := auth.UserFromContext(context.Background())
			Expect(ok).To(BeFalse())
		})
	})
})
