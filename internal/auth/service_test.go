package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/silcast/crane-admin/internal"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Mock repository for testing
type mockRepository struct {
	credentials map[string]*Credentials // email -> credentials
	principals  map[int64]*Principal
	err         error
}

func newMockRepository() *mockRepository {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)
	employeeID := int64(7)

	return &mockRepository{
		credentials: map[string]*Credentials{
			"admin@silcast.com":   {UserID: 1, Email: "admin@silcast.com", PasswordHash: string(hashed)},
			"guardia@silcast.com": {UserID: 2, Email: "guardia@silcast.com", PasswordHash: string(hashed)},
		},
		principals: map[int64]*Principal{
			1: {ID: 1, Email: "admin@silcast.com", EmployeeID: &employeeID, Roles: []Role{
				{Name: RoleSuperAdmin, Permissions: RoleGrants()[RoleSuperAdmin]},
			}},
			2: {ID: 2, Email: "guardia@silcast.com", Roles: []Role{
				{Name: RoleGuardia, Permissions: RoleGrants()[RoleGuardia]},
			}},
		},
	}
}

func (m *mockRepository) FindCredentials(ctx context.Context, email string) (*Credentials, error) {
	if m.err != nil {
		return nil, m.err
	}
	if c, ok := m.credentials[email]; ok {
		return c, nil
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) FindPrincipal(ctx context.Context, userID int64) (*Principal, error) {
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.principals[userID]; ok {
		return p, nil
	}
	return nil, ErrUserNotFound
}

type memoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*IssuedToken
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{tokens: make(map[string]*IssuedToken)}
}

func (s *memoryTokenStore) Save(ctx context.Context, token *IssuedToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.ID] = token
	return nil
}

func (s *memoryTokenStore) Exists(ctx context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[tokenID]
	return ok, nil
}

func (s *memoryTokenStore) Revoke(ctx context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, tokenID)
	return nil
}

func expectAppError(err error, status int) *internal.AppError {
	gomega.Expect(err).To(gomega.HaveOccurred())
	appErr, ok := internal.IsAppError(err)
	gomega.Expect(ok).To(gomega.BeTrue())
	gomega.Expect(appErr.StatusCode).To(gomega.Equal(status))
	return appErr
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		ctx      context.Context
		service  *Service
		mockRepo *mockRepository
		store    *memoryTokenStore
		tokenGen *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		mockRepo = newMockRepository()
		store = newMemoryTokenStore()
		tokenGen = NewJWTTokenGenerator("test-secret", time.Hour)
		service = NewService(mockRepo, store, tokenGen, quietLogger)
	})

	ginkgo.Describe("Login", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return a bearer token and the user profile", func() {
				// Given
				dto := LoginDTO{Email: "admin@silcast.com", Password: "correct_password"}

				// When
				resp, err := service.Login(ctx, dto)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(resp.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(resp.TokenType).To(gomega.Equal("Bearer"))
				gomega.Expect(resp.ExpiresAt).To(gomega.BeTemporally("~", time.Now().Add(time.Hour), time.Minute))
				gomega.Expect(resp.User.Email).To(gomega.Equal("admin@silcast.com"))
				gomega.Expect(*resp.User.EmployeeID).To(gomega.Equal(int64(7)))
				gomega.Expect(resp.User.Roles).To(gomega.ConsistOf(RoleSuperAdmin))
				gomega.Expect(resp.User.Permissions).To(gomega.HaveLen(len(Catalog())))
			})

			ginkgo.It("should open a session in the token store", func() {
				resp, err := service.Login(ctx, LoginDTO{Email: " admin@silcast.com ", Password: "correct_password"})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := tokenGen.Validate(resp.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(store.tokens).To(gomega.HaveKey(claims.ID))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should reject an unknown email with 401", func() {
				_, err := service.Login(ctx, LoginDTO{Email: "nobody@silcast.com", Password: "correct_password"})
				appErr := expectAppError(err, 401)
				gomega.Expect(appErr.Message).To(gomega.Equal("Credenciales inválidas"))
			})

			ginkgo.It("should reject a wrong password with the same message", func() {
				_, err := service.Login(ctx, LoginDTO{Email: "admin@silcast.com", Password: "wrong"})
				appErr := expectAppError(err, 401)
				gomega.Expect(appErr.Message).To(gomega.Equal("Credenciales inválidas"))
				gomega.Expect(store.tokens).To(gomega.BeEmpty())
			})
		})

		ginkgo.Context("when the payload is malformed", func() {
			ginkgo.It("should return 422 with field errors", func() {
				_, err := service.Login(ctx, LoginDTO{Email: "not-an-email"})
				appErr := expectAppError(err, 422)
				fields := appErr.Details.(internal.ValidationErrors)
				gomega.Expect(fields.HasField("email")).To(gomega.BeTrue())
				gomega.Expect(fields.HasField("password")).To(gomega.BeTrue())
			})
		})

		ginkgo.Context("when the repository fails", func() {
			ginkgo.It("should return an internal error", func() {
				mockRepo.err = errors.New("connection refused")
				_, err := service.Login(ctx, LoginDTO{Email: "admin@silcast.com", Password: "correct_password"})
				expectAppError(err, 500)
			})
		})
	})

	ginkgo.Describe("Authenticate", func() {
		var token string

		ginkgo.BeforeEach(func() {
			resp, err := service.Login(ctx, LoginDTO{Email: "guardia@silcast.com", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			token = resp.AccessToken
		})

		ginkgo.It("should resolve the current user with recomputed permissions", func() {
			user, err := service.Authenticate(ctx, token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(user.ID).To(gomega.Equal(int64(2)))
			gomega.Expect(user.TokenID).ToNot(gomega.BeEmpty())
			gomega.Expect(user.Permissions).To(gomega.ContainElement(PermCreateEntradaSalidaGruas))
			gomega.Expect(user.Permissions).ToNot(gomega.ContainElement(PermDeleteMovements))
		})

		ginkgo.It("should see role changes on the next request", func() {
			mockRepo.principals[2].Roles = append(mockRepo.principals[2].Roles, Role{Name: RoleAdmin, Permissions: RoleGrants()[RoleAdmin]})

			user, err := service.Authenticate(ctx, token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(user.Roles).To(gomega.Equal([]string{RoleAdmin, RoleGuardia}))
			gomega.Expect(user.Permissions).To(gomega.ContainElement(PermDeleteMovements))
		})

		ginkgo.It("should reject a token after logout", func() {
			user, err := service.Authenticate(ctx, token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(service.Logout(ctx, user.TokenID)).To(gomega.Succeed())

			_, err = service.Authenticate(ctx, token)
			gomega.Expect(err).To(gomega.Equal(internal.ErrTokenRevoked))
		})

		ginkgo.It("should only revoke the session that logged out", func() {
			other, err := service.Login(ctx, LoginDTO{Email: "guardia@silcast.com", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			user, _ := service.Authenticate(ctx, token)
			gomega.Expect(service.Logout(ctx, user.TokenID)).To(gomega.Succeed())

			_, err = service.Authenticate(ctx, other.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should reject a token whose user was deleted", func() {
			delete(mockRepo.principals, 2)
			_, err := service.Authenticate(ctx, token)
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
		})

		ginkgo.It("should reject malformed and empty tokens", func() {
			_, err := service.Authenticate(ctx, "not.a.jwt")
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))

			_, err = service.Authenticate(ctx, "")
			gomega.Expect(err).To(gomega.Equal(internal.ErrMissingToken))
		})
	})

	ginkgo.Describe("HashPassword", func() {
		ginkgo.It("should produce a verifiable bcrypt hash", func() {
			hash, err := HashPassword("secret-password", bcrypt.MinCost)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(hash).ToNot(gomega.Equal("secret-password"))
			gomega.Expect(VerifyPassword(hash, "secret-password")).To(gomega.Succeed())
			gomega.Expect(VerifyPassword(hash, "other")).ToNot(gomega.Succeed())
		})
	})
})

var _ = ginkgo.Describe("JWTTokenGenerator", func() {
	var tokenGen *JWTTokenGenerator

	ginkgo.BeforeEach(func() {
		tokenGen = NewJWTTokenGenerator("test-secret", 15*time.Minute)
	})

	ginkgo.It("should embed user id, email and a unique token id", func() {
		first, err := tokenGen.Generate(42, "ops@silcast.com")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		second, err := tokenGen.Generate(42, "ops@silcast.com")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(first.ID).ToNot(gomega.Equal(second.ID))

		claims, err := tokenGen.Validate(first.Token)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		uid, _ := claims.UserID()
		gomega.Expect(uid).To(gomega.Equal(int64(42)))
		gomega.Expect(claims.Email).To(gomega.Equal("ops@silcast.com"))
		gomega.Expect(claims.ID).To(gomega.Equal(first.ID))
	})

	ginkgo.It("should reject tokens signed with another secret", func() {
		issued, err := NewJWTTokenGenerator("other-secret", time.Minute).Generate(1, "a@b.co")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		_, err = tokenGen.Validate(issued.Token)
		gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
	})

	ginkgo.It("should return ErrTokenExpired for expired tokens", func() {
		issued, err := tokenGen.Generate(1, "a@b.co")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		tokenGen.now = func() time.Time { return time.Now().Add(time.Hour) }
		_, err = tokenGen.Validate(issued.Token)
		gomega.Expect(err).To(gomega.Equal(internal.ErrTokenExpired))
	})
})

var _ = ginkgo.Describe("Permissions", func() {
	ginkgo.Describe("EffectivePermissions", func() {
		ginkgo.It("should return the sorted union without duplicates", func() {
			perms := EffectivePermissions([]Role{
				{Name: "a", Permissions: []string{PermViewGruas, PermCreateGruas}},
				{Name: "b", Permissions: []string{PermViewGruas, PermAccessAdminPanel}},
			})
			gomega.Expect(perms).To(gomega.Equal([]string{PermAccessAdminPanel, PermCreateGruas, PermViewGruas}))
		})

		ginkgo.It("should return an empty set for no roles", func() {
			gomega.Expect(EffectivePermissions(nil)).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("Can", func() {
		ginkgo.It("should check membership in the effective set", func() {
			user := &internal.CurrentUser{Permissions: RoleGrants()[RoleGuardia]}
			gomega.Expect(Can(user, PermCreateAccesses)).To(gomega.BeTrue())
			gomega.Expect(Can(user, PermDeleteMovements)).To(gomega.BeFalse())
			gomega.Expect(Can(nil, PermViewGruas)).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("RoleGrants", func() {
		ginkgo.It("should only grant catalog permissions", func() {
			catalog := Catalog()
			for role, perms := range RoleGrants() {
				for _, p := range perms {
					gomega.Expect(catalog).To(gomega.ContainElement(p), "role %s", role)
				}
			}
		})

		ginkgo.It("should cover every seeded role", func() {
			gomega.Expect(RoleGrants()).To(gomega.HaveLen(len(RoleNames())))
		})
	})
})
