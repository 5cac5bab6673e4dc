package postgres_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/silcast/crane-admin/internal/auth"
	authPostgres "github.com/silcast/crane-admin/internal/auth/postgres"
	userDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/user"
	"github.com/silcast/crane-admin/internal/testdb"
)

func TestAuthPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Postgres Suite")
}

var _ = Describe("Auth PostgreSQL Repository", func() {
	var (
		ctx  context.Context
		db   *gorm.DB
		repo *authPostgres.Repository
		user *userDatamodel.User
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = testdb.Open()
		Expect(err).NotTo(HaveOccurred())
		repo = authPostgres.NewRepository(db)

		view := userDatamodel.Permission{Name: auth.PermViewGruas}
		edit := userDatamodel.Permission{Name: auth.PermEditGruas}
		panel := userDatamodel.Permission{Name: auth.PermAccessAdminPanel}
		Expect(db.Create(&[]*userDatamodel.Permission{&view, &edit, &panel}).Error).To(Succeed())

		gruas := userDatamodel.Role{Name: auth.RoleGruas, Permissions: []userDatamodel.Permission{view, panel}}
		admin := userDatamodel.Role{Name: auth.RoleAdmin, Permissions: []userDatamodel.Permission{view, edit}}
		Expect(db.Create(&gruas).Error).To(Succeed())
		Expect(db.Create(&admin).Error).To(Succeed())

		employeeID := int64(3)
		user = &userDatamodel.User{
			Email:      "ops@silcast.com",
			Password:   "$2a$04$hash",
			EmpleadoID: &employeeID,
			Roles:      []userDatamodel.Role{gruas, admin},
		}
		Expect(db.Create(user).Error).To(Succeed())
	})

	Describe("FindCredentials", func() {
		It("returns the stored hash", func() {
			creds, err := repo.FindCredentials(ctx, "ops@silcast.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(creds.UserID).To(Equal(user.ID))
			Expect(creds.PasswordHash).To(Equal("$2a$04$hash"))
		})

		It("reports unknown emails", func() {
			_, err := repo.FindCredentials(ctx, "ghost@silcast.com")
			Expect(err).To(MatchError(auth.ErrUserNotFound))
		})
	})

	Describe("FindPrincipal", func() {
		It("loads roles with their permissions", func() {
			p, err := repo.FindPrincipal(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*p.EmployeeID).To(Equal(int64(3)))
			Expect(p.Roles).To(HaveLen(2))
			Expect(auth.EffectivePermissions(p.Roles)).To(Equal([]string{
				auth.PermAccessAdminPanel, auth.PermEditGruas, auth.PermViewGruas,
			}))
		})

		It("reports deleted users", func() {
			_, err := repo.FindPrincipal(ctx, user.ID+100)
			Expect(err).To(MatchError(auth.ErrUserNotFound))
		})
	})

	Describe("TokenStore", func() {
		var store *authPostgres.TokenStore

		BeforeEach(func() {
			store = authPostgres.NewTokenStore(db)
		})

		It("saves, finds and revokes a session", func() {
			token := &auth.IssuedToken{ID: "0b7c", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
			Expect(store.Save(ctx, token)).To(Succeed())

			live, err := store.Exists(ctx, "0b7c")
			Expect(err).NotTo(HaveOccurred())
			Expect(live).To(BeTrue())

			var row userDatamodel.AccessToken
			Expect(db.First(&row, "id = ?", "0b7c").Error).To(Succeed())
			Expect(row.LastUsedAt).NotTo(BeNil())

			Expect(store.Revoke(ctx, "0b7c")).To(Succeed())
			live, err = store.Exists(ctx, "0b7c")
			Expect(err).NotTo(HaveOccurred())
			Expect(live).To(BeFalse())
		})

		It("treats expired rows as revoked and purges them", func() {
			Expect(store.Save(ctx, &auth.IssuedToken{ID: "old", UserID: user.ID, ExpiresAt: time.Now().Add(-time.Minute)})).To(Succeed())
			Expect(store.Save(ctx, &auth.IssuedToken{ID: "new", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)})).To(Succeed())

			live, err := store.Exists(ctx, "old")
			Expect(err).NotTo(HaveOccurred())
			Expect(live).To(BeFalse())

			purged, err := store.PurgeExpired(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(purged).To(Equal(int64(1)))

			var count int64
			Expect(db.Model(&userDatamodel.AccessToken{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})
	})
})
