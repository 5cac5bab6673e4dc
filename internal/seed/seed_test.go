package seed_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/silcast/crane-admin/internal/auth"
	authPostgres "github.com/silcast/crane-admin/internal/auth/postgres"
	userDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/user"
	"github.com/silcast/crane-admin/internal/seed"
	"github.com/silcast/crane-admin/internal/testdb"
)

func TestSeed(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Seed Suite")
}

var _ = Describe("Seeder", func() {
	var (
		ctx    context.Context
		db     *gorm.DB
		seeder *seed.Seeder
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		db, err = testdb.Open()
		Expect(err).NotTo(HaveOccurred())
		seeder = seed.NewSeeder(db, auth.BcryptHasher{Cost: bcrypt.MinCost}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	It("installs the catalog, the roles and the admin account", func() {
		res, err := seeder.Run(ctx, seed.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Permissions).To(Equal(len(auth.Catalog())))
		Expect(res.Roles).To(Equal(len(auth.RoleNames())))
		Expect(res.AdminCreated).To(BeTrue())

		repo := authPostgres.NewRepository(db)
		creds, err := repo.FindCredentials(ctx, seed.AdminEmail)
		Expect(err).NotTo(HaveOccurred())
		Expect(auth.VerifyPassword(creds.PasswordHash, seed.AdminPassword)).To(Succeed())

		principal, err := repo.FindPrincipal(ctx, creds.UserID)
		Expect(err).NotTo(HaveOccurred())
		Expect(principal.EmployeeID).NotTo(BeNil())
		Expect(auth.EffectivePermissions(principal.Roles)).To(ConsistOf(auth.Catalog()))
	})

	It("grants guardia only its own permissions", func() {
		_, err := seeder.Run(ctx, seed.Options{})
		Expect(err).NotTo(HaveOccurred())

		var role userDatamodel.Role
		Expect(db.Preload("Permissions").Where("name = ?", auth.RoleGuardia).First(&role).Error).To(Succeed())
		names := make([]string, 0, len(role.Permissions))
		for _, p := range role.Permissions {
			names = append(names, p.Name)
		}
		Expect(names).To(ConsistOf(auth.RoleGrants()[auth.RoleGuardia]))
		Expect(names).NotTo(ContainElement(auth.PermDeleteMovements))
	})

	It("is idempotent", func() {
		_, err := seeder.Run(ctx, seed.Options{})
		Expect(err).NotTo(HaveOccurred())
		res, err := seeder.Run(ctx, seed.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.AdminCreated).To(BeFalse())

		var users, roles, links int64
		Expect(db.Model(&userDatamodel.User{}).Count(&users).Error).To(Succeed())
		Expect(db.Model(&userDatamodel.Role{}).Count(&roles).Error).To(Succeed())
		Expect(db.Table("user_roles").Count(&links).Error).To(Succeed())
		Expect(users).To(BeEquivalentTo(1))
		Expect(roles).To(BeEquivalentTo(len(auth.RoleNames())))
		Expect(links).To(BeEquivalentTo(1))
	})

	It("restores grants removed by hand", func() {
		_, err := seeder.Run(ctx, seed.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.Exec("DELETE FROM role_permissions").Error).To(Succeed())

		_, err = seeder.Run(ctx, seed.Options{Clear: true})
		Expect(err).NotTo(HaveOccurred())

		var count int64
		Expect(db.Table("role_permissions").Count(&count).Error).To(Succeed())
		total := 0
		for _, perms := range auth.RoleGrants() {
			total += len(perms)
		}
		Expect(count).To(BeEquivalentTo(total))
	})
})
