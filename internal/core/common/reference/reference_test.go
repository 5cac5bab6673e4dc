package reference_test

import (
	"context"
	"testing"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/core/common/reference"
	"github.com/silcast/crane-admin/internal/core/common/validation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestReference(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Reference Suite")
}

type sqliteCrane struct {
	ID     int64 `gorm:"primaryKey"`
	Unidad string
}

func (sqliteCrane) TableName() string { return "gruas" }

var _ = Describe("GormChecker", func() {
	var (
		ctx     context.Context
		checker *reference.GormChecker
	)

	BeforeEach(func() {
		ctx = context.Background()
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&sqliteCrane{})).To(Succeed())
		Expect(db.Create(&sqliteCrane{ID: 5, Unidad: "G-05"}).Error).To(Succeed())
		checker = reference.NewGormChecker(db)
	})

	It("finds existing rows", func() {
		ok, err := checker.Exists(ctx, reference.Cranes, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
	})

	It("reports missing rows", func() {
		ok, err := checker.Exists(ctx, reference.Cranes, 6)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("refuses tables outside the allow list", func() {
		_, err := checker.Exists(ctx, "usuarios; drop table gruas", 1)
		Expect(err).To(HaveOccurred())
	})

	Describe("Require", func() {
		It("adds a field error for a dangling id", func() {
			v := validation.NewValidator()
			missing := int64(99)
			Expect(reference.Require(ctx, checker, v, "grua_id", reference.Cranes, &missing)).To(Succeed())

			appErr := v.Validate()
			Expect(appErr).NotTo(BeNil())
			Expect(appErr.Details.(internal.ValidationErrors).HasField("grua_id")).To(BeTrue())
		})

		It("ignores unset ids", func() {
			v := validation.NewValidator()
			Expect(reference.Require(ctx, checker, v, "grua_id", reference.Cranes, nil)).To(Succeed())
			Expect(v.Validate()).To(BeNil())
		})
	})
})
