package validation_test

import (
	"testing"
	"time"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/core/common/validation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestValidation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validation Suite")
}

func fieldsOf(err *internal.AppError) map[string][]string {
	details, ok := err.Details.(internal.ValidationErrors)
	Expect(ok).To(BeTrue())
	return details.Fields()
}

var _ = Describe("ValidationBuilder", func() {
	It("passes when every rule holds", func() {
		name := "Grua 1"
		v := validation.NewValidator()
		v.Field("nombre", &name).Required().MaxLength(255)
		v.Field("correo", "ops@silcast.mx").Email()
		Expect(v.Validate()).To(BeNil())
	})

	It("collects every failing field with a 422", func() {
		v := validation.NewValidator()
		v.Field("nombre", "").Required()
		v.Field("correo", "not-an-email").Email()
		v.Field("estado", "jubilado").OneOf("activo", "inactivo", "baja")

		err := v.Validate()
		Expect(err).NotTo(BeNil())
		Expect(err.StatusCode).To(Equal(422))
		Expect(fieldsOf(err)).To(HaveKey("nombre"))
		Expect(fieldsOf(err)).To(HaveKey("correo"))
		Expect(fieldsOf(err)).To(HaveKey("estado"))
	})

	It("skips optional rules on nil pointers", func() {
		var pluma *float64
		var correo *string
		v := validation.NewValidator()
		v.Field("pluma_telescopica_metros", pluma).Between(0.01, 999.99)
		v.Field("correo", correo).Email().MaxLength(255)
		Expect(v.Validate()).To(BeNil())
	})

	It("reports a missing pointer as required", func() {
		var grua *int64
		v := validation.NewValidator()
		v.Field("grua_id", grua).Required()
		Expect(fieldsOf(v.Validate())["grua_id"]).To(ConsistOf("grua_id is required"))
	})

	It("checks inclusive numeric ranges", func() {
		low, high, edge := -1.0, 100.5, 100.0
		v := validation.NewValidator()
		v.Field("combustible_entrada", &low).Between(0, 100)
		v.Field("combustible_salida", &high).Between(0, 100)
		v.Field("combustible", &edge).Between(0, 100)

		fields := fieldsOf(v.Validate())
		Expect(fields).To(HaveKey("combustible_entrada"))
		Expect(fields).To(HaveKey("combustible_salida"))
		Expect(fields).NotTo(HaveKey("combustible"))
	})

	It("counts characters, not bytes", func() {
		v := validation.NewValidator()
		v.Field("nombre", "Ñandú").MaxLength(5)
		Expect(v.Validate()).To(BeNil())
	})

	It("includes errors added outside the chain", func() {
		v := validation.NewValidator()
		v.AddError("numero_empleado", "numero_empleado has already been taken", internal.ErrCodeAlreadyTaken)
		Expect(fieldsOf(v.Validate())["numero_empleado"]).To(HaveLen(1))
	})

	It("validates date, date time and clock formats", func() {
		v := validation.NewValidator()
		v.Field("fecha", "2024-02-30").Date()
		v.Field("fecha_hora_entrada", "2024-01-05 08:30:00").DateTime()
		v.Field("hora_inicio", "25:00").Clock()
		fields := fieldsOf(v.Validate())
		Expect(fields).To(HaveKey("fecha"))
		Expect(fields).NotTo(HaveKey("fecha_hora_entrada"))
		Expect(fields).To(HaveKey("hora_inicio"))
	})
})

var _ = Describe("Dates", func() {
	It("parses plain dates in the given location", func() {
		loc := time.FixedZone("CST", -6*3600)
		d, err := validation.ParseDate("2024-01-31", loc)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Location()).To(Equal(loc))
		Expect(validation.NextDay(d)).To(Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, loc)))
	})

	It("accepts RFC 3339 and space separated timestamps", func() {
		a, err := validation.ParseDateTime("2024-01-05T08:30:00Z", time.UTC)
		Expect(err).NotTo(HaveOccurred())
		b, err := validation.ParseDateTime("2024-01-05 08:30:00", time.UTC)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Equal(b)).To(BeTrue())
	})

	It("rejects garbage", func() {
		_, err := validation.ParseDate("yesterday", time.UTC)
		Expect(err).To(HaveOccurred())
	})
})
