package access_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/access"
	accessPostgres "github.com/silcast/crane-admin/internal/access/postgres"
	"github.com/silcast/crane-admin/internal/core/common/reference"
	employeeDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/employee"
	"github.com/silcast/crane-admin/internal/core/events"
	"github.com/silcast/crane-admin/internal/testdb"
)

func TestAccess(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Access Suite")
}

func i64(v int64) *int64      { return &v }
func strPtr(s string) *string { return &s }

var _ = Describe("Access Service", func() {
	var (
		ctx      context.Context
		service  *access.Service
		empleado *employeeDatamodel.Employee
		otro     *employeeDatamodel.Employee
	)

	newEmployee := func(numero string) *employeeDatamodel.Employee {
		return &employeeDatamodel.Employee{
			NumeroEmpleado: numero, Nombre: "Guardia", ApellidoPaterno: numero,
			FechaNacimiento: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), CorreoElectronico: numero + "@silcast.mx",
			Telefono: "8110000000", FechaIngreso: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			Calle: "Calle", Colonia: "Colonia", CP: "64000", Municipio: "Monterrey",
			Puesto: "Guardia", Area: "Seguridad", Turno: "Nocturno", Estado: "activo",
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		db, err := testdb.Open()
		Expect(err).NotTo(HaveOccurred())
		empleado = newEmployee("0900")
		otro = newEmployee("0901")
		Expect(db.Create(empleado).Error).To(Succeed())
		Expect(db.Create(otro).Error).To(Succeed())

		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = access.NewService(accessPostgres.NewAccessRepository(db), reference.NewGormChecker(db), events.NewAuditBus(lg), lg, time.UTC)
	})

	It("records a shift with its meal window", func() {
		a, err := service.Create(ctx, access.AccessDTO{
			EmpleadoID:       i64(empleado.ID),
			Entrada:          "2024-06-01 07:00",
			Salida:           strPtr("2024-06-01 15:00"),
			HoraComidaInicio: strPtr("2024-06-01 12:00"),
			HoraComidaFin:    strPtr("2024-06-01 12:30"),
			Dispositivo:      strPtr("Caseta 1"),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Empleado.NumeroEmpleado).To(Equal("0900"))
		Expect(a.Salida.Sub(a.Entrada)).To(Equal(8 * time.Hour))
	})

	It("rejects an exit before the entry, half a meal window and unknown employees", func() {
		_, err := service.Create(ctx, access.AccessDTO{
			EmpleadoID:       i64(999),
			Entrada:          "2024-06-01 07:00",
			Salida:           strPtr("2024-06-01 06:00"),
			HoraComidaInicio: strPtr("2024-06-01 12:00"),
		})
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(422))
		fields := appErr.Details.(internal.ValidationErrors).Fields()
		Expect(fields).To(HaveKey("empleado_id"))
		Expect(fields).To(HaveKey("salida"))
		Expect(fields).To(HaveKey("hora_comida_fin"))
	})

	It("filters the list by employee", func() {
		for _, id := range []int64{empleado.ID, empleado.ID, otro.ID} {
			_, err := service.Create(ctx, access.AccessDTO{EmpleadoID: i64(id), Entrada: "2024-06-01 07:00"})
			Expect(err).NotTo(HaveOccurred())
		}

		all, err := service.List(ctx, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(3))

		mine, err := service.List(ctx, i64(empleado.ID))
		Expect(err).NotTo(HaveOccurred())
		Expect(mine).To(HaveLen(2))
	})
})
