package employee_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/auth"
	"github.com/silcast/crane-admin/internal/core/common/reference"
	userDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/user"
	"github.com/silcast/crane-admin/internal/core/events"
	"github.com/silcast/crane-admin/internal/employee"
	employeePostgres "github.com/silcast/crane-admin/internal/employee/postgres"
	"github.com/silcast/crane-admin/internal/testdb"
)

func TestEmployee(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Suite")
}

func strPtr(s string) *string { return &s }
func idPtr(id int64) *int64   { return &id }

func validDTO(numero, correo string) employee.EmployeeDTO {
	return employee.EmployeeDTO{
		NumeroEmpleado:    numero,
		Nombre:            "Juan",
		ApellidoPaterno:   "Pérez",
		FechaNacimiento:   "1985-04-12",
		CorreoElectronico: correo,
		Telefono:          "8112345678",
		FechaIngreso:      "2020-01-15",
		Calle:             "Av. Industrial 100",
		Colonia:           "Centro",
		CP:                "64000",
		Municipio:         "Monterrey",
		Puesto:            "Operador",
		Area:              "Grúas",
		Turno:             "Matutino",
	}
}

func fieldsOf(err error) map[string][]string {
	appErr, ok := internal.IsAppError(err)
	Expect(ok).To(BeTrue())
	Expect(appErr.StatusCode).To(Equal(422))
	return appErr.Details.(internal.ValidationErrors).Fields()
}

var _ = Describe("Employee Service", func() {
	var (
		ctx     context.Context
		db      *gorm.DB
		service *employee.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		db, err = testdb.Open()
		Expect(err).NotTo(HaveOccurred())
		Expect(db.Create(&[]userDatamodel.Role{{Name: auth.RoleGruas}, {Name: auth.RoleGuardia}}).Error).To(Succeed())

		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = employee.NewService(
			employeePostgres.NewEmployeeRepository(db),
			reference.NewGormChecker(db),
			auth.BcryptHasher{Cost: 4},
			events.NewAuditBus(lg),
			lg,
		)
	})

	Describe("Create", func() {
		It("stores the employee with default estado and formatted dates", func() {
			e, err := service.Create(ctx, validDTO("0100", "juan@silcast.mx"))
			Expect(err).NotTo(HaveOccurred())
			Expect(e.ID).To(BeNumerically(">", 0))
			Expect(e.Estado).To(Equal(employee.EstadoActivo))
			Expect(e.FechaIngreso).To(Equal("2020-01-15"))
			Expect(e.Usuario).To(BeNil())
		})

		It("creates the linked login with roles in the same call", func() {
			dto := validDTO("0101", "ana@silcast.mx")
			dto.Email = strPtr("ana.login@silcast.mx")
			dto.Password = strPtr("secreto123")
			dto.Roles = []string{auth.RoleGruas}

			e, err := service.Create(ctx, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Usuario).NotTo(BeNil())
			Expect(e.Usuario.Email).To(Equal("ana.login@silcast.mx"))
			Expect(e.Usuario.Roles).To(ConsistOf(auth.RoleGruas))

			var stored userDatamodel.User
			Expect(db.Where("email = ?", "ana.login@silcast.mx").First(&stored).Error).To(Succeed())
			Expect(auth.VerifyPassword(stored.Password, "secreto123")).To(Succeed())
			Expect(*stored.EmpleadoID).To(Equal(e.ID))
		})

		It("rejects duplicated numero_empleado and correo_electronico", func() {
			_, err := service.Create(ctx, validDTO("0102", "dup@silcast.mx"))
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, validDTO("0102", "dup@silcast.mx"))
			fields := fieldsOf(err)
			Expect(fields).To(HaveKey("numero_empleado"))
			Expect(fields).To(HaveKey("correo_electronico"))
		})

		It("requires email when password or roles are sent", func() {
			dto := validDTO("0103", "x@silcast.mx")
			dto.Roles = []string{auth.RoleGruas}
			Expect(fieldsOf(func() error { _, err := service.Create(ctx, dto); return err }())).To(HaveKey("email"))
		})

		It("requires a password to create the login", func() {
			dto := validDTO("0104", "y@silcast.mx")
			dto.Email = strPtr("y.login@silcast.mx")
			_, err := service.Create(ctx, dto)
			Expect(fieldsOf(err)).To(HaveKey("password"))
		})

		It("rejects unknown roles, bad estado and fecha_baja before fecha_ingreso", func() {
			dto := validDTO("0105", "z@silcast.mx")
			dto.Email = strPtr("z.login@silcast.mx")
			dto.Password = strPtr("secreto123")
			dto.Roles = []string{"piloto"}
			dto.Estado = "jubilado"
			dto.FechaBaja = strPtr("2019-12-31")

			_, err := service.Create(ctx, dto)
			fields := fieldsOf(err)
			Expect(fields).To(HaveKey("roles"))
			Expect(fields).To(HaveKey("estado"))
			Expect(fields).To(HaveKey("fecha_baja"))
		})

		It("rejects a supervisor that does not exist", func() {
			dto := validDTO("0106", "s@silcast.mx")
			dto.SupervisorID = idPtr(999)
			_, err := service.Create(ctx, dto)
			Expect(fieldsOf(err)).To(HaveKey("supervisor_id"))
		})
	})

	Describe("Update", func() {
		It("keeps its own unique values and refuses itself as supervisor", func() {
			e, err := service.Create(ctx, validDTO("0200", "self@silcast.mx"))
			Expect(err).NotTo(HaveOccurred())

			dto := validDTO("0200", "self@silcast.mx")
			dto.Puesto = "Supervisor"
			updated, err := service.Update(ctx, e.ID, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Puesto).To(Equal("Supervisor"))

			dto.SupervisorID = idPtr(e.ID)
			_, err = service.Update(ctx, e.ID, dto)
			Expect(fieldsOf(err)).To(HaveKey("supervisor_id"))
		})

		It("changes the login email and roles without a new password", func() {
			dto := validDTO("0201", "luis@silcast.mx")
			dto.Email = strPtr("luis.login@silcast.mx")
			dto.Password = strPtr("secreto123")
			dto.Roles = []string{auth.RoleGruas}
			e, err := service.Create(ctx, dto)
			Expect(err).NotTo(HaveOccurred())

			dto.Email = strPtr("luis.nuevo@silcast.mx")
			dto.Password = nil
			dto.Roles = []string{auth.RoleGuardia}
			updated, err := service.Update(ctx, e.ID, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Usuario.Email).To(Equal("luis.nuevo@silcast.mx"))
			Expect(updated.Usuario.Roles).To(ConsistOf(auth.RoleGuardia))
		})

		It("returns 404 for a missing employee", func() {
			_, err := service.Update(ctx, 404, validDTO("0202", "nadie@silcast.mx"))
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})
	})

	Describe("Delete", func() {
		It("removes the employee and keeps the login unlinked", func() {
			dto := validDTO("0300", "baja@silcast.mx")
			dto.Email = strPtr("baja.login@silcast.mx")
			dto.Password = strPtr("secreto123")
			e, err := service.Create(ctx, dto)
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ctx, e.ID)).To(Succeed())

			var stored userDatamodel.User
			Expect(db.Where("email = ?", "baja.login@silcast.mx").First(&stored).Error).To(Succeed())
			Expect(stored.EmpleadoID).To(BeNil())

			_, err = service.Get(ctx, e.ID)
			appErr, _ := internal.IsAppError(err)
			Expect(appErr.StatusCode).To(Equal(404))
		})
	})

	It("lists employees with their logins", func() {
		dto := validDTO("0400", "lista@silcast.mx")
		dto.Email = strPtr("lista.login@silcast.mx")
		dto.Password = strPtr("secreto123")
		_, err := service.Create(ctx, dto)
		Expect(err).NotTo(HaveOccurred())
		_, err = service.Create(ctx, validDTO("0401", "otro@silcast.mx"))
		Expect(err).NotTo(HaveOccurred())

		employees, err := service.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(employees).To(HaveLen(2))
	})
})
