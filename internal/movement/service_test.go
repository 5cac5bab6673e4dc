package movement_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/core/common/reference"
	craneDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/crane"
	employeeDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/employee"
	"github.com/silcast/crane-admin/internal/core/events"
	"github.com/silcast/crane-admin/internal/movement"
	movementPostgres "github.com/silcast/crane-admin/internal/movement/postgres"
	"github.com/silcast/crane-admin/internal/testdb"
)

func TestMovement(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Movement Suite")
}

func decode(payload string) movement.MovementDTO {
	var dto movement.MovementDTO
	Expect(json.Unmarshal([]byte(payload), &dto)).To(Succeed())
	return dto
}

func fieldsOf(err error) map[string][]string {
	appErr, ok := internal.IsAppError(err)
	Expect(ok).To(BeTrue())
	Expect(appErr.StatusCode).To(Equal(422))
	return appErr.Details.(internal.ValidationErrors).Fields()
}

var _ = Describe("MovementDTO", func() {
	It("decodes an entrada into an EntryInput", func() {
		dto := decode(`{"tipo_movimiento":"entrada","grua_id":1,"operador_id":2,"fecha_hora_entrada":"2024-01-05 08:30","kilometraje_entrada":1200}`)
		in, ok := dto.Input.(movement.EntryInput)
		Expect(ok).To(BeTrue())
		Expect(in.FechaHoraEntrada).To(Equal("2024-01-05 08:30"))
		Expect(*in.KilometrajeEntrada).To(Equal(1200.0))
	})

	It("decodes a salida and accepts ubicacion as destino", func() {
		dto := decode(`{"tipo_movimiento":"salida","grua_id":1,"operador_id":2,"fecha_hora_salida":"2024-01-05 09:00","ubicacion":"Planta Norte","kilometraje_salida":1210}`)
		in, ok := dto.Input.(movement.ExitInput)
		Expect(ok).To(BeTrue())
		Expect(in.Destino).To(Equal("Planta Norte"))
	})

	It("leaves Input empty for an unknown tag", func() {
		Expect(decode(`{"tipo_movimiento":"traslado"}`).Input).To(BeNil())
	})
})

var _ = Describe("Movement Service", func() {
	var (
		ctx      context.Context
		db       *gorm.DB
		service  *movement.Service
		grua     *craneDatamodel.Crane
		otra     *craneDatamodel.Crane
		operador *employeeDatamodel.Employee
		loc      *time.Location
	)

	payload := func(tipo string, fields string) movement.MovementDTO {
		return decode(`{"tipo_movimiento":"` + tipo + `","grua_id":` + itoa(grua.ID) + `,"operador_id":` + itoa(operador.ID) + fields + `}`)
	}

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		db, err = testdb.Open()
		Expect(err).NotTo(HaveOccurred())

		operador = &employeeDatamodel.Employee{
			NumeroEmpleado: "0700", Nombre: "Pedro", ApellidoPaterno: "Ruiz",
			FechaNacimiento: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), CorreoElectronico: "pedro@silcast.mx",
			Telefono: "8110000000", FechaIngreso: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			Calle: "Calle", Colonia: "Colonia", CP: "64000", Municipio: "Monterrey",
			Puesto: "Operador", Area: "Grúas", Turno: "Matutino", Estado: "activo",
		}
		Expect(db.Create(operador).Error).To(Succeed())
		grua = &craneDatamodel.Crane{Unidad: "G-10", Tipo: "Titan", Combustible: "Diesel", CapacidadToneladas: 30, Estado: "disponible"}
		otra = &craneDatamodel.Crane{Unidad: "G-11", Tipo: "Grove", Combustible: "Diesel", CapacidadToneladas: 50, Estado: "disponible"}
		Expect(db.Create(grua).Error).To(Succeed())
		Expect(db.Create(otra).Error).To(Succeed())

		loc = time.FixedZone("CST", -6*3600)
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = movement.NewService(movementPostgres.NewMovementRepository(db), reference.NewGormChecker(db), events.NewAuditBus(lg), lg, loc)
	})

	It("records an entrada with grua and operador loaded", func() {
		m, err := service.Create(ctx, payload("entrada", `,"fecha_hora_entrada":"2024-01-05 08:30:00","kilometraje_entrada":1200,"combustible_entrada":75`))
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Grua.Unidad).To(Equal("G-10"))
		Expect(m.Operador.Nombre).To(Equal("Pedro"))
		Expect(m.FechaHoraEntrada.Equal(time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC))).To(BeTrue())
		Expect(m.FechaHoraSalida).To(BeNil())
	})

	It("requires the entry fields for an entrada and the exit fields for a salida", func() {
		_, err := service.Create(ctx, payload("entrada", `,"destino":"Planta","kilometraje_entrada":10`))
		fields := fieldsOf(err)
		Expect(fields).To(HaveKey("fecha_hora_entrada"))
		Expect(fields).NotTo(HaveKey("destino"))

		_, err = service.Create(ctx, payload("salida", `,"fecha_hora_entrada":"2024-01-05 08:30","kilometraje_entrada":10`))
		fields = fieldsOf(err)
		Expect(fields).To(HaveKey("fecha_hora_salida"))
		Expect(fields).To(HaveKey("destino"))
		Expect(fields).To(HaveKey("kilometraje_salida"))
		Expect(fields).NotTo(HaveKey("fecha_hora_entrada"))
	})

	It("rejects fuel outside 0-100, unknown references and a missing tag", func() {
		_, err := service.Create(ctx, payload("salida", `,"fecha_hora_salida":"2024-01-05 09:00","destino":"Planta","kilometraje_salida":10,"combustible_salida":101`))
		Expect(fieldsOf(err)).To(HaveKey("combustible_salida"))

		_, err = service.Create(ctx, decode(`{"tipo_movimiento":"entrada","grua_id":999,"operador_id":999,"fecha_hora_entrada":"2024-01-05 08:30","kilometraje_entrada":1}`))
		fields := fieldsOf(err)
		Expect(fields).To(HaveKey("grua_id"))
		Expect(fields).To(HaveKey("operador_id"))

		_, err = service.Create(ctx, decode(`{"grua_id":1}`))
		Expect(fieldsOf(err)).To(HaveKey("tipo_movimiento"))
	})

	It("completes an entrada with its salida on update", func() {
		m, err := service.Create(ctx, payload("entrada", `,"fecha_hora_entrada":"2024-01-05 08:30","kilometraje_entrada":1200`))
		Expect(err).NotTo(HaveOccurred())

		updated, err := service.Update(ctx, m.ID, payload("salida", `,"fecha_hora_salida":"2024-01-05 18:00","destino":"Planta Norte","kilometraje_salida":1290`))
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.FechaHoraEntrada).NotTo(BeNil())
		Expect(*updated.Destino).To(Equal("Planta Norte"))
	})

	Describe("FilterByDate", func() {
		BeforeEach(func() {
			for _, entry := range []struct {
				grua  int64
				fecha string
			}{
				{grua.ID, "2023-12-31 23:59"},
				{grua.ID, "2024-01-01 00:00"},
				{grua.ID, "2024-01-31 23:30"},
				{otra.ID, "2024-01-15 10:00"},
				{grua.ID, "2024-02-01 00:00"},
			} {
				_, err := service.Create(ctx, decode(`{"tipo_movimiento":"entrada","grua_id":`+itoa(entry.grua)+`,"operador_id":`+itoa(operador.ID)+`,"fecha_hora_entrada":"`+entry.fecha+`","kilometraje_entrada":1}`))
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("returns whole days in the configured zone for one crane", func() {
			movements, err := service.FilterByDate(ctx, movement.FilterQuery{StartDate: "2024-01-01", EndDate: "2024-01-31", GruaID: itoa(grua.ID)})
			Expect(err).NotTo(HaveOccurred())
			Expect(movements).To(HaveLen(2))
			Expect(movements[0].FechaHoraEntrada.Day()).To(Equal(31))
		})

		It("returns everything without parameters", func() {
			movements, err := service.FilterByDate(ctx, movement.FilterQuery{})
			Expect(err).NotTo(HaveOccurred())
			Expect(movements).To(HaveLen(5))
		})

		It("rejects malformed parameters", func() {
			_, err := service.FilterByDate(ctx, movement.FilterQuery{StartDate: "01/01/2024", GruaID: "cinco"})
			fields := fieldsOf(err)
			Expect(fields).To(HaveKey("start_date"))
			Expect(fields).To(HaveKey("grua_id"))
		})
	})

	It("lists by crane and answers 404 for an unknown crane", func() {
		_, err := service.Create(ctx, payload("entrada", `,"fecha_hora_entrada":"2024-01-05 08:30","kilometraje_entrada":1`))
		Expect(err).NotTo(HaveOccurred())

		movements, err := service.ByCrane(ctx, grua.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(movements).To(HaveLen(1))

		empty, err := service.ByCrane(ctx, otra.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(empty).To(BeEmpty())

		_, err = service.ByCrane(ctx, 999)
		appErr, _ := internal.IsAppError(err)
		Expect(appErr.StatusCode).To(Equal(404))
	})
})
