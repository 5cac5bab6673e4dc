package supplier_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/silcast/crane-admin/internal/core/events"
	"github.com/silcast/crane-admin/internal/supplier"
	supplierPostgres "github.com/silcast/crane-admin/internal/supplier/postgres"
	"github.com/silcast/crane-admin/internal/testdb"
	"github.com/silcast/crane-admin/internal/transport"
)

type recordingPublisher struct {
	events []events.MutationEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	if m, ok := e.(events.MutationEvent); ok {
		p.events = append(p.events, m)
	}
	return nil
}

var _ = Describe("Supplier Handler Integration", func() {
	var (
		db        *gorm.DB
		router    *chi.Mux
		publisher *recordingPublisher
	)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
		db, err = testdb.Open()
		Expect(err).NotTo(HaveOccurred())

		publisher = &recordingPublisher{}
		service := supplier.NewService(supplierPostgres.NewSupplierRepository(db), publisher, slogger)
		handler := supplier.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Get("/proveedores", handler.List)
		router.Post("/proveedores", handler.Create)
		router.Get("/proveedores/{id}", handler.Get)
		router.Put("/proveedores/{id}", handler.Update)
		router.Delete("/proveedores/{id}", handler.Delete)
	})

	It("creates a supplier and returns 201", func() {
		rec := do(http.MethodPost, "/proveedores", `{"nombre":"  Aceros del Norte ","correo":"ventas@aceros.mx","telefono":""}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))

		var created supplier.Supplier
		Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
		Expect(created.ID).To(BeNumerically(">", 0))
		Expect(created.Nombre).To(Equal("Aceros del Norte"))
		Expect(created.Telefono).To(BeNil())

		Expect(publisher.events).To(HaveLen(1))
		Expect(publisher.events[0].Outcome).To(Equal(events.OutcomeSucceeded))
	})

	It("rejects a duplicate name with 422 and a field map", func() {
		Expect(do(http.MethodPost, "/proveedores", `{"nombre":"Aceros"}`).Code).To(Equal(http.StatusCreated))

		rec := do(http.MethodPost, "/proveedores", `{"nombre":"Aceros","correo":"bad"}`)
		Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))

		var body struct {
			Error struct {
				Details struct {
					Errors map[string][]string `json:"errors"`
				} `json:"details"`
			} `json:"error"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Error.Details.Errors).To(HaveKey("nombre"))
		Expect(body.Error.Details.Errors).To(HaveKey("correo"))
		Expect(publisher.events[1].Outcome).To(Equal(events.OutcomeRejected))
	})

	It("allows an update that keeps the same name", func() {
		Expect(do(http.MethodPost, "/proveedores", `{"nombre":"Aceros"}`).Code).To(Equal(http.StatusCreated))

		rec := do(http.MethodPut, "/proveedores/1", `{"nombre":"Aceros","notas":"pago a 30 días"}`)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("pago a 30 días"))
	})

	It("lists suppliers by name", func() {
		do(http.MethodPost, "/proveedores", `{"nombre":"Zeta"}`)
		do(http.MethodPost, "/proveedores", `{"nombre":"Alfa"}`)

		rec := do(http.MethodGet, "/proveedores", "")
		var list []supplier.Supplier
		Expect(json.Unmarshal(rec.Body.Bytes(), &list)).To(Succeed())
		Expect(list).To(HaveLen(2))
		Expect(list[0].Nombre).To(Equal("Alfa"))
	})

	It("deletes with 204 and then reports 404", func() {
		do(http.MethodPost, "/proveedores", `{"nombre":"Aceros"}`)

		rec := do(http.MethodDelete, "/proveedores/1", "")
		Expect(rec.Code).To(Equal(http.StatusNoContent))
		Expect(rec.Body.Len()).To(BeZero())

		Expect(do(http.MethodGet, "/proveedores/1", "").Code).To(Equal(http.StatusNotFound))
		Expect(do(http.MethodDelete, "/proveedores/1", "").Code).To(Equal(http.StatusNotFound))
	})

	It("answers 404 for a malformed id", func() {
		Expect(do(http.MethodGet, "/proveedores/abc", "").Code).To(Equal(http.StatusNotFound))
	})
})
