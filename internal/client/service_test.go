package client_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/client"
	clientPostgres "github.com/silcast/crane-admin/internal/client/postgres"
	"github.com/silcast/crane-admin/internal/core/events"
	"github.com/silcast/crane-admin/internal/testdb"
)

func TestClient(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Client Suite")
}

func strPtr(s string) *string { return &s }

var _ = Describe("Client Service", func() {
	var (
		ctx     context.Context
		service *client.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		db, err := testdb.Open()
		Expect(err).NotTo(HaveOccurred())
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = client.NewService(clientPostgres.NewClientRepository(db), events.NewAuditBus(lg), lg)
	})

	It("creates, updates and deletes a client", func() {
		c, err := service.Create(ctx, client.ClientDTO{Nombre: "Cementos Apasco", Correo: strPtr("compras@apasco.mx")})
		Expect(err).NotTo(HaveOccurred())
		Expect(c.ID).To(BeNumerically(">", 0))

		updated, err := service.Update(ctx, c.ID, client.ClientDTO{Nombre: "Cementos Apasco", Empresa: strPtr("Holcim")})
		Expect(err).NotTo(HaveOccurred())
		Expect(*updated.Empresa).To(Equal("Holcim"))
		Expect(updated.Correo).To(BeNil())

		Expect(service.Delete(ctx, c.ID)).To(Succeed())
		_, err = service.Get(ctx, c.ID)
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(404))
	})

	It("validates name, phone length and email", func() {
		_, err := service.Create(ctx, client.ClientDTO{Telefono: strPtr("123456789012345678901"), Correo: strPtr("x")})
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(422))
		fields := appErr.Details.(internal.ValidationErrors).Fields()
		Expect(fields).To(HaveKey("nombre"))
		Expect(fields).To(HaveKey("telefono"))
		Expect(fields).To(HaveKey("correo"))
	})

	It("reports 404 when updating a missing client", func() {
		_, err := service.Update(ctx, 99, client.ClientDTO{Nombre: "X"})
		appErr, _ := internal.IsAppError(err)
		Expect(appErr.StatusCode).To(Equal(404))
	})
})
