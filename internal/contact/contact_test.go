package contact_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/contact"
	"github.com/silcast/crane-admin/internal/transport"
)

func TestContact(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Contact Suite")
}

type fakeMailer struct {
	sent []contact.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg contact.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

var _ = Describe("Contact form", func() {
	var (
		mailer  *fakeMailer
		handler *contact.Handler
	)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/enviar-correo", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		handler.Send(rec, req)
		return rec
	}

	BeforeEach(func() {
		mailer = &fakeMailer{}
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := contact.NewService(mailer, contact.Settings{Recipient: "ops@silcast.mx", AppName: "Silcast"}, lg)
		handler = contact.NewHandler(transport.NewBaseHandler(lg), svc)
	})

	It("mails the operations mailbox with reply-to set to the sender", func() {
		rec := post(`{"nombre":"Ana","email":"ana@cliente.mx","mensaje":"Necesito una grúa de 50 t"}`)
		Expect(rec.Code).To(Equal(http.StatusOK))

		var resp contact.SendResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Message).To(Equal(contact.SentMessage))

		Expect(mailer.sent).To(HaveLen(1))
		msg := mailer.sent[0]
		Expect(msg.To).To(Equal("ops@silcast.mx"))
		Expect(msg.ReplyTo).To(Equal("ana@cliente.mx"))
		Expect(msg.Subject).To(Equal(contact.DefaultSubject))
		Expect(msg.Body).To(ContainSubstring("Nombre: Ana"))
		Expect(msg.Body).To(ContainSubstring("Necesito una grúa de 50 t"))
		Expect(msg.Body).To(ContainSubstring("El equipo de Silcast"))
	})

	It("answers 422 and sends nothing when the form is invalid", func() {
		rec := post(`{"nombre":"","email":"no-es-correo","mensaje":"` + strings.Repeat("x", 2001) + `"}`)
		Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
		Expect(mailer.sent).To(BeEmpty())

		var resp struct {
			Error struct {
				Details struct {
					Errors map[string][]string `json:"errors"`
				} `json:"details"`
			} `json:"error"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Error.Details.Errors).To(HaveKey("nombre"))
		Expect(resp.Error.Details.Errors).To(HaveKey("email"))
		Expect(resp.Error.Details.Errors).To(HaveKey("mensaje"))
	})

	It("reports a generic 500 when delivery fails", func() {
		mailer.err = errors.New("connection refused")
		rec := post(`{"nombre":"Ana","email":"ana@cliente.mx","mensaje":"Hola"}`)
		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(rec.Body.String()).To(ContainSubstring(string(internal.ErrCodeMailDeliveryFailed)))
		Expect(rec.Body.String()).NotTo(ContainSubstring("connection refused"))
	})
})
