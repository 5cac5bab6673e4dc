package contact

import (
	"bytes"
	"context"
	"log/slog"
	"text/template"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/core/common/validation"
)

var bodyTemplate = template.Must(template.New("contact").Parse(`Nuevo Mensaje de Contacto

Has recibido un nuevo mensaje a través del formulario de contacto del sitio web.

Nombre: {{.Nombre}}
Correo electrónico: {{.Email}}
Mensaje:
{{.Mensaje}}

El equipo de {{.AppName}}
`))

type Settings struct {
	Recipient string
	Subject   string
	AppName   string
}

type Service struct {
	mailer   Mailer
	settings Settings
	logger   *slog.Logger
}

func NewService(mailer Mailer, settings Settings, logger *slog.Logger) *Service {
	if settings.Subject == "" {
		settings.Subject = DefaultSubject
	}
	return &Service{mailer: mailer, settings: settings, logger: logger}
}

// Send validates the form and mails it to the operations mailbox with reply-to set
// to the submitter. Delivery is attempted once.
func (s *Service) Send(ctx context.Context, dto ContactDTO) error {
	dto.Normalize()
	v := validation.NewValidator()
	dto.Rules(v)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}

	var body bytes.Buffer
	err := bodyTemplate.Execute(&body, struct {
		ContactDTO
		AppName string
	}{dto, s.settings.AppName})
	if err != nil {
		return internal.NewInternalError("failed to render contact mail", err)
	}

	msg := Message{
		To:      s.settings.Recipient,
		ReplyTo: dto.Email,
		Subject: s.settings.Subject,
		Body:    body.String(),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "contact form delivery failed", "reply_to", dto.Email, "error", err)
		return internal.NewExternalError(FailedMessage, internal.ErrCodeMailDeliveryFailed, err)
	}

	s.logger.InfoContext(ctx, "contact form delivered", "reply_to", dto.Email)
	return nil
}
