package core

import "net/mail"

type (
	// EmailMessage is a plain-text courtesy email. The records store only
	// sends short informational notes (eg. attendance notifications); there
	// is no templating involved.
	EmailMessage struct {
		To      []mail.Address
		Subject string
		Body    string
	}

	// EmailService is any service that can send emails.
	EmailService interface {
		// SendMessages sends messages concurrently; delivery is best-effort.
		SendMessages(messages ...*EmailMessage)
	}
)

func (m *EmailMessage) HasRecipients() bool {
	return len(m.To) > 0
}
