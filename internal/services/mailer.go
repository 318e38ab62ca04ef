package services

import (
	"time"

	"github.com/tutorhub/scheduling-service/internal/models"
	"github.com/tutorhub/scheduling-service/internal/store"
)

// Mailer is the outbound email boundary. Real transport is out of
// scope; the shipped implementation appends to the store's mock log.
type Mailer interface {
	Send(to, subject, body string, at time.Time)
}

type logMailer struct {
	store *store.Store
}

// NewLogMailer returns the mock transport writing to the email log.
func NewLogMailer(st *store.Store) Mailer {
	return &logMailer{store: st}
}

func (m *logMailer) Send(to, subject, body string, at time.Time) {
	m.store.AppendEmail(models.EmailLogEntry{
		To:      to,
		Subject: subject,
		Body:    body,
		SentAt:  at.UTC(),
	})
}
