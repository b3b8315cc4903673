package worker

// email_worker.go
// Processes email jobs from QueueEmail (stock alerts, divergence notices).

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	Para    string `json:"para"`
	Assunto string `json:"assunto"`
	Corpo   string `json:"corpo"`
}

// Enviador is the outbound mail dependency, satisfied by infra.Mailer.
type Enviador interface {
	Send(to, subject, body string) error
}

type EmailWorker struct {
	mailer Enviador
}

func NewEmailWorker(mailer Enviador) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.Para == "" {
		log.Warn().Msg("email_worker: destinatário vazio, job ignorado")
		return
	}

	if err := w.mailer.Send(payload.Para, payload.Assunto, payload.Corpo); err != nil {
		log.Error().Err(err).Str("para", payload.Para).Msg("email_worker: falha ao enviar email")
		return
	}
	log.Info().Str("para", payload.Para).Msg("email_worker: email enviado")
}
