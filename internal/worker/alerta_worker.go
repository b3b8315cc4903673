package worker

// alerta_worker.go
// Processes stock-alert jobs from QueueAlertas. Every finalized sale enqueues
// one so the low-stock panel and the zero-stock email stay current without
// slowing the sale path down.

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// AlertaJobPayload is the job envelope sent to QueueAlertas.
type AlertaJobPayload struct {
	VendaID  string   `json:"venda_id"`
	Produtos []string `json:"produtos,omitempty"`
}

// EstoqueVerificador is the slice of the alert service the worker needs.
// Declared here to keep the worker package free of a service dependency.
type EstoqueVerificador interface {
	NotificarZerados(ctx context.Context)
}

type AlertaWorker struct {
	alertas EstoqueVerificador
}

func NewAlertaWorker(alertas EstoqueVerificador) *AlertaWorker {
	return &AlertaWorker{alertas: alertas}
}

// Process re-evaluates stock levels and fires the zero-stock notification.
// The payload identifies the triggering sale for the log only; the recheck
// always runs over the whole catalog.
func (w *AlertaWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload AlertaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_worker: invalid payload")
		return
	}
	log.Debug().Str("venda_id", payload.VendaID).Msg("alerta_worker: rechecking stock levels")
	w.alertas.NotificarZerados(ctx)
}
