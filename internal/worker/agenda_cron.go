package worker

// agenda_cron.go
// Background goroutine that polls the cash schedule and applies due
// close/reopen transitions. The evaluator itself is idempotent per day, so a
// crashed-and-restarted process never double-fires.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// AgendaAvaliador is the slice of the schedule service the cron drives.
type AgendaAvaliador interface {
	VerificarEAplicar(ctx context.Context, agora time.Time) (string, error)
}

// StartAgendaCron launches the polling goroutine. pollInterval comes from
// config (AGENDA_POLL_SECONDS); it respects the context for shutdown.
func StartAgendaCron(ctx context.Context, avaliador AgendaAvaliador, pollInterval time.Duration) {
	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		log.Info().Dur("intervalo", pollInterval).Msg("agenda_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("agenda_cron: shutting down")
				return
			case <-ticker.C:
				acao, err := avaliador.VerificarEAplicar(ctx, time.Now())
				if err != nil {
					log.Error().Err(err).Msg("agenda_cron: falha ao avaliar agenda")
					continue
				}
				if acao != "nenhuma" {
					log.Info().Str("acao", acao).Msg("agenda_cron: transição aplicada")
				}
			}
		}
	}()
}
