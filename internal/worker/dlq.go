package worker

// dlq.go
// Jobs the workers cannot process land in a dead-letter list for manual
// inspection, one Redis list per source queue under dlq:{fila}.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// DLQEntry preserves the failed payload plus enough context to replay it.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      string          `json:"failed_at"`
	Attempts      int             `json:"attempts"`
}

// SendToDLQ parks a failed job. Best-effort: if Redis itself is down the job
// is only logged, there is nowhere safer left to put it.
func SendToDLQ(ctx context.Context, rdb *redis.Client, fila, tipo string, payload json.RawMessage, motivo string, tentativas int) {
	entry := DLQEntry{
		OriginalQueue: fila,
		JobType:       tipo,
		Payload:       payload,
		Reason:        motivo,
		FailedAt:      time.Now().UTC().Format(time.RFC3339),
		Attempts:      tentativas,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("fila", fila).Msg("dlq: falha ao serializar entrada")
		return
	}

	if err := rdb.LPush(ctx, DLQPrefix+fila, data).Err(); err != nil {
		log.Error().Err(err).Str("fila", fila).Str("motivo", motivo).Msg("dlq: falha ao enfileirar")
		return
	}
	log.Warn().
		Str("fila", fila).
		Str("tipo", tipo).
		Str("motivo", motivo).
		Int("tentativas", tentativas).
		Msg("dlq: job movido para a fila morta")
}

// DLQLength reports the backlog of one dead-letter list.
func DLQLength(ctx context.Context, rdb *redis.Client, fila string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+fila).Result()
}
