package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/dto"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/pix"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
)

// PixService generates BR Code charges for the PIX payment flow.
type PixService interface {
	// GerarCobranca builds the charge for the amount still owed after the
	// informed partial payments. Overpayment yields a zero-value charge.
	GerarCobranca(ctx context.Context, total decimal.Decimal, parciais []decimal.Decimal, vendaID uuid.UUID) (*dto.PixCobrancaResponse, error)
}

type pixService struct {
	chave  string
	nome   string
	cidade string
	cnpj   string
	rdb    *redis.Client // optional payload cache, nil disables
}

func NewPixService(chave, nome, cidade, cnpj string, rdb *redis.Client) PixService {
	return &pixService{chave: chave, nome: nome, cidade: cidade, cnpj: cnpj, rdb: rdb}
}

func (s *pixService) GerarCobranca(ctx context.Context, total decimal.Decimal, parciais []decimal.Decimal, vendaID uuid.UUID) (*dto.PixCobrancaResponse, error) {
	restante := total
	for _, p := range parciais {
		restante = restante.Sub(p)
	}
	if restante.IsNegative() {
		restante = decimal.Zero
	}
	restante = restante.Round(2)

	txid := txIDFromVenda(vendaID)
	payload, err := pix.Payload(pix.Cobranca{
		Chave:  s.chave,
		Nome:   s.nome,
		Cidade: s.cidade,
		CNPJ:   s.cnpj,
		Valor:  restante,
		TxID:   txid,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar cobrança PIX: %w", err)
	}

	resp := &dto.PixCobrancaResponse{
		Payload: payload,
		Valor:   restante,
		TxID:    txid,
	}

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		// terminal can still show the copy-paste payload
		log.Warn().Err(err).Str("venda_id", vendaID.String()).Msg("falha ao renderizar QR code PIX")
	} else {
		resp.QRCodeBase64 = base64.StdEncoding.EncodeToString(png)
	}

	if s.rdb != nil {
		key := "pix:cobranca:" + vendaID.String()
		if err := s.rdb.Set(ctx, key, payload, 24*time.Hour).Err(); err != nil {
			log.Warn().Err(err).Str("venda_id", vendaID.String()).Msg("falha ao cachear cobrança PIX")
		}
	}
	return resp, nil
}

// txIDFromVenda derives the BR Code txid from the sale id. The EMV spec
// allows at most 25 alphanumeric chars, so the uuid loses its hyphens and
// gets truncated.
func txIDFromVenda(vendaID uuid.UUID) string {
	id := strings.ReplaceAll(vendaID.String(), "-", "")
	if len(id) > 25 {
		id = id[:25]
	}
	return id
}
