package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TEFRequisicao is sent to the card terminal for authorization.
type TEFRequisicao struct {
	Valor decimal.Decimal `json:"valor"`
	Forma string          `json:"forma"` // debito | credito
}

// TEFResposta is the terminal's answer. A non-approved response aborts the
// whole sale finalization before any ledger mutation.
type TEFResposta struct {
	Aprovada    bool   `json:"aprovada"`
	Mensagem    string `json:"mensagem"`
	TransacaoID string `json:"transacao_id"`
}

// TEFClient talks to the card terminal bridge over HTTP. In simulate mode
// (local development, no physical terminal) every authorization is approved
// without a network hop.
type TEFClient struct {
	terminalURL string
	simulado    bool
	httpClient  *http.Client
}

func NewTEFClient(terminalURL string, simulado bool) *TEFClient {
	return &TEFClient{
		terminalURL: terminalURL,
		simulado:    simulado,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Autorizar requests authorization for a card payment.
func (c *TEFClient) Autorizar(ctx context.Context, valor decimal.Decimal, forma string) (*TEFResposta, error) {
	if c.simulado {
		return &TEFResposta{
			Aprovada:    true,
			Mensagem:    "Aprovada (simulada)",
			TransacaoID: uuid.NewString(),
		}, nil
	}

	body, err := json.Marshal(TEFRequisicao{Valor: valor, Forma: forma})
	if err != nil {
		return nil, fmt.Errorf("tef: marshal requisicao: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.terminalURL+"/autorizar", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("tef: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tef: terminal indisponível: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tef: terminal retornou %d", resp.StatusCode)
	}

	var out TEFResposta
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("tef: decode resposta: %w", err)
	}
	return &out, nil
}
