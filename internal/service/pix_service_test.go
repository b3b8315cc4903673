package service

import (
	"context"
	"strings"
	"testing"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/pix"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPixSvc() PixService {
	return NewPixService("a1b2c3d4-e5f6-7890-abcd-ef1234567890", "PONTO CERTO", "SAO PAULO", "12345678000199", nil)
}

func TestGerarCobrancaCarregaCNPJ(t *testing.T) {
	svc := newPixSvc()
	resp, err := svc.GerarCobranca(context.Background(), dec("10.00"), nil, uuid.New())
	require.NoError(t, err)

	campos, err := pix.Campos(resp.Payload)
	require.NoError(t, err)
	assert.Contains(t, campos["26"], "12345678000199")
}

func TestGerarCobrancaSemParciais(t *testing.T) {
	svc := newPixSvc()
	resp, err := svc.GerarCobranca(context.Background(), dec("42.90"), nil, uuid.New())
	require.NoError(t, err)

	assert.True(t, resp.Valor.Equal(dec("42.90")))
	assert.NotEmpty(t, resp.QRCodeBase64)

	valor, err := pix.Valor(resp.Payload)
	require.NoError(t, err)
	assert.True(t, valor.Equal(dec("42.90")))
}

func TestGerarCobrancaComParciais(t *testing.T) {
	svc := newPixSvc()
	parciais := []decimal.Decimal{dec("35.50"), dec("10.00")}

	resp, err := svc.GerarCobranca(context.Background(), dec("100.00"), parciais, uuid.New())
	require.NoError(t, err)
	assert.True(t, resp.Valor.Equal(dec("54.50")))

	valor, err := pix.Valor(resp.Payload)
	require.NoError(t, err)
	assert.True(t, valor.Equal(dec("54.50")))
}

func TestGerarCobrancaPagamentoExcedente(t *testing.T) {
	svc := newPixSvc()
	parciais := []decimal.Decimal{dec("80.00"), dec("30.00")}

	resp, err := svc.GerarCobranca(context.Background(), dec("100.00"), parciais, uuid.New())
	require.NoError(t, err)
	// overpayment clamps to zero, never a negative charge
	assert.True(t, resp.Valor.IsZero())
	assert.NotEmpty(t, resp.Payload)
}

func TestGerarCobrancaArredondaCentavos(t *testing.T) {
	svc := newPixSvc()
	parciais := []decimal.Decimal{dec("33.333")}

	resp, err := svc.GerarCobranca(context.Background(), dec("100.00"), parciais, uuid.New())
	require.NoError(t, err)
	assert.True(t, resp.Valor.Equal(dec("66.67")), "veio %s", resp.Valor)
}

func TestTxIDDerivadoDaVenda(t *testing.T) {
	svc := newPixSvc()
	vendaID := uuid.New()

	resp, err := svc.GerarCobranca(context.Background(), dec("10.00"), nil, vendaID)
	require.NoError(t, err)

	assert.Len(t, resp.TxID, 25)
	assert.NotContains(t, resp.TxID, "-")
	assert.True(t, strings.HasPrefix(strings.ReplaceAll(vendaID.String(), "-", ""), resp.TxID))
}

func TestGerarCobrancaSemChave(t *testing.T) {
	svc := NewPixService("", "PONTO CERTO", "SAO PAULO", "", nil)
	_, err := svc.GerarCobranca(context.Background(), dec("10.00"), nil, uuid.New())
	assert.Error(t, err)
}
