package pix

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestPayloadCampos(t *testing.T) {
	payload, err := Payload(Cobranca{
		Chave:  "loja@pontocerto.com.br",
		Nome:   "PONTO CERTO",
		Cidade: "SAO PAULO",
		Valor:  dec("64.50"),
		TxID:   "VENDA123",
	})
	require.NoError(t, err)

	campos, err := Campos(payload)
	require.NoError(t, err)

	assert.Equal(t, "01", campos["00"])
	assert.Equal(t, "986", campos["53"])
	assert.Equal(t, "64.50", campos["54"])
	assert.Equal(t, "BR", campos["58"])
	assert.Equal(t, "PONTO CERTO", campos["59"])
	assert.Equal(t, "SAO PAULO", campos["60"])
	assert.Contains(t, campos["26"], "br.gov.bcb.pix")
	assert.Contains(t, campos["26"], "loja@pontocerto.com.br")
	assert.Contains(t, campos["62"], "VENDA123")
	// trailing field: the verified CRC itself
	assert.Equal(t, payload[len(payload)-4:], campos["63"])
}

func TestPayloadValor(t *testing.T) {
	payload, err := Payload(Cobranca{
		Chave:  "11999990000",
		Nome:   "MERCADINHO",
		Cidade: "RECIFE",
		Valor:  dec("1234.56"),
	})
	require.NoError(t, err)

	valor, err := Valor(payload)
	require.NoError(t, err)
	assert.True(t, valor.Equal(dec("1234.56")))
}

func TestPayloadValorZeroOmiteCampo(t *testing.T) {
	payload, err := Payload(Cobranca{
		Chave:  "11999990000",
		Nome:   "MERCADINHO",
		Cidade: "RECIFE",
		Valor:  decimal.Zero,
	})
	require.NoError(t, err)

	campos, err := Campos(payload)
	require.NoError(t, err)
	_, tem := campos["54"]
	assert.False(t, tem)

	_, err = Valor(payload)
	assert.Error(t, err)
}

func TestPayloadTxIDPadrao(t *testing.T) {
	payload, err := Payload(Cobranca{
		Chave:  "11999990000",
		Nome:   "MERCADINHO",
		Cidade: "RECIFE",
		Valor:  dec("5.00"),
	})
	require.NoError(t, err)

	campos, err := Campos(payload)
	require.NoError(t, err)
	assert.Contains(t, campos["62"], "***")
}

func TestPayloadTruncaNomeECidade(t *testing.T) {
	payload, err := Payload(Cobranca{
		Chave:  "11999990000",
		Nome:   "SUPERMERCADO PONTO CERTO DA ESQUINA LTDA",
		Cidade: "SAO JOSE DOS CAMPOS",
		Valor:  dec("5.00"),
	})
	require.NoError(t, err)

	campos, err := Campos(payload)
	require.NoError(t, err)
	assert.Len(t, campos["59"], 25)
	assert.Len(t, campos["60"], 15)
}

func TestPayloadSemChave(t *testing.T) {
	_, err := Payload(Cobranca{Nome: "X", Cidade: "Y", Valor: dec("1.00")})
	assert.Error(t, err)
}

func TestPayloadValorNegativo(t *testing.T) {
	_, err := Payload(Cobranca{Chave: "k", Nome: "X", Cidade: "Y", Valor: dec("-1.00")})
	assert.Error(t, err)
}

func TestCamposCRCInvalido(t *testing.T) {
	payload, err := Payload(Cobranca{
		Chave:  "11999990000",
		Nome:   "MERCADINHO",
		Cidade: "RECIFE",
		Valor:  dec("5.00"),
	})
	require.NoError(t, err)

	adulterado := strings.Replace(payload, "RECIFE", "MANAUS", 1)
	_, err = Campos(adulterado)
	assert.Error(t, err)
}

func TestCRC16ConhecidoDoEMV(t *testing.T) {
	// CRC-16/CCITT-FALSE check value for "123456789"
	assert.Equal(t, uint16(0x29B1), crc16("123456789"))
}
