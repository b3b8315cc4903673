package service

import (
	"context"
	"testing"
	"time"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/dto"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFinanceiroFixture() (*memContaRepo, *memFinanceiroRepo, FinanceiroService) {
	contas := newMemContaRepo()
	fin := newMemFinanceiroRepo()
	return contas, fin, NewFinanceiroService(contas, fin)
}

func TestCriarDespesaVencimentoInvalido(t *testing.T) {
	_, _, svc := newFinanceiroFixture()
	_, err := svc.CriarDespesa(context.Background(), dto.CriarContaRequest{
		Descricao:      "Aluguel",
		Valor:          dec("1200.00"),
		DataVencimento: "2026-09-10", // ISO, not dd/mm/yyyy
	})
	assert.ErrorIs(t, err, ErrDataInvalida)
}

func TestPagarDespesaIntegral(t *testing.T) {
	contas, fin, svc := newFinanceiroFixture()

	criada, err := svc.CriarDespesa(context.Background(), dto.CriarContaRequest{
		Descricao:      "Energia elétrica",
		Valor:          dec("430.00"),
		DataVencimento: "10/09/2026",
	})
	require.NoError(t, err)

	id := uuid.MustParse(criada.ID)
	paga, err := svc.PagarDespesa(context.Background(), id, dto.LiquidarContaRequest{Valor: dec("430.00")})
	require.NoError(t, err)

	assert.Equal(t, model.ContaPaga, paga.Estado)
	assert.True(t, paga.Valor.Equal(dec("430.00")))

	// full settlement leaves no remainder row
	pendentes, err := contas.ListDespesas(context.Background(), model.ContaPendente)
	require.NoError(t, err)
	assert.Empty(t, pendentes)

	despesas := fin.porTipo(model.MovimentoDespesa)
	require.Len(t, despesas, 1)
	assert.True(t, despesas[0].Valor.Equal(dec("430.00")))
}

func TestPagarDespesaParcialDivideAConta(t *testing.T) {
	contas, _, svc := newFinanceiroFixture()

	criada, err := svc.CriarDespesa(context.Background(), dto.CriarContaRequest{
		Descricao:      "Fornecedor de bebidas",
		Valor:          dec("1000.00"),
		DataVencimento: "20/09/2026",
	})
	require.NoError(t, err)
	id := uuid.MustParse(criada.ID)

	paga, err := svc.PagarDespesa(context.Background(), id, dto.LiquidarContaRequest{Valor: dec("400.00")})
	require.NoError(t, err)

	// original closes at the paid amount
	assert.Equal(t, model.ContaPaga, paga.Estado)
	assert.True(t, paga.Valor.Equal(dec("400.00")))

	// remainder reopens as a new pending row linked to the origin
	pendentes, err := contas.ListDespesas(context.Background(), model.ContaPendente)
	require.NoError(t, err)
	require.Len(t, pendentes, 1)
	assert.True(t, pendentes[0].Valor.Equal(dec("600.00")))
	require.NotNil(t, pendentes[0].OrigemID)
	assert.Equal(t, id, *pendentes[0].OrigemID)
	assert.Equal(t, "Fornecedor de bebidas", pendentes[0].Descricao)
	assert.Equal(t, "20/09/2026", pendentes[0].DataVencimento)
}

func TestPagarDespesaJaLiquidada(t *testing.T) {
	_, _, svc := newFinanceiroFixture()

	criada, err := svc.CriarDespesa(context.Background(), dto.CriarContaRequest{
		Descricao:      "Internet",
		Valor:          dec("99.90"),
		DataVencimento: "05/09/2026",
	})
	require.NoError(t, err)
	id := uuid.MustParse(criada.ID)

	_, err = svc.PagarDespesa(context.Background(), id, dto.LiquidarContaRequest{Valor: dec("99.90")})
	require.NoError(t, err)

	_, err = svc.PagarDespesa(context.Background(), id, dto.LiquidarContaRequest{Valor: dec("99.90")})
	assert.ErrorIs(t, err, ErrContaJaLiquidada)
}

func TestPagarDespesaValorInvalido(t *testing.T) {
	_, _, svc := newFinanceiroFixture()

	criada, err := svc.CriarDespesa(context.Background(), dto.CriarContaRequest{
		Descricao:      "Água",
		Valor:          dec("80.00"),
		DataVencimento: "15/09/2026",
	})
	require.NoError(t, err)
	id := uuid.MustParse(criada.ID)

	_, err = svc.PagarDespesa(context.Background(), id, dto.LiquidarContaRequest{Valor: dec("0.00")})
	assert.ErrorIs(t, err, ErrValorLiquidacao)

	_, err = svc.PagarDespesa(context.Background(), id, dto.LiquidarContaRequest{Valor: dec("80.01")})
	assert.ErrorIs(t, err, ErrValorLiquidacao)

	_, err = svc.PagarDespesa(context.Background(), uuid.New(), dto.LiquidarContaRequest{Valor: dec("10.00")})
	assert.ErrorIs(t, err, ErrContaNaoEncontrada)
}

func TestReceberContaParcial(t *testing.T) {
	contas, fin, svc := newFinanceiroFixture()

	criada, err := svc.CriarConta(context.Background(), dto.CriarContaRequest{
		Descricao:      "Fiado do seu João",
		Valor:          dec("150.00"),
		DataVencimento: "30/09/2026",
	})
	require.NoError(t, err)
	id := uuid.MustParse(criada.ID)

	recebida, err := svc.ReceberConta(context.Background(), id, dto.LiquidarContaRequest{Valor: dec("50.00")})
	require.NoError(t, err)
	assert.Equal(t, model.ContaRecebida, recebida.Estado)

	pendentes, err := contas.ListContas(context.Background(), model.ContaPendente)
	require.NoError(t, err)
	require.Len(t, pendentes, 1)
	assert.True(t, pendentes[0].Valor.Equal(dec("100.00")))
	require.NotNil(t, pendentes[0].OrigemID)
	assert.Equal(t, id, *pendentes[0].OrigemID)

	receitas := fin.porTipo(model.MovimentoReceita)
	require.Len(t, receitas, 1)
	assert.True(t, receitas[0].Valor.Equal(dec("50.00")))
}

func TestContaVencida(t *testing.T) {
	_, _, svc := newFinanceiroFixture()

	ontem := time.Now().AddDate(0, 0, -1).Format(model.DataVencimentoLayout)
	criada, err := svc.CriarConta(context.Background(), dto.CriarContaRequest{
		Descricao:      "Conta atrasada",
		Valor:          dec("10.00"),
		DataVencimento: ontem,
	})
	require.NoError(t, err)
	assert.True(t, criada.Vencida)

	amanha := time.Now().AddDate(0, 0, 1).Format(model.DataVencimentoLayout)
	futura, err := svc.CriarConta(context.Background(), dto.CriarContaRequest{
		Descricao:      "Conta futura",
		Valor:          dec("10.00"),
		DataVencimento: amanha,
	})
	require.NoError(t, err)
	assert.False(t, futura.Vencida)
}

func TestDashboard(t *testing.T) {
	_, fin, svc := newFinanceiroFixture()

	fin.append(&model.MovimentoFinanceiro{Tipo: model.MovimentoReceita, Valor: dec("500.00")})
	fin.append(&model.MovimentoFinanceiro{Tipo: model.MovimentoReceita, Valor: dec("-50.00")}) // estorno
	fin.append(&model.MovimentoFinanceiro{Tipo: model.MovimentoDespesa, Valor: dec("120.00")})

	de := time.Now().Add(-1 * time.Hour)
	ate := time.Now().Add(time.Hour)
	dash, err := svc.Dashboard(context.Background(), de, ate)
	require.NoError(t, err)

	assert.True(t, dash.Receitas.Equal(dec("450.00")))
	assert.True(t, dash.Despesas.Equal(dec("120.00")))
	assert.True(t, dash.Saldo.Equal(dec("330.00")))
}
