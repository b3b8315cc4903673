package service

import (
	"context"
	"testing"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/dto"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProdutoFixture() (*memProdutoRepo, *memMovimentoEstoqueRepo, ProdutoService) {
	produtos := newMemProdutoRepo()
	movs := newMemMovimentoEstoqueRepo()
	return produtos, movs, NewProdutoService(produtos, movs, nil)
}

func TestCriarProduto(t *testing.T) {
	_, _, svc := newProdutoFixture()

	resp, err := svc.Criar(context.Background(), dto.CriarProdutoRequest{
		CodigoBarras:  "7894900011517",
		Nome:          "Refrigerante 2L",
		PrecoCusto:    dec("4.20"),
		PrecoVenda:    dec("8.99"),
		EstoqueAtual:  24,
		EstoqueMinimo: 6,
	})
	require.NoError(t, err)
	assert.True(t, resp.Ativo)
	assert.False(t, resp.AutoCriado)
	assert.Equal(t, 24, resp.EstoqueAtual)
}

func TestCriarProdutoBarcodeDuplicado(t *testing.T) {
	produtos, _, svc := newProdutoFixture()
	produtos.seed(&model.Produto{CodigoBarras: "123", Nome: "Existente", Ativo: true})

	_, err := svc.Criar(context.Background(), dto.CriarProdutoRequest{
		CodigoBarras: "123",
		Nome:         "Outro",
		PrecoVenda:   dec("1.00"),
	})
	assert.ErrorIs(t, err, ErrBarcodeDuplicado)
}

func TestCriarProdutoValidadeInvalida(t *testing.T) {
	_, _, svc := newProdutoFixture()
	validade := "2026-12-31"
	_, err := svc.Criar(context.Background(), dto.CriarProdutoRequest{
		CodigoBarras: "456",
		Nome:         "Iogurte",
		PrecoVenda:   dec("3.50"),
		Validade:     &validade,
	})
	assert.ErrorIs(t, err, ErrDataInvalida)
}

func TestAjustarEstoque(t *testing.T) {
	produtos, movs, svc := newProdutoFixture()
	p := produtos.seed(&model.Produto{
		CodigoBarras: "789", Nome: "Farinha", EstoqueAtual: 10, Ativo: true,
	})

	resp, err := svc.AjustarEstoque(context.Background(), p.ID, dto.AjustarEstoqueRequest{
		Delta:  -4,
		Motivo: "perda por validade",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.EstoqueAtual)
	assert.Equal(t, 6, p.EstoqueAtual)

	require.Len(t, movs.movimentos, 1)
	assert.Equal(t, "ajuste_manual", movs.movimentos[0].Tipo)
	assert.Equal(t, -4, movs.movimentos[0].Delta)
	assert.Equal(t, 10, movs.movimentos[0].EstoqueAnterior)
	assert.Equal(t, 6, movs.movimentos[0].EstoqueNovo)
	assert.Equal(t, "perda por validade", movs.movimentos[0].Motivo)
}

func TestAjustarEstoqueRecusaNegativo(t *testing.T) {
	produtos, movs, svc := newProdutoFixture()
	p := produtos.seed(&model.Produto{
		CodigoBarras: "790", Nome: "Óleo", EstoqueAtual: 3, Ativo: true,
	})

	_, err := svc.AjustarEstoque(context.Background(), p.ID, dto.AjustarEstoqueRequest{
		Delta:  -5,
		Motivo: "recontagem",
	})
	assert.ErrorIs(t, err, ErrEstoqueNegativo)
	assert.Equal(t, 3, p.EstoqueAtual)
	assert.Empty(t, movs.movimentos)
}

func TestDesativarProduto(t *testing.T) {
	produtos, _, svc := newProdutoFixture()
	p := produtos.seed(&model.Produto{
		CodigoBarras: "791", Nome: "Biscoito", EstoqueAtual: 12, Ativo: true,
	})

	require.NoError(t, svc.Desativar(context.Background(), p.ID))
	assert.False(t, p.Ativo)
	assert.Equal(t, 0, p.EstoqueAtual)

	assert.ErrorIs(t, svc.Desativar(context.Background(), uuid.New()), ErrProdutoNaoEncontrado)
}

func TestBuscarPorBarcode(t *testing.T) {
	produtos, _, svc := newProdutoFixture()
	produtos.seed(&model.Produto{CodigoBarras: "792", Nome: "Sal", Ativo: true})

	resp, err := svc.BuscarPorBarcode(context.Background(), "792")
	require.NoError(t, err)
	assert.Equal(t, "Sal", resp.Nome)

	_, err = svc.BuscarPorBarcode(context.Background(), "000")
	assert.ErrorIs(t, err, ErrProdutoNaoEncontrado)
}
