package service

import (
	"context"
	"testing"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type estornoFixture struct {
	vendas   *memVendaRepo
	produtos *memProdutoRepo
	fin      *memFinanceiroRepo
	movs     *memMovimentoEstoqueRepo
	svc      EstornoService
}

func newEstornoFixture() *estornoFixture {
	f := &estornoFixture{
		vendas:   newMemVendaRepo(),
		produtos: newMemProdutoRepo(),
		fin:      newMemFinanceiroRepo(),
		movs:     newMemMovimentoEstoqueRepo(),
	}
	f.svc = NewEstornoService(f.vendas, f.produtos, f.fin, f.movs)
	return f
}

// vendaComDoisItens seeds a concluded sale: 2x normal product at 10.00 and
// 1x auto-created product at 5.00.
func (f *estornoFixture) vendaComDoisItens() (*model.Venda, *model.Produto, *model.Produto) {
	catalogado := f.produtos.seed(&model.Produto{
		CodigoBarras: "123", Nome: "Detergente", PrecoVenda: dec("10.00"),
		EstoqueAtual: 7, Ativo: true,
	})
	avulso := f.produtos.seed(&model.Produto{
		CodigoBarras: "999", Nome: "Avulso", PrecoVenda: dec("5.00"),
		EstoqueAtual: 0, AutoCriado: true, Ativo: true,
	})
	venda := f.vendas.seed(&model.Venda{
		UsuarioID:      uuid.New(),
		Total:          dec("25.00"),
		FormaPagamento: model.PagamentoDinheiro,
		ValorRecebido:  dec("25.00"),
		Estado:         model.VendaConcluida,
		Itens: []model.ItemVenda{
			{ProdutoID: &catalogado.ID, Quantidade: 2, PrecoUnitario: dec("10.00")},
			{ProdutoID: &avulso.ID, Quantidade: 1, PrecoUnitario: dec("5.00")},
		},
	})
	return venda, catalogado, avulso
}

func TestEstornarVendaCompleta(t *testing.T) {
	f := newEstornoFixture()
	venda, catalogado, avulso := f.vendaComDoisItens()

	resp, err := f.svc.EstornarVenda(context.Background(), venda.ID, uuid.New(), "cliente desistiu")
	require.NoError(t, err)
	assert.Equal(t, model.VendaEstornada, resp.Estado)
	assert.Equal(t, model.VendaEstornada, venda.Estado)

	// catalogued stock returns; the auto-created product never had stock taken
	assert.Equal(t, 9, catalogado.EstoqueAtual)
	assert.Equal(t, 0, avulso.EstoqueAtual)

	require.Len(t, f.movs.movimentos, 1)
	assert.Equal(t, "estorno", f.movs.movimentos[0].Tipo)
	assert.Equal(t, 2, f.movs.movimentos[0].Delta)

	receitas := f.fin.porTipo(model.MovimentoReceita)
	require.Len(t, receitas, 1)
	assert.True(t, receitas[0].Valor.Equal(dec("-25.00")))
}

func TestEstornarVendaInexistente(t *testing.T) {
	f := newEstornoFixture()
	_, err := f.svc.EstornarVenda(context.Background(), uuid.New(), uuid.New(), "motivo qualquer")
	assert.ErrorIs(t, err, ErrVendaNaoEncontrada)
}

func TestEstornarVendaDuasVezes(t *testing.T) {
	f := newEstornoFixture()
	venda, catalogado, _ := f.vendaComDoisItens()

	_, err := f.svc.EstornarVenda(context.Background(), venda.ID, uuid.New(), "erro de caixa")
	require.NoError(t, err)

	_, err = f.svc.EstornarVenda(context.Background(), venda.ID, uuid.New(), "erro de caixa")
	assert.ErrorIs(t, err, ErrVendaJaEstornada)
	// stock restored exactly once
	assert.Equal(t, 9, catalogado.EstoqueAtual)
}

func TestEstornarItemParcial(t *testing.T) {
	f := newEstornoFixture()
	venda, catalogado, _ := f.vendaComDoisItens()
	item := venda.Itens[0] // 2x 10.00

	resp, err := f.svc.EstornarItem(context.Background(), venda.ID, item.ID, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, model.VendaConcluida, resp.Estado)
	assert.True(t, resp.Total.Equal(dec("5.00")))
	assert.True(t, venda.Total.Equal(dec("5.00")))
	require.Len(t, venda.Itens, 1)
	assert.Equal(t, 9, catalogado.EstoqueAtual)

	receitas := f.fin.porTipo(model.MovimentoReceita)
	require.Len(t, receitas, 1)
	assert.True(t, receitas[0].Valor.Equal(dec("-20.00")))
}

func TestEstornarUltimoItemEncerraVenda(t *testing.T) {
	f := newEstornoFixture()
	venda, _, _ := f.vendaComDoisItens()

	for _, item := range append([]model.ItemVenda{}, venda.Itens...) {
		_, err := f.svc.EstornarItem(context.Background(), venda.ID, item.ID, uuid.New())
		require.NoError(t, err)
	}

	assert.Equal(t, model.VendaEstornada, venda.Estado)
	assert.True(t, venda.Total.IsZero())
	assert.Empty(t, venda.Itens)
}

func TestEstornarItemPorProdutoID(t *testing.T) {
	f := newEstornoFixture()
	venda, catalogado, _ := f.vendaComDoisItens()

	// legacy callers send the product id instead of the item id
	_, err := f.svc.EstornarItem(context.Background(), venda.ID, catalogado.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 9, catalogado.EstoqueAtual)
	require.Len(t, venda.Itens, 1)
}

func TestEstornarItemInexistente(t *testing.T) {
	f := newEstornoFixture()
	venda, _, _ := f.vendaComDoisItens()

	_, err := f.svc.EstornarItem(context.Background(), venda.ID, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrItemNaoEncontrado)
	assert.Len(t, venda.Itens, 2)
	assert.True(t, venda.Total.Equal(dec("25.00")))
}
