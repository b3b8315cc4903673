package service

import (
	"context"
	"testing"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturaEmail struct {
	para    string
	assunto string
	corpo   string
	enviado bool
}

func (c *capturaEmail) Send(to, subject, body string) error {
	c.para, c.assunto, c.corpo = to, subject, body
	c.enviado = true
	return nil
}

func seedEstoque(produtos *memProdutoRepo) {
	produtos.seed(&model.Produto{CodigoBarras: "1", Nome: "Zerado", EstoqueAtual: 0, EstoqueMinimo: 10, Ativo: true})
	produtos.seed(&model.Produto{CodigoBarras: "2", Nome: "Crítico", EstoqueAtual: 4, EstoqueMinimo: 10, Ativo: true})
	produtos.seed(&model.Produto{CodigoBarras: "3", Nome: "Baixo", EstoqueAtual: 9, EstoqueMinimo: 10, Ativo: true})
	produtos.seed(&model.Produto{CodigoBarras: "4", Nome: "Saudável", EstoqueAtual: 50, EstoqueMinimo: 10, Ativo: true})
	produtos.seed(&model.Produto{CodigoBarras: "5", Nome: "Inativo", EstoqueAtual: 0, EstoqueMinimo: 10, Ativo: false})
}

func TestVerificarEstoqueBaixoSeveridades(t *testing.T) {
	produtos := newMemProdutoRepo()
	seedEstoque(produtos)
	svc := NewAlertaService(produtos, nil, nil, "")

	alertas, err := svc.VerificarEstoqueBaixo(context.Background())
	require.NoError(t, err)
	require.Len(t, alertas, 3)

	porNome := make(map[string]string)
	for _, a := range alertas {
		porNome[a.Nome] = a.Severidade
	}
	assert.Equal(t, SeveridadeZerado, porNome["Zerado"])
	assert.Equal(t, SeveridadeCritico, porNome["Crítico"])
	assert.Equal(t, SeveridadeBaixo, porNome["Baixo"])
}

func TestSeveridadeNoLimiar(t *testing.T) {
	produtos := newMemProdutoRepo()
	// exactly half the minimum is still critical
	produtos.seed(&model.Produto{CodigoBarras: "6", Nome: "Meio", EstoqueAtual: 5, EstoqueMinimo: 10, Ativo: true})
	// exactly at the minimum is merely low
	produtos.seed(&model.Produto{CodigoBarras: "7", Nome: "Justo", EstoqueAtual: 10, EstoqueMinimo: 10, Ativo: true})
	svc := NewAlertaService(produtos, nil, nil, "")

	alertas, err := svc.VerificarEstoqueBaixo(context.Background())
	require.NoError(t, err)
	require.Len(t, alertas, 2)
	porNome := make(map[string]string)
	for _, a := range alertas {
		porNome[a.Nome] = a.Severidade
	}
	assert.Equal(t, SeveridadeCritico, porNome["Meio"])
	assert.Equal(t, SeveridadeBaixo, porNome["Justo"])
}

func TestResumoAlertas(t *testing.T) {
	produtos := newMemProdutoRepo()
	seedEstoque(produtos)
	svc := NewAlertaService(produtos, nil, nil, "")

	resumo, err := svc.Resumo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, resumo.Total)
	assert.Equal(t, 1, resumo.Zerados)
	assert.Equal(t, 1, resumo.Criticos)
	assert.Equal(t, 1, resumo.Baixos)
}

func TestNotificarZerados(t *testing.T) {
	produtos := newMemProdutoRepo()
	seedEstoque(produtos)
	captura := &capturaEmail{}
	svc := NewAlertaService(produtos, nil, captura, "gerente@pontocerto.com.br")

	svc.NotificarZerados(context.Background())
	require.True(t, captura.enviado)
	assert.Equal(t, "gerente@pontocerto.com.br", captura.para)
	assert.Contains(t, captura.corpo, "Zerado")
	assert.NotContains(t, captura.corpo, "Crítico")
}

func TestNotificarZeradosSemOcorrencias(t *testing.T) {
	produtos := newMemProdutoRepo()
	produtos.seed(&model.Produto{CodigoBarras: "8", Nome: "Baixo", EstoqueAtual: 8, EstoqueMinimo: 10, Ativo: true})
	captura := &capturaEmail{}
	svc := NewAlertaService(produtos, nil, captura, "gerente@pontocerto.com.br")

	svc.NotificarZerados(context.Background())
	assert.False(t, captura.enviado)
}
