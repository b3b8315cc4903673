package dto

import "github.com/shopspring/decimal"

// ProdutoFilter is bound from query string of GET /v1/produtos.
type ProdutoFilter struct {
	Barcode      string `form:"barcode"`
	Nome         string `form:"nome"`
	FornecedorID string `form:"fornecedor_id"`
	Ativo        string `form:"ativo"` // "false" = inativos, "all" = todos, default ativos
	Page         int    `form:"page,default=1"   validate:"min=1"`
	Limit        int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CriarProdutoRequest struct {
	CodigoBarras  string          `json:"codigo_barras"  validate:"required"`
	Nome          string          `json:"nome"           validate:"required"`
	Descricao     *string         `json:"descricao"`
	PrecoCusto    decimal.Decimal `json:"preco_custo"    validate:"min=0"`
	PrecoVenda    decimal.Decimal `json:"preco_venda"    validate:"required"`
	EstoqueAtual  int             `json:"estoque_atual"  validate:"min=0"`
	EstoqueMinimo int             `json:"estoque_minimo" validate:"min=0"`
	FornecedorID  *string         `json:"fornecedor_id"  validate:"omitempty,uuid"`
	Validade      *string         `json:"validade"` // dd/mm/yyyy
	Lote          *string         `json:"lote"`
}

type AtualizarProdutoRequest struct {
	Nome          string          `json:"nome"           validate:"required"`
	Descricao     *string         `json:"descricao"`
	PrecoCusto    decimal.Decimal `json:"preco_custo"    validate:"min=0"`
	PrecoVenda    decimal.Decimal `json:"preco_venda"    validate:"required"`
	EstoqueMinimo int             `json:"estoque_minimo" validate:"min=0"`
	FornecedorID  *string         `json:"fornecedor_id"  validate:"omitempty,uuid"`
}

type AjustarEstoqueRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo" validate:"required,min=3"`
}

type ProdutoResponse struct {
	ID            string          `json:"id"`
	CodigoBarras  string          `json:"codigo_barras"`
	Nome          string          `json:"nome"`
	Descricao     *string         `json:"descricao"`
	PrecoCusto    decimal.Decimal `json:"preco_custo"`
	PrecoVenda    decimal.Decimal `json:"preco_venda"`
	EstoqueAtual  int             `json:"estoque_atual"`
	EstoqueMinimo int             `json:"estoque_minimo"`
	FornecedorID  *string         `json:"fornecedor_id"`
	AutoCriado    bool            `json:"auto_criado"`
	Ativo         bool            `json:"ativo"`
}

type ProdutoListResponse struct {
	Data  []ProdutoResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// AlertaEstoqueResponse is one low-stock entry in the alert panel.
type AlertaEstoqueResponse struct {
	ProdutoID     string `json:"produto_id"`
	Nome          string `json:"nome"`
	CodigoBarras  string `json:"codigo_barras"`
	EstoqueAtual  int    `json:"estoque_atual"`
	EstoqueMinimo int    `json:"estoque_minimo"`
	Severidade    string `json:"severidade"` // zerado | critico | baixo
}

// ResumoAlertasResponse backs the dashboard badge.
type ResumoAlertasResponse struct {
	Zerados  int `json:"zerados"`
	Criticos int `json:"criticos"`
	Baixos   int `json:"baixos"`
	Total    int `json:"total"`
}
