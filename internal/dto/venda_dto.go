package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VendaFilter is bound from query string of GET /v1/vendas.
type VendaFilter struct {
	Data   string `form:"data"`                     // YYYY-MM-DD; empty = today
	Estado string `form:"estado,default=CONCLUIDA"` // CONCLUIDA | ESTORNADA | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ItemCarrinhoRequest is one cart line as the checkout UI assembled it.
// PrecoUnitario is trusted as given — it is NOT re-read from the catalog, so a
// price change mid-cart never retroactively alters an in-progress sale.
type ItemCarrinhoRequest struct {
	CodigoBarras  string          `json:"codigo_barras"  validate:"required"`
	Nome          string          `json:"nome"           validate:"required"`
	Quantidade    int             `json:"quantidade"     validate:"required,min=1"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario" validate:"required"`
}

type FinalizarVendaRequest struct {
	Itens          []ItemCarrinhoRequest `json:"itens"           validate:"dive"`
	FormaPagamento string                `json:"forma_pagamento" validate:"required,oneof=dinheiro debito credito pix"`
	// ValorRecebido is required for dinheiro; defaulted to the total otherwise
	ValorRecebido decimal.Decimal `json:"valor_recebido"`
	// PagamentosParciais: PIX amounts already settled against this cart; the
	// BR Code embeds only the outstanding remainder
	PagamentosParciais []decimal.Decimal `json:"pagamentos_parciais" validate:"omitempty,dive"`
}

type EstornarVendaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVendaResponse struct {
	ID            string          `json:"id"`
	Produto       string          `json:"produto"`
	ProdutoID     *string         `json:"produto_id"`
	Quantidade    int             `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

type VendaResponse struct {
	ID             string              `json:"id"`
	Itens          []ItemVendaResponse `json:"itens"`
	Total          decimal.Decimal     `json:"total"`
	FormaPagamento string              `json:"forma_pagamento"`
	ValorRecebido  decimal.Decimal     `json:"valor_recebido"`
	Troco          decimal.Decimal     `json:"troco"`
	Estado         string              `json:"estado"`
	TransacaoID    *string             `json:"transacao_id,omitempty"`
	// Pix holds the BR Code data when forma_pagamento = pix
	Pix       *PixCobrancaResponse `json:"pix,omitempty"`
	CreatedAt string               `json:"created_at"`
}

type VendaListResponse struct {
	Data  []VendaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// EstornoResponse reports the sale state after a full or partial estorno.
type EstornoResponse struct {
	VendaID  string          `json:"venda_id"`
	Estado   string          `json:"estado"`
	Total    decimal.Decimal `json:"total"`
	Mensagem string          `json:"mensagem"`
}
