package dto

import "github.com/shopspring/decimal"

type CriarContaRequest struct {
	Descricao      string          `json:"descricao"       validate:"required,min=3"`
	Valor          decimal.Decimal `json:"valor"           validate:"required"`
	DataVencimento string          `json:"data_vencimento" validate:"required,len=10"` // dd/mm/yyyy
}

// LiquidarContaRequest settles a despesa or conta a receber, fully or in part.
// A partial amount splits the row: original closes, remainder opens anew.
type LiquidarContaRequest struct {
	Valor decimal.Decimal `json:"valor" validate:"required"`
}

type ContaResponse struct {
	ID             string          `json:"id"`
	Descricao      string          `json:"descricao"`
	Valor          decimal.Decimal `json:"valor"`
	DataVencimento string          `json:"data_vencimento"`
	Estado         string          `json:"estado"`
	Vencida        bool            `json:"vencida"`
	OrigemID       *string         `json:"origem_id,omitempty"`
}

// DashboardResponse aggregates the financial movements of a period.
type DashboardResponse struct {
	De       string          `json:"de"`
	Ate      string          `json:"ate"`
	Receitas decimal.Decimal `json:"receitas"`
	Despesas decimal.Decimal `json:"despesas"`
	Saldo    decimal.Decimal `json:"saldo"`
}
