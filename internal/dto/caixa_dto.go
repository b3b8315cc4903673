package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCaixaRequest struct {
	SaldoInicial decimal.Decimal `json:"saldo_inicial" validate:"min=0"`
}

type FecharCaixaRequest struct {
	SessaoID string `json:"sessao_id" validate:"required,uuid"`
	// SaldoInformado is the blind count entered by the manager
	SaldoInformado decimal.Decimal `json:"saldo_informado" validate:"min=0"`
	Observacoes    *string         `json:"observacoes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SessaoCaixaResponse struct {
	ID                  string           `json:"id"`
	UsuarioID           string           `json:"usuario_id"`
	SaldoInicial        decimal.Decimal  `json:"saldo_inicial"`
	SaldoFinalSistema   *decimal.Decimal `json:"saldo_final_sistema"`
	SaldoFinalInformado *decimal.Decimal `json:"saldo_final_informado"`
	Divergencia         *decimal.Decimal `json:"divergencia"`
	Estado              string           `json:"estado"`
	Observacoes         *string          `json:"observacoes"`
	AbertaEm            string           `json:"aberta_em"`
	FechadaEm           *string          `json:"fechada_em"`
}

type SessaoListResponse struct {
	Data  []SessaoCaixaResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
