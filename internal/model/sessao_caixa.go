package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessaoCaixa statuses.
const (
	SessaoAberta  = "aberta"
	SessaoFechada = "fechada"
)

// SessaoCaixa is one bounded period of cash drawer operation for a user.
// At most one session should be "aberta" per scope (user, or globally when the
// register is shared) — the check lives in the callers of CaixaService.Abrir,
// not in the store.
type SessaoCaixa struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaldoInicial decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// SaldoFinalSistema is computed on close: saldo_inicial + movimentos do dia.
	// SaldoFinalInformado is what the manager counted in the drawer.
	SaldoFinalSistema   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	SaldoFinalInformado *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Estado              string           `gorm:"type:varchar(20);not null;default:'aberta'"`
	Observacoes         *string
	AbertaEm            time.Time
	FechadaEm           *time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

func (SessaoCaixa) TableName() string { return "sessoes_caixa" }

// Divergencia is informado - sistema. Derived, never stored.
func (s *SessaoCaixa) Divergencia() decimal.Decimal {
	if s.SaldoFinalSistema == nil || s.SaldoFinalInformado == nil {
		return decimal.Zero
	}
	return s.SaldoFinalInformado.Sub(*s.SaldoFinalSistema)
}
