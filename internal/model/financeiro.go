package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovimentoFinanceiro types.
const (
	MovimentoReceita    = "RECEITA"
	MovimentoDespesa    = "DESPESA"
	MovimentoFechamento = "FECHAMENTO_CAIXA"
)

// MovimentoFinanceiro is an append-only ledger entry. Rows are NEVER modified
// or deleted — estornos create inverse entries. The dashboard aggregates over
// this table, and the sale finalization guard queries it to detect whether the
// register was already closed today.
type MovimentoFinanceiro struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo      string          `gorm:"type:varchar(20);not null;index"`
	Valor     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descricao string          `gorm:"not null"`
	// ReferenciaID links to the originating Venda or SessaoCaixa
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time  `gorm:"index"`
}

func (MovimentoFinanceiro) TableName() string { return "movimentos_financeiros" }

// Despesa / ContaReceber statuses.
const (
	ContaPendente = "pendente"
	ContaPaga     = "paga"
	ContaRecebida = "recebida"
)

// DataVencimentoLayout: due dates are stored as dd/mm/yyyy strings, the same
// legacy format the schedule uses.
const DataVencimentoLayout = "02/01/2006"

// Despesa is a payable. Partial settlement is split-then-close: the original
// row is marked paga for the settled amount and a NEW row is created for the
// remaining balance — there is no running-balance column.
type Despesa struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Descricao      string          `gorm:"not null"`
	Valor          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DataVencimento string          `gorm:"type:varchar(10);not null"` // dd/mm/yyyy
	Estado         string          `gorm:"type:varchar(20);not null;default:'pendente'"`
	PagaEm         *time.Time
	// OrigemID points at the despesa this row was split from, when partial
	OrigemID  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Despesa) TableName() string { return "despesas" }

// ContaReceber is a receivable, settled with the same split-then-close rule.
type ContaReceber struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Descricao      string          `gorm:"not null"`
	Valor          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DataVencimento string          `gorm:"type:varchar(10);not null"` // dd/mm/yyyy
	Estado         string          `gorm:"type:varchar(20);not null;default:'pendente'"`
	RecebidaEm     *time.Time
	OrigemID       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ContaReceber) TableName() string { return "contas_receber" }
