package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produto is one catalog entry, keyed by barcode.
// EstoqueAtual never goes negative by business rule — the column itself has no
// CHECK constraint because sales decrement unconditionally (see VendaService).
// Products are never hard-deleted: deactivation zeroes nothing, UI "delete"
// only flips Ativo and zeroes stock.
type Produto struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoBarras string          `gorm:"uniqueIndex;not null"`
	Nome         string          `gorm:"index;not null"`
	Descricao    *string
	PrecoCusto   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecoVenda   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	EstoqueAtual int             `gorm:"not null;default:0"`
	// EstoqueMinimo feeds the low-stock alert recheck after each sale
	EstoqueMinimo int        `gorm:"not null;default:5"`
	FornecedorID  *uuid.UUID `gorm:"type:uuid;index"`
	// Validade/Lote: optional expiry metadata for perishables
	Validade *time.Time
	Lote     *string
	// AutoCriado marks products materialized on the fly when a sale referenced
	// an unknown barcode. Their stock was never decremented by the sale, so an
	// estorno must not increment it either.
	AutoCriado bool `gorm:"not null;default:false"`
	Ativo      bool `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Fornecedor *Fornecedor `gorm:"foreignKey:FornecedorID"`
}

func (Produto) TableName() string { return "produtos" }
