package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venda statuses. A sale is never hard-deleted — a full estorno transitions
// the row to ESTORNADA.
const (
	VendaConcluida = "CONCLUIDA"
	VendaEstornada = "ESTORNADA"
)

// Payment methods accepted at the PDV.
const (
	PagamentoDinheiro = "dinheiro"
	PagamentoDebito   = "debito"
	PagamentoCredito  = "credito"
	PagamentoPix      = "pix"
)

// Venda is one committed checkout. Total is the sum of item subtotals at
// commit time and is deducted from during partial estornos.
type Venda struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FormaPagamento string          `gorm:"type:varchar(20);not null"`
	ValorRecebido  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado         string          `gorm:"type:varchar(20);not null;default:'CONCLUIDA'"`
	// TransacaoID/StatusPagamento come from the TEF terminal or the PIX flow
	TransacaoID     *string `gorm:"type:varchar(64)"`
	StatusPagamento *string `gorm:"type:varchar(20)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Itens   []ItemVenda `gorm:"foreignKey:VendaID"`
	Usuario *Usuario    `gorm:"foreignKey:UsuarioID"`
}

func (Venda) TableName() string { return "vendas" }

// ItemVenda is one cart line frozen at commit time. PrecoUnitario is the
// price the cart carried — it is never re-read from Produto, not even during
// an estorno. ProdutoID goes nil if the product is purged post-sale.
type ItemVenda struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendaID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProdutoID     *uuid.UUID      `gorm:"type:uuid;index"`
	Quantidade    int             `gorm:"not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt     time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (ItemVenda) TableName() string { return "itens_venda" }

// Subtotal returns preco_unitario * quantidade.
func (i ItemVenda) Subtotal() decimal.Decimal {
	return i.PrecoUnitario.Mul(decimal.NewFromInt(int64(i.Quantidade)))
}
