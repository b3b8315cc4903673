package model

import (
	"time"

	"github.com/google/uuid"
)

// MovimentoEstoque registers every stock change on a product.
// Created automatically on sale, estorno and manual adjustment.
type MovimentoEstoque struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo      string    `gorm:"not null"` // "venda" | "ajuste_manual" | "estorno"
	Delta     int       `gorm:"not null"` // positive = entrada, negative = saida
	EstoqueAnterior int `gorm:"not null"`
	EstoqueNovo     int `gorm:"not null"`
	Motivo          string
	ReferenciaID    *uuid.UUID `gorm:"type:uuid"` // venda_id when applicable
	CreatedAt       time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

// TableName overrides GORM's default pluralization.
func (MovimentoEstoque) TableName() string { return "movimentos_estoque" }
