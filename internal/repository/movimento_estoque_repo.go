package repository

import (
	"context"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MovimentoEstoqueRepository interface {
	CreateTx(tx *gorm.DB, m *model.MovimentoEstoque) error
	Create(ctx context.Context, m *model.MovimentoEstoque) error
	ListByProduto(ctx context.Context, produtoID uuid.UUID, limit int) ([]model.MovimentoEstoque, error)
}

type movimentoEstoqueRepo struct{ db *gorm.DB }

func NewMovimentoEstoqueRepository(db *gorm.DB) MovimentoEstoqueRepository {
	return &movimentoEstoqueRepo{db: db}
}

func (r *movimentoEstoqueRepo) CreateTx(tx *gorm.DB, m *model.MovimentoEstoque) error {
	return tx.Create(m).Error
}

func (r *movimentoEstoqueRepo) Create(ctx context.Context, m *model.MovimentoEstoque) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *movimentoEstoqueRepo) ListByProduto(ctx context.Context, produtoID uuid.UUID, limit int) ([]model.MovimentoEstoque, error) {
	if limit <= 0 {
		limit = 100
	}
	var movs []model.MovimentoEstoque
	err := r.db.WithContext(ctx).Where("produto_id = ?", produtoID).
		Order("created_at DESC").Limit(limit).Find(&movs).Error
	return movs, err
}
