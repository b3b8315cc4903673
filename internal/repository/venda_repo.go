package repository

import (
	"context"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/dto"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VendaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venda) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error)
	List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error)

	// Transactional mutations used by the estorno engine
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	UpdateTotalTx(tx *gorm.DB, id uuid.UUID, total decimal.Decimal) error
	DeleteItemTx(tx *gorm.DB, itemID uuid.UUID) error
	CountItensTx(tx *gorm.DB, vendaID uuid.UUID) (int64, error)

	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type vendaRepo struct{ db *gorm.DB }

func NewVendaRepository(db *gorm.DB) VendaRepository { return &vendaRepo{db: db} }

func (r *vendaRepo) DB() *gorm.DB { return r.db }

func (r *vendaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venda) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *vendaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error) {
	var v model.Venda
	err := r.db.WithContext(ctx).Preload("Itens.Produto").First(&v, id).Error
	return &v, err
}

func (r *vendaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Venda{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *vendaRepo) UpdateTotalTx(tx *gorm.DB, id uuid.UUID, total decimal.Decimal) error {
	return tx.Model(&model.Venda{}).Where("id = ?", id).Update("total", total).Error
}

func (r *vendaRepo) DeleteItemTx(tx *gorm.DB, itemID uuid.UUID) error {
	return tx.Delete(&model.ItemVenda{}, itemID).Error
}

func (r *vendaRepo) CountItensTx(tx *gorm.DB, vendaID uuid.UUID) (int64, error) {
	var n int64
	err := tx.Model(&model.ItemVenda{}).Where("venda_id = ?", vendaID).Count(&n).Error
	return n, err
}

func (r *vendaRepo) List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error) {
	var vendas []model.Venda
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venda{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Data != "" {
		q = q.Where("DATE(created_at) = ?", filter.Data)
	} else {
		// Default: today
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Itens.Produto").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&vendas).Error

	return vendas, total, err
}
