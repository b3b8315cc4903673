package repository

import (
	"context"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/dto"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProdutoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Produto, error)
	List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, int64, error)
	Update(ctx context.Context, p *model.Produto) error
	Desativar(ctx context.Context, id uuid.UUID) error

	// ListEstoqueBaixo returns active products at or below their minimum.
	ListEstoqueBaixo(ctx context.Context) ([]model.Produto, error)

	// Used inside transactions — callers must pass the tx instance
	CreateTx(tx *gorm.DB, p *model.Produto) error
	FindByBarcodeTx(tx *gorm.DB, barcode string) (*model.Produto, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Produto, error)
	UpdateEstoqueTx(tx *gorm.DB, id uuid.UUID, delta int) error

	// AjustarEstoque applies a manual delta outside a sale transaction.
	AjustarEstoque(ctx context.Context, id uuid.UUID, delta int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *produtoRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).Where("codigo_barras = ? AND ativo = true", barcode).First(&p).Error
	return &p, err
}

func (r *produtoRepo) List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, int64, error) {
	var produtos []model.Produto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Produto{})

	switch filter.Ativo {
	case "false":
		q = q.Where("ativo = false")
	case "all":
		// no filter
	default:
		q = q.Where("ativo = true")
	}

	if filter.Barcode != "" {
		q = q.Where("codigo_barras = ?", filter.Barcode)
	}
	if filter.Nome != "" {
		q = q.Where("nome ILIKE ?", "%"+filter.Nome+"%")
	}
	if filter.FornecedorID != "" {
		q = q.Where("fornecedor_id = ?", filter.FornecedorID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nome ASC").Limit(filter.Limit).Offset(offset).Find(&produtos).Error
	return produtos, total, err
}

func (r *produtoRepo) Update(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *produtoRepo) Desativar(ctx context.Context, id uuid.UUID) error {
	// "delete" at the PDV only deactivates and zeroes stock — the row survives
	// so historical sale items keep their reference
	return r.db.WithContext(ctx).Model(&model.Produto{}).Where("id = ?", id).
		Updates(map[string]interface{}{"ativo": false, "estoque_atual": 0}).Error
}

func (r *produtoRepo) ListEstoqueBaixo(ctx context.Context) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).
		Where("ativo = true AND estoque_atual <= estoque_minimo").
		Order("estoque_atual ASC").Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) CreateTx(tx *gorm.DB, p *model.Produto) error {
	return tx.Create(p).Error
}

func (r *produtoRepo) FindByBarcodeTx(tx *gorm.DB, barcode string) (*model.Produto, error) {
	var p model.Produto
	err := tx.Where("codigo_barras = ?", barcode).First(&p).Error
	return &p, err
}

func (r *produtoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := tx.First(&p, id).Error
	return &p, err
}

func (r *produtoRepo) UpdateEstoqueTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Produto{}).Where("id = ?", id).
		Update("estoque_atual", gorm.Expr("estoque_atual + ?", delta)).Error
}

func (r *produtoRepo) AjustarEstoque(ctx context.Context, id uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).Model(&model.Produto{}).
		Where("id = ? AND ativo = true", id).
		Update("estoque_atual", gorm.Expr("estoque_atual + ?", delta)).Error
}

func (r *produtoRepo) DB() *gorm.DB { return r.db }
