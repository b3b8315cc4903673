package repository

import (
	"context"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContaRepository covers despesas (payables) and contas a receber
// (receivables). Settlement is split-then-close, so both Create and Update
// run inside the service-owned transaction when a partial payment splits a
// row in two.
type ContaRepository interface {
	CreateDespesa(ctx context.Context, d *model.Despesa) error
	FindDespesaByID(ctx context.Context, id uuid.UUID) (*model.Despesa, error)
	ListDespesas(ctx context.Context, estado string) ([]model.Despesa, error)
	CreateDespesaTx(tx *gorm.DB, d *model.Despesa) error
	UpdateDespesaTx(tx *gorm.DB, d *model.Despesa) error

	CreateConta(ctx context.Context, c *model.ContaReceber) error
	FindContaByID(ctx context.Context, id uuid.UUID) (*model.ContaReceber, error)
	ListContas(ctx context.Context, estado string) ([]model.ContaReceber, error)
	CreateContaTx(tx *gorm.DB, c *model.ContaReceber) error
	UpdateContaTx(tx *gorm.DB, c *model.ContaReceber) error

	DB() *gorm.DB
}

type contaRepo struct{ db *gorm.DB }

func NewContaRepository(db *gorm.DB) ContaRepository { return &contaRepo{db: db} }

func (r *contaRepo) DB() *gorm.DB { return r.db }

func (r *contaRepo) CreateDespesa(ctx context.Context, d *model.Despesa) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *contaRepo) FindDespesaByID(ctx context.Context, id uuid.UUID) (*model.Despesa, error) {
	var d model.Despesa
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

func (r *contaRepo) ListDespesas(ctx context.Context, estado string) ([]model.Despesa, error) {
	var despesas []model.Despesa
	q := r.db.WithContext(ctx).Model(&model.Despesa{})
	if estado != "" && estado != "all" {
		q = q.Where("estado = ?", estado)
	}
	err := q.Order("created_at DESC").Find(&despesas).Error
	return despesas, err
}

func (r *contaRepo) CreateDespesaTx(tx *gorm.DB, d *model.Despesa) error {
	return tx.Create(d).Error
}

func (r *contaRepo) UpdateDespesaTx(tx *gorm.DB, d *model.Despesa) error {
	return tx.Save(d).Error
}

func (r *contaRepo) CreateConta(ctx context.Context, c *model.ContaReceber) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *contaRepo) FindContaByID(ctx context.Context, id uuid.UUID) (*model.ContaReceber, error) {
	var c model.ContaReceber
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *contaRepo) ListContas(ctx context.Context, estado string) ([]model.ContaReceber, error) {
	var contas []model.ContaReceber
	q := r.db.WithContext(ctx).Model(&model.ContaReceber{})
	if estado != "" && estado != "all" {
		q = q.Where("estado = ?", estado)
	}
	err := q.Order("created_at DESC").Find(&contas).Error
	return contas, err
}

func (r *contaRepo) CreateContaTx(tx *gorm.DB, c *model.ContaReceber) error {
	return tx.Create(c).Error
}

func (r *contaRepo) UpdateContaTx(tx *gorm.DB, c *model.ContaReceber) error {
	return tx.Save(c).Error
}
