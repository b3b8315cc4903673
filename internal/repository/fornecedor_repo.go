package repository

import (
	"context"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FornecedorRepository interface {
	Create(ctx context.Context, f *model.Fornecedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Fornecedor, error)
	FindByCNPJ(ctx context.Context, cnpj string) (*model.Fornecedor, error)
	List(ctx context.Context) ([]model.Fornecedor, error)
	Update(ctx context.Context, f *model.Fornecedor) error
	Desativar(ctx context.Context, id uuid.UUID) error
}

type fornecedorRepo struct{ db *gorm.DB }

func NewFornecedorRepository(db *gorm.DB) FornecedorRepository { return &fornecedorRepo{db: db} }

func (r *fornecedorRepo) Create(ctx context.Context, f *model.Fornecedor) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fornecedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Fornecedor, error) {
	var f model.Fornecedor
	err := r.db.WithContext(ctx).First(&f, id).Error
	return &f, err
}

func (r *fornecedorRepo) FindByCNPJ(ctx context.Context, cnpj string) (*model.Fornecedor, error) {
	var f model.Fornecedor
	err := r.db.WithContext(ctx).Where("cnpj = ?", cnpj).First(&f).Error
	return &f, err
}

func (r *fornecedorRepo) List(ctx context.Context) ([]model.Fornecedor, error) {
	var fornecedores []model.Fornecedor
	err := r.db.WithContext(ctx).Where("ativo = true").Order("razao_social ASC").Find(&fornecedores).Error
	return fornecedores, err
}

func (r *fornecedorRepo) Update(ctx context.Context, f *model.Fornecedor) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *fornecedorRepo) Desativar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Fornecedor{}).Where("id = ?", id).Update("ativo", false).Error
}
