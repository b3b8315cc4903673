package repository

import (
	"context"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaixaRepository interface {
	CreateSessao(ctx context.Context, s *model.SessaoCaixa) error
	FindSessaoByID(ctx context.Context, id uuid.UUID) (*model.SessaoCaixa, error)
	// FindSessaoAberta returns the first open session for a user, or any open
	// session when usuarioID is nil (shared-register fallback).
	FindSessaoAberta(ctx context.Context, usuarioID *uuid.UUID) (*model.SessaoCaixa, error)
	UpdateSessao(ctx context.Context, s *model.SessaoCaixa) error
	ListSessoes(ctx context.Context, page, limit int) ([]model.SessaoCaixa, int64, error)
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) CreateSessao(ctx context.Context, s *model.SessaoCaixa) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *caixaRepo) FindSessaoByID(ctx context.Context, id uuid.UUID) (*model.SessaoCaixa, error) {
	var s model.SessaoCaixa
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *caixaRepo) FindSessaoAberta(ctx context.Context, usuarioID *uuid.UUID) (*model.SessaoCaixa, error) {
	var s model.SessaoCaixa
	q := r.db.WithContext(ctx).Where("estado = ?", model.SessaoAberta)
	if usuarioID != nil {
		q = q.Where("usuario_id = ?", *usuarioID)
	}
	err := q.Order("aberta_em ASC").First(&s).Error
	return &s, err
}

func (r *caixaRepo) UpdateSessao(ctx context.Context, s *model.SessaoCaixa) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *caixaRepo) ListSessoes(ctx context.Context, page, limit int) ([]model.SessaoCaixa, int64, error) {
	var sessoes []model.SessaoCaixa
	var total int64
	q := r.db.WithContext(ctx).Model(&model.SessaoCaixa{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("aberta_em DESC").Offset((page - 1) * limit).Limit(limit).Find(&sessoes).Error
	return sessoes, total, err
}
