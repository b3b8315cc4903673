package repository

import (
	"context"
	"errors"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"

	"gorm.io/gorm"
)

type AgendaRepository interface {
	// FindByData looks up the schedule row for a dd/mm/yyyy key.
	FindByData(ctx context.Context, data string) (*model.AgendaCaixa, error)
	Create(ctx context.Context, a *model.AgendaCaixa) error
	Update(ctx context.Context, a *model.AgendaCaixa) error
}

// ErrAgendaInexistente marks a missing schedule for the requested date.
var ErrAgendaInexistente = errors.New("agenda não encontrada")

type agendaRepo struct{ db *gorm.DB }

func NewAgendaRepository(db *gorm.DB) AgendaRepository { return &agendaRepo{db: db} }

func (r *agendaRepo) FindByData(ctx context.Context, data string) (*model.AgendaCaixa, error) {
	var a model.AgendaCaixa
	err := r.db.WithContext(ctx).Where("data = ?", data).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAgendaInexistente
	}
	return &a, err
}

func (r *agendaRepo) Create(ctx context.Context, a *model.AgendaCaixa) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *agendaRepo) Update(ctx context.Context, a *model.AgendaCaixa) error {
	return r.db.WithContext(ctx).Save(a).Error
}
