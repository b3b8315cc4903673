package repository

import (
	"context"
	"time"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FinanceiroRepository interface {
	CreateMovimento(ctx context.Context, m *model.MovimentoFinanceiro) error
	CreateMovimentoTx(tx *gorm.DB, m *model.MovimentoFinanceiro) error
	// ExisteFechamentoHoje backs the "register already closed today" guard.
	ExisteFechamentoHoje(ctx context.Context) (bool, error)
	ListMovimentos(ctx context.Context, de, ate time.Time) ([]model.MovimentoFinanceiro, error)
	// SumPorTipo aggregates movement values by tipo over a period (dashboard).
	SumPorTipo(ctx context.Context, de, ate time.Time) (map[string]decimal.Decimal, error)
}

type financeiroRepo struct{ db *gorm.DB }

func NewFinanceiroRepository(db *gorm.DB) FinanceiroRepository { return &financeiroRepo{db: db} }

func (r *financeiroRepo) CreateMovimento(ctx context.Context, m *model.MovimentoFinanceiro) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *financeiroRepo) CreateMovimentoTx(tx *gorm.DB, m *model.MovimentoFinanceiro) error {
	return tx.Create(m).Error
}

func (r *financeiroRepo) ExisteFechamentoHoje(ctx context.Context) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.MovimentoFinanceiro{}).
		Where("tipo = ? AND DATE(created_at) = CURRENT_DATE", model.MovimentoFechamento).
		Count(&n).Error
	return n > 0, err
}

func (r *financeiroRepo) ListMovimentos(ctx context.Context, de, ate time.Time) ([]model.MovimentoFinanceiro, error) {
	var movs []model.MovimentoFinanceiro
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", de, ate).
		Order("created_at ASC").Find(&movs).Error
	return movs, err
}

func (r *financeiroRepo) SumPorTipo(ctx context.Context, de, ate time.Time) (map[string]decimal.Decimal, error) {
	rows := []struct {
		Tipo  string
		Valor decimal.Decimal
	}{}
	err := r.db.WithContext(ctx).Model(&model.MovimentoFinanceiro{}).
		Select("tipo, COALESCE(SUM(valor), 0) AS valor").
		Where("created_at >= ? AND created_at < ?", de, ate).
		Group("tipo").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sums := map[string]decimal.Decimal{
		model.MovimentoReceita:    decimal.Zero,
		model.MovimentoDespesa:    decimal.Zero,
		model.MovimentoFechamento: decimal.Zero,
	}
	for _, row := range rows {
		sums[row.Tipo] = row.Valor
	}
	return sums, nil
}
