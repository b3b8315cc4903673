package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/dto"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrContaNaoEncontrada = errors.New("conta não encontrada")
	ErrContaJaLiquidada   = errors.New("a conta já foi liquidada")
	ErrValorLiquidacao    = errors.New("valor de liquidação deve ser positivo e não exceder o valor da conta")
)

type FinanceiroService interface {
	CriarDespesa(ctx context.Context, req dto.CriarContaRequest) (*dto.ContaResponse, error)
	ListDespesas(ctx context.Context, estado string) ([]dto.ContaResponse, error)
	PagarDespesa(ctx context.Context, id uuid.UUID, req dto.LiquidarContaRequest) (*dto.ContaResponse, error)
	CriarConta(ctx context.Context, req dto.CriarContaRequest) (*dto.ContaResponse, error)
	ListContas(ctx context.Context, estado string) ([]dto.ContaResponse, error)
	ReceberConta(ctx context.Context, id uuid.UUID, req dto.LiquidarContaRequest) (*dto.ContaResponse, error)
	Dashboard(ctx context.Context, de, ate time.Time) (*dto.DashboardResponse, error)
}

type financeiroService struct {
	contaRepo repository.ContaRepository
	finRepo   repository.FinanceiroRepository
}

func NewFinanceiroService(contaRepo repository.ContaRepository, finRepo repository.FinanceiroRepository) FinanceiroService {
	return &financeiroService{contaRepo: contaRepo, finRepo: finRepo}
}

// ─── Despesas ────────────────────────────────────────────────────────────────

func (s *financeiroService) CriarDespesa(ctx context.Context, req dto.CriarContaRequest) (*dto.ContaResponse, error) {
	if err := validarVencimento(req.DataVencimento); err != nil {
		return nil, err
	}
	if !req.Valor.IsPositive() {
		return nil, ErrValorLiquidacao
	}
	d := &model.Despesa{
		Descricao:      req.Descricao,
		Valor:          req.Valor,
		DataVencimento: req.DataVencimento,
		Estado:         model.ContaPendente,
	}
	if err := s.contaRepo.CreateDespesa(ctx, d); err != nil {
		return nil, err
	}
	return despesaToResponse(d), nil
}

func (s *financeiroService) ListDespesas(ctx context.Context, estado string) ([]dto.ContaResponse, error) {
	despesas, err := s.contaRepo.ListDespesas(ctx, estado)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContaResponse, 0, len(despesas))
	for i := range despesas {
		out = append(out, *despesaToResponse(&despesas[i]))
	}
	return out, nil
}

// PagarDespesa settles a payable. Partial payment splits the row: the
// original closes at the paid amount and a new pending row carries the
// remainder, linked back via OrigemID. The DESPESA cash movement is recorded
// in the same transaction.
func (s *financeiroService) PagarDespesa(ctx context.Context, id uuid.UUID, req dto.LiquidarContaRequest) (*dto.ContaResponse, error) {
	d, err := s.contaRepo.FindDespesaByID(ctx, id)
	if err != nil {
		return nil, ErrContaNaoEncontrada
	}
	if d.Estado != model.ContaPendente {
		return nil, ErrContaJaLiquidada
	}
	if !req.Valor.IsPositive() || req.Valor.GreaterThan(d.Valor) {
		return nil, ErrValorLiquidacao
	}

	restante := d.Valor.Sub(req.Valor)
	agora := time.Now()

	txErr := runTx(ctx, s.contaRepo.DB(), func(tx *gorm.DB) error {
		d.Estado = model.ContaPaga
		d.Valor = req.Valor
		d.PagaEm = &agora
		if err := s.contaRepo.UpdateDespesaTx(orDB(tx, s.contaRepo.DB()), d); err != nil {
			return err
		}
		if restante.IsPositive() {
			resto := &model.Despesa{
				Descricao:      d.Descricao,
				Valor:          restante,
				DataVencimento: d.DataVencimento,
				Estado:         model.ContaPendente,
				OrigemID:       &d.ID,
			}
			if err := s.contaRepo.CreateDespesaTx(orDB(tx, s.contaRepo.DB()), resto); err != nil {
				return err
			}
		}
		mov := &model.MovimentoFinanceiro{
			Tipo:         model.MovimentoDespesa,
			Valor:        req.Valor,
			Descricao:    fmt.Sprintf("Pagamento de despesa: %s", d.Descricao),
			ReferenciaID: &d.ID,
		}
		return s.finRepo.CreateMovimentoTx(orDB(tx, s.contaRepo.DB()), mov)
	})
	if txErr != nil {
		return nil, txErr
	}
	return despesaToResponse(d), nil
}

// ─── Contas a receber ────────────────────────────────────────────────────────

func (s *financeiroService) CriarConta(ctx context.Context, req dto.CriarContaRequest) (*dto.ContaResponse, error) {
	if err := validarVencimento(req.DataVencimento); err != nil {
		return nil, err
	}
	if !req.Valor.IsPositive() {
		return nil, ErrValorLiquidacao
	}
	c := &model.ContaReceber{
		Descricao:      req.Descricao,
		Valor:          req.Valor,
		DataVencimento: req.DataVencimento,
		Estado:         model.ContaPendente,
	}
	if err := s.contaRepo.CreateConta(ctx, c); err != nil {
		return nil, err
	}
	return contaToResponse(c), nil
}

func (s *financeiroService) ListContas(ctx context.Context, estado string) ([]dto.ContaResponse, error) {
	contas, err := s.contaRepo.ListContas(ctx, estado)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContaResponse, 0, len(contas))
	for i := range contas {
		out = append(out, *contaToResponse(&contas[i]))
	}
	return out, nil
}

// ReceberConta mirrors PagarDespesa with a RECEITA movement.
func (s *financeiroService) ReceberConta(ctx context.Context, id uuid.UUID, req dto.LiquidarContaRequest) (*dto.ContaResponse, error) {
	c, err := s.contaRepo.FindContaByID(ctx, id)
	if err != nil {
		return nil, ErrContaNaoEncontrada
	}
	if c.Estado != model.ContaPendente {
		return nil, ErrContaJaLiquidada
	}
	if !req.Valor.IsPositive() || req.Valor.GreaterThan(c.Valor) {
		return nil, ErrValorLiquidacao
	}

	restante := c.Valor.Sub(req.Valor)
	agora := time.Now()

	txErr := runTx(ctx, s.contaRepo.DB(), func(tx *gorm.DB) error {
		c.Estado = model.ContaRecebida
		c.Valor = req.Valor
		c.RecebidaEm = &agora
		if err := s.contaRepo.UpdateContaTx(orDB(tx, s.contaRepo.DB()), c); err != nil {
			return err
		}
		if restante.IsPositive() {
			resto := &model.ContaReceber{
				Descricao:      c.Descricao,
				Valor:          restante,
				DataVencimento: c.DataVencimento,
				Estado:         model.ContaPendente,
				OrigemID:       &c.ID,
			}
			if err := s.contaRepo.CreateContaTx(orDB(tx, s.contaRepo.DB()), resto); err != nil {
				return err
			}
		}
		mov := &model.MovimentoFinanceiro{
			Tipo:         model.MovimentoReceita,
			Valor:        req.Valor,
			Descricao:    fmt.Sprintf("Recebimento de conta: %s", c.Descricao),
			ReferenciaID: &c.ID,
		}
		return s.finRepo.CreateMovimentoTx(orDB(tx, s.contaRepo.DB()), mov)
	})
	if txErr != nil {
		return nil, txErr
	}
	return contaToResponse(c), nil
}

// ─── Dashboard ───────────────────────────────────────────────────────────────

func (s *financeiroService) Dashboard(ctx context.Context, de, ate time.Time) (*dto.DashboardResponse, error) {
	somas, err := s.finRepo.SumPorTipo(ctx, de, ate)
	if err != nil {
		return nil, err
	}
	receitas := somas[model.MovimentoReceita]
	despesas := somas[model.MovimentoDespesa]
	return &dto.DashboardResponse{
		De:       de.Format("02/01/2006"),
		Ate:      ate.Format("02/01/2006"),
		Receitas: receitas,
		Despesas: despesas,
		Saldo:    receitas.Sub(despesas),
	}, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func validarVencimento(data string) error {
	if _, err := time.Parse(model.DataVencimentoLayout, data); err != nil {
		return ErrDataInvalida
	}
	return nil
}

// vencida: due date strictly before today and still pending.
func vencida(dataVencimento, estado string) bool {
	if estado != model.ContaPendente {
		return false
	}
	venc, err := time.Parse(model.DataVencimentoLayout, dataVencimento)
	if err != nil {
		return false
	}
	hoje, _ := time.Parse(model.DataVencimentoLayout, time.Now().Format(model.DataVencimentoLayout))
	return venc.Before(hoje)
}

func despesaToResponse(d *model.Despesa) *dto.ContaResponse {
	resp := &dto.ContaResponse{
		ID:             d.ID.String(),
		Descricao:      d.Descricao,
		Valor:          d.Valor,
		DataVencimento: d.DataVencimento,
		Estado:         d.Estado,
		Vencida:        vencida(d.DataVencimento, d.Estado),
	}
	if d.OrigemID != nil {
		o := d.OrigemID.String()
		resp.OrigemID = &o
	}
	return resp
}

func contaToResponse(c *model.ContaReceber) *dto.ContaResponse {
	resp := &dto.ContaResponse{
		ID:             c.ID.String(),
		Descricao:      c.Descricao,
		Valor:          c.Valor,
		DataVencimento: c.DataVencimento,
		Estado:         c.Estado,
		Vencida:        vencida(c.DataVencimento, c.Estado),
	}
	if c.OrigemID != nil {
		o := c.OrigemID.String()
		resp.OrigemID = &o
	}
	return resp
}
