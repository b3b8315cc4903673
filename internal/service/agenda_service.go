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
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var ErrDataInvalida = errors.New("data inválida, use o formato dd/mm/aaaa")

// Ações devolvidas pelo avaliador de agenda.
const (
	AcaoNenhuma          = "nenhuma"
	AcaoFechamentoDevido = "fechamento"
	AcaoReaberturaDevida = "reabertura"
)

type AgendaService interface {
	CriarOuAtualizar(ctx context.Context, usuarioID uuid.UUID, req dto.CriarAgendaRequest) (*dto.AgendaResponse, error)
	BuscarPorData(ctx context.Context, data string) (*dto.AgendaResponse, error)
	Override(ctx context.Context, req dto.OverrideAgendaRequest) (*dto.AgendaResponse, error)
	// VerificarEAplicar avalia a agenda de hoje contra o relógio e executa
	// a ação devida, devolvendo qual foi. Chamado pelo cron a cada ciclo.
	VerificarEAplicar(ctx context.Context, agora time.Time) (string, error)
}

type agendaService struct {
	repo            repository.AgendaRepository
	caixaRepo       repository.CaixaRepository
	finRepo         repository.FinanceiroRepository
	saldoReabertura decimal.Decimal
}

func NewAgendaService(
	repo repository.AgendaRepository,
	caixaRepo repository.CaixaRepository,
	finRepo repository.FinanceiroRepository,
	saldoReabertura decimal.Decimal,
) AgendaService {
	return &agendaService{
		repo:            repo,
		caixaRepo:       caixaRepo,
		finRepo:         finRepo,
		saldoReabertura: saldoReabertura,
	}
}

func (s *agendaService) CriarOuAtualizar(ctx context.Context, usuarioID uuid.UUID, req dto.CriarAgendaRequest) (*dto.AgendaResponse, error) {
	if _, err := time.Parse(model.DataAgendaLayout, req.Data); err != nil {
		return nil, ErrDataInvalida
	}
	if err := validarHora(req.HoraFechamento); err != nil {
		return nil, err
	}
	if err := validarHora(req.HoraReabertura); err != nil {
		return nil, err
	}

	existente, err := s.repo.FindByData(ctx, req.Data)
	if err != nil && !errors.Is(err, repository.ErrAgendaInexistente) {
		return nil, err
	}

	if existente != nil {
		// Editing the times re-arms the day: the done flags reset so the new
		// times get honored even if the old ones already fired.
		existente.HoraFechamento = req.HoraFechamento
		existente.HoraReabertura = req.HoraReabertura
		existente.Observacoes = req.Observacoes
		existente.JaFechouHoje = false
		existente.JaReabriuHoje = false
		if err := s.repo.Update(ctx, existente); err != nil {
			return nil, err
		}
		return agendaToResponse(existente), nil
	}

	agenda := &model.AgendaCaixa{
		Data:           req.Data,
		HoraFechamento: req.HoraFechamento,
		HoraReabertura: req.HoraReabertura,
		Estado:         model.AgendaAtiva,
		CriadoPor:      usuarioID,
		Observacoes:    req.Observacoes,
	}
	if err := s.repo.Create(ctx, agenda); err != nil {
		return nil, err
	}
	return agendaToResponse(agenda), nil
}

func (s *agendaService) BuscarPorData(ctx context.Context, data string) (*dto.AgendaResponse, error) {
	agenda, err := s.repo.FindByData(ctx, data)
	if err != nil {
		return nil, err
	}
	return agendaToResponse(agenda), nil
}

func (s *agendaService) Override(ctx context.Context, req dto.OverrideAgendaRequest) (*dto.AgendaResponse, error) {
	agenda, err := s.repo.FindByData(ctx, req.Data)
	if err != nil {
		return nil, err
	}
	agenda.Estado = req.Estado
	agenda.ContadorOverride++
	if err := s.repo.Update(ctx, agenda); err != nil {
		return nil, err
	}
	log.Info().
		Str("data", agenda.Data).
		Str("estado", req.Estado).
		Int("overrides", agenda.ContadorOverride).
		Msg("agenda sobrescrita manualmente")
	return agendaToResponse(agenda), nil
}

// VerificarEAplicar is the schedule evaluator. For today's schedule it fires
// at most one close and at most one reopen per day, in that order; the
// JaFechouHoje/JaReabriuHoje flags make each transition idempotent across
// polling cycles and restarts. Paused and cancelled schedules are inert.
func (s *agendaService) VerificarEAplicar(ctx context.Context, agora time.Time) (string, error) {
	agenda, err := s.repo.FindByData(ctx, agora.Format(model.DataAgendaLayout))
	if err != nil {
		if errors.Is(err, repository.ErrAgendaInexistente) {
			return AcaoNenhuma, nil
		}
		return AcaoNenhuma, err
	}
	if agenda.Estado != model.AgendaAtiva {
		return AcaoNenhuma, nil
	}

	horaAtual := agora.Format("15:04")

	if !agenda.JaFechouHoje && horaAtual >= agenda.HoraFechamento {
		if err := s.fecharAutomatico(ctx, agenda); err != nil {
			return AcaoNenhuma, err
		}
		return AcaoFechamentoDevido, nil
	}

	if agenda.JaFechouHoje && !agenda.JaReabriuHoje && horaAtual >= agenda.HoraReabertura {
		if err := s.reabrirAutomatico(ctx, agenda); err != nil {
			return AcaoNenhuma, err
		}
		return AcaoReaberturaDevida, nil
	}

	return AcaoNenhuma, nil
}

func (s *agendaService) fecharAutomatico(ctx context.Context, agenda *model.AgendaCaixa) error {
	sessao, err := s.caixaRepo.FindSessaoAberta(ctx, nil)
	if err == nil && sessao != nil {
		agora := time.Now()
		saldo := sessao.SaldoInicial
		sessao.Estado = model.SessaoFechada
		sessao.SaldoFinalSistema = &saldo
		sessao.FechadaEm = &agora
		if err := s.caixaRepo.UpdateSessao(ctx, sessao); err != nil {
			return err
		}
	}

	mov := &model.MovimentoFinanceiro{
		Tipo:      model.MovimentoFechamento,
		Valor:     decimal.Zero,
		Descricao: fmt.Sprintf("Fechamento automático (agenda %s)", agenda.Data),
	}
	if err := s.finRepo.CreateMovimento(ctx, mov); err != nil {
		return err
	}

	agenda.JaFechouHoje = true
	if err := s.repo.Update(ctx, agenda); err != nil {
		return err
	}
	log.Info().Str("data", agenda.Data).Str("hora", agenda.HoraFechamento).Msg("caixa fechado pela agenda")
	return nil
}

func (s *agendaService) reabrirAutomatico(ctx context.Context, agenda *model.AgendaCaixa) error {
	sessao := &model.SessaoCaixa{
		UsuarioID:    agenda.CriadoPor,
		SaldoInicial: s.saldoReabertura,
		Estado:       model.SessaoAberta,
		AbertaEm:     time.Now(),
	}
	if err := s.caixaRepo.CreateSessao(ctx, sessao); err != nil {
		return err
	}

	agenda.JaReabriuHoje = true
	if err := s.repo.Update(ctx, agenda); err != nil {
		return err
	}
	log.Info().Str("data", agenda.Data).Str("hora", agenda.HoraReabertura).Msg("caixa reaberto pela agenda")
	return nil
}

func validarHora(h string) error {
	if _, err := time.Parse("15:04", h); err != nil {
		return fmt.Errorf("hora inválida %q, use o formato HH:MM", h)
	}
	return nil
}

func agendaToResponse(a *model.AgendaCaixa) *dto.AgendaResponse {
	return &dto.AgendaResponse{
		ID:               a.ID.String(),
		Data:             a.Data,
		HoraFechamento:   a.HoraFechamento,
		HoraReabertura:   a.HoraReabertura,
		Estado:           a.Estado,
		JaFechouHoje:     a.JaFechouHoje,
		JaReabriuHoje:    a.JaReabriuHoje,
		ContadorOverride: a.ContadorOverride,
		Observacoes:      a.Observacoes,
	}
}
