package service

import (
	"context"
	"errors"
	"time"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/dto"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrSessaoNaoEncontrada = errors.New("sessão de caixa não encontrada")
	ErrSessaoJaFechada     = errors.New("a sessão de caixa já foi fechada")
	ErrSessaoJaAberta      = errors.New("já existe uma sessão de caixa aberta")
)

type CaixaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCaixaRequest) (*dto.SessaoCaixaResponse, error)
	SessaoAberta(ctx context.Context, usuarioID uuid.UUID) (*dto.SessaoCaixaResponse, error)
	Fechar(ctx context.Context, usuarioID uuid.UUID, req dto.FecharCaixaRequest) (*dto.SessaoCaixaResponse, error)
	ListSessoes(ctx context.Context, page, limit int) (*dto.SessaoListResponse, error)
}

type caixaService struct {
	repo        repository.CaixaRepository
	finRepo     repository.FinanceiroRepository
	escopoCaixa string
}

func NewCaixaService(repo repository.CaixaRepository, finRepo repository.FinanceiroRepository, escopoCaixa string) CaixaService {
	return &caixaService{repo: repo, finRepo: finRepo, escopoCaixa: escopoCaixa}
}

// Abrir creates a new session after checking the scope's single-open
// invariant: per-user scope allows one open drawer per operator, global
// scope allows one for the whole store.
func (s *caixaService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCaixaRequest) (*dto.SessaoCaixaResponse, error) {
	if existente, err := s.repo.FindSessaoAberta(ctx, s.escopo(usuarioID)); err == nil && existente != nil {
		return nil, ErrSessaoJaAberta
	}
	sessao := &model.SessaoCaixa{
		UsuarioID:    usuarioID,
		SaldoInicial: req.SaldoInicial,
		Estado:       model.SessaoAberta,
		AbertaEm:     time.Now(),
	}
	if err := s.repo.CreateSessao(ctx, sessao); err != nil {
		return nil, err
	}
	log.Info().
		Str("sessao_id", sessao.ID.String()).
		Str("usuario_id", usuarioID.String()).
		Str("saldo_inicial", req.SaldoInicial.StringFixed(2)).
		Msg("caixa aberto")
	return sessaoToResponse(sessao), nil
}

func (s *caixaService) SessaoAberta(ctx context.Context, usuarioID uuid.UUID) (*dto.SessaoCaixaResponse, error) {
	sessao, err := s.repo.FindSessaoAberta(ctx, s.escopo(usuarioID))
	if err != nil {
		return nil, ErrSessaoNaoEncontrada
	}
	return sessaoToResponse(sessao), nil
}

// Fechar closes a session. The system-side closing balance is computed here
// from the financial movements recorded since the session opened; the caller
// only supplies the blind count. Closing also records the FECHAMENTO_CAIXA
// movement that blocks further sales for the day.
func (s *caixaService) Fechar(ctx context.Context, usuarioID uuid.UUID, req dto.FecharCaixaRequest) (*dto.SessaoCaixaResponse, error) {
	sessaoID, err := uuid.Parse(req.SessaoID)
	if err != nil {
		return nil, ErrSessaoNaoEncontrada
	}
	sessao, err := s.repo.FindSessaoByID(ctx, sessaoID)
	if err != nil {
		return nil, ErrSessaoNaoEncontrada
	}
	if sessao.Estado == model.SessaoFechada {
		return nil, ErrSessaoJaFechada
	}

	saldoSistema, err := s.saldoSistema(ctx, sessao)
	if err != nil {
		return nil, err
	}

	agora := time.Now()
	sessao.Estado = model.SessaoFechada
	sessao.SaldoFinalSistema = &saldoSistema
	sessao.SaldoFinalInformado = &req.SaldoInformado
	sessao.Observacoes = req.Observacoes
	sessao.FechadaEm = &agora
	if err := s.repo.UpdateSessao(ctx, sessao); err != nil {
		return nil, err
	}

	mov := &model.MovimentoFinanceiro{
		Tipo:         model.MovimentoFechamento,
		Valor:        req.SaldoInformado,
		Descricao:    "Fechamento de caixa",
		ReferenciaID: &sessao.ID,
	}
	if err := s.finRepo.CreateMovimento(ctx, mov); err != nil {
		// The session is already closed; losing the guard entry must be loud.
		log.Error().Err(err).Str("sessao_id", sessao.ID.String()).Msg("falha ao registrar movimento de fechamento")
	}

	div := sessao.Divergencia()
	log.Info().
		Str("sessao_id", sessao.ID.String()).
		Str("divergencia", div.StringFixed(2)).
		Msg("caixa fechado")
	return sessaoToResponse(sessao), nil
}

func (s *caixaService) ListSessoes(ctx context.Context, page, limit int) (*dto.SessaoListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	sessoes, total, err := s.repo.ListSessoes(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessaoCaixaResponse, 0, len(sessoes))
	for i := range sessoes {
		out = append(out, *sessaoToResponse(&sessoes[i]))
	}
	return &dto.SessaoListResponse{Data: out, Total: total, Page: page, Limit: limit}, nil
}

// saldoSistema = saldo inicial + receitas - despesas desde a abertura.
// FECHAMENTO_CAIXA entries are snapshots, not cash flow, and are ignored.
func (s *caixaService) saldoSistema(ctx context.Context, sessao *model.SessaoCaixa) (decimal.Decimal, error) {
	movs, err := s.finRepo.ListMovimentos(ctx, sessao.AbertaEm, time.Now())
	if err != nil {
		return decimal.Zero, err
	}
	saldo := sessao.SaldoInicial
	for _, m := range movs {
		switch m.Tipo {
		case model.MovimentoReceita:
			saldo = saldo.Add(m.Valor)
		case model.MovimentoDespesa:
			saldo = saldo.Sub(m.Valor)
		}
	}
	return saldo, nil
}

// escopo resolves which open-session lookup applies: per-user or shared drawer.
func (s *caixaService) escopo(usuarioID uuid.UUID) *uuid.UUID {
	if s.escopoCaixa == "global" {
		return nil
	}
	return &usuarioID
}

func sessaoToResponse(s *model.SessaoCaixa) *dto.SessaoCaixaResponse {
	resp := &dto.SessaoCaixaResponse{
		ID:                  s.ID.String(),
		UsuarioID:           s.UsuarioID.String(),
		SaldoInicial:        s.SaldoInicial,
		SaldoFinalSistema:   s.SaldoFinalSistema,
		SaldoFinalInformado: s.SaldoFinalInformado,
		Estado:              s.Estado,
		Observacoes:         s.Observacoes,
		AbertaEm:            s.AbertaEm.Format(time.RFC3339),
	}
	if s.SaldoFinalSistema != nil && s.SaldoFinalInformado != nil {
		div := s.Divergencia()
		resp.Divergencia = &div
	}
	if s.FechadaEm != nil {
		f := s.FechadaEm.Format(time.RFC3339)
		resp.FechadaEm = &f
	}
	return resp
}
