package service

import (
	"context"
	"strconv"
	"time"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/dto"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const badgeAlertasKey = "alertas:estoque:total"

// Severidade thresholds: zerado <= 0, critico <= half the minimum, baixo
// otherwise (at or below the minimum).
const (
	SeveridadeZerado  = "zerado"
	SeveridadeCritico = "critico"
	SeveridadeBaixo   = "baixo"
)

type AlertaService interface {
	VerificarEstoqueBaixo(ctx context.Context) ([]dto.AlertaEstoqueResponse, error)
	Resumo(ctx context.Context) (*dto.ResumoAlertasResponse, error)
	NotificarZerados(ctx context.Context)
}

type alertaService struct {
	produtoRepo repository.ProdutoRepository
	rdb         *redis.Client
	mailer      Notificador
	emailPara   string
}

// Notificador abstracts the outbound alert channel so tests can capture
// messages without an SMTP server.
type Notificador interface {
	Send(to, subject, body string) error
}

func NewAlertaService(produtoRepo repository.ProdutoRepository, rdb *redis.Client, mailer Notificador, emailPara string) AlertaService {
	return &alertaService{produtoRepo: produtoRepo, rdb: rdb, mailer: mailer, emailPara: emailPara}
}

func (s *alertaService) VerificarEstoqueBaixo(ctx context.Context) ([]dto.AlertaEstoqueResponse, error) {
	produtos, err := s.produtoRepo.ListEstoqueBaixo(ctx)
	if err != nil {
		return nil, err
	}
	alertas := make([]dto.AlertaEstoqueResponse, 0, len(produtos))
	for i := range produtos {
		alertas = append(alertas, alertaDe(&produtos[i]))
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, badgeAlertasKey, strconv.Itoa(len(alertas)), 10*time.Minute).Err(); err != nil {
			log.Warn().Err(err).Msg("falha ao atualizar badge de alertas")
		}
	}
	return alertas, nil
}

func (s *alertaService) Resumo(ctx context.Context) (*dto.ResumoAlertasResponse, error) {
	alertas, err := s.VerificarEstoqueBaixo(ctx)
	if err != nil {
		return nil, err
	}
	resumo := &dto.ResumoAlertasResponse{Total: len(alertas)}
	for _, a := range alertas {
		switch a.Severidade {
		case SeveridadeZerado:
			resumo.Zerados++
		case SeveridadeCritico:
			resumo.Criticos++
		default:
			resumo.Baixos++
		}
	}
	return resumo, nil
}

// NotificarZerados emails the configured recipient when products hit zero
// stock. Called by the alert worker, not by request handlers.
func (s *alertaService) NotificarZerados(ctx context.Context) {
	if s.mailer == nil || s.emailPara == "" {
		return
	}
	alertas, err := s.VerificarEstoqueBaixo(ctx)
	if err != nil {
		log.Error().Err(err).Msg("falha ao verificar estoque para notificação")
		return
	}
	corpo := ""
	for _, a := range alertas {
		if a.Severidade != SeveridadeZerado {
			continue
		}
		corpo += a.Nome + " (" + a.CodigoBarras + ") está sem estoque\n"
	}
	if corpo == "" {
		return
	}
	if err := s.mailer.Send(s.emailPara, "Produtos sem estoque", corpo); err != nil {
		log.Error().Err(err).Msg("falha ao enviar alerta de estoque por email")
	}
}

func alertaDe(p *model.Produto) dto.AlertaEstoqueResponse {
	sev := SeveridadeBaixo
	switch {
	case p.EstoqueAtual <= 0:
		sev = SeveridadeZerado
	case p.EstoqueAtual <= p.EstoqueMinimo/2:
		sev = SeveridadeCritico
	}
	return dto.AlertaEstoqueResponse{
		ProdutoID:     p.ID.String(),
		Nome:          p.Nome,
		CodigoBarras:  p.CodigoBarras,
		EstoqueAtual:  p.EstoqueAtual,
		EstoqueMinimo: p.EstoqueMinimo,
		Severidade:    sev,
	}
}
