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
	"gorm.io/gorm"
)

var (
	ErrProdutoNaoEncontrado = errors.New("produto não encontrado")
	ErrBarcodeDuplicado     = errors.New("já existe um produto com esse código de barras")
	ErrEstoqueNegativo      = errors.New("o ajuste deixaria o estoque negativo")
)

type ProdutoService interface {
	Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	BuscarPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	BuscarPorBarcode(ctx context.Context, barcode string) (*dto.ProdutoResponse, error)
	List(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
	AjustarEstoque(ctx context.Context, id uuid.UUID, req dto.AjustarEstoqueRequest) (*dto.ProdutoResponse, error)
}

type produtoService struct {
	repo    repository.ProdutoRepository
	movRepo repository.MovimentoEstoqueRepository
	alertas AlertaService
}

func NewProdutoService(repo repository.ProdutoRepository, movRepo repository.MovimentoEstoqueRepository, alertas AlertaService) ProdutoService {
	return &produtoService{repo: repo, movRepo: movRepo, alertas: alertas}
}

func (s *produtoService) Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	if existente, err := s.repo.FindByBarcode(ctx, req.CodigoBarras); err == nil && existente != nil {
		return nil, ErrBarcodeDuplicado
	}

	p := &model.Produto{
		CodigoBarras:  req.CodigoBarras,
		Nome:          req.Nome,
		Descricao:     req.Descricao,
		PrecoCusto:    req.PrecoCusto,
		PrecoVenda:    req.PrecoVenda,
		EstoqueAtual:  req.EstoqueAtual,
		EstoqueMinimo: req.EstoqueMinimo,
		Lote:          req.Lote,
		Ativo:         true,
	}
	if req.FornecedorID != nil {
		fid, err := uuid.Parse(*req.FornecedorID)
		if err != nil {
			return nil, errors.New("fornecedor_id inválido")
		}
		p.FornecedorID = &fid
	}
	if req.Validade != nil {
		v, err := time.Parse(model.DataVencimentoLayout, *req.Validade)
		if err != nil {
			return nil, ErrDataInvalida
		}
		p.Validade = &v
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) BuscarPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProdutoNaoEncontrado
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) BuscarPorBarcode(ctx context.Context, barcode string) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, ErrProdutoNaoEncontrado
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) List(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error) {
	produtos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		out = append(out, *produtoToResponse(&produtos[i]))
	}
	return &dto.ProdutoListResponse{Data: out, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *produtoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProdutoNaoEncontrado
	}
	p.Nome = req.Nome
	p.Descricao = req.Descricao
	p.PrecoCusto = req.PrecoCusto
	p.PrecoVenda = req.PrecoVenda
	p.EstoqueMinimo = req.EstoqueMinimo
	if req.FornecedorID != nil {
		fid, err := uuid.Parse(*req.FornecedorID)
		if err != nil {
			return nil, errors.New("fornecedor_id inválido")
		}
		p.FornecedorID = &fid
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return produtoToResponse(p), nil
}

// Desativar is the "delete" the UI exposes: the row stays for sale history,
// ativo flips off and the stock is zeroed.
func (s *produtoService) Desativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrProdutoNaoEncontrado
	}
	return s.repo.Desativar(ctx, id)
}

// AjustarEstoque applies a manual delta (recount, loss, incoming shipment) and
// records the movement. Unlike the sale path, manual adjustment refuses to go
// below zero.
func (s *produtoService) AjustarEstoque(ctx context.Context, id uuid.UUID, req dto.AjustarEstoqueRequest) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProdutoNaoEncontrado
	}
	estoqueAntes := p.EstoqueAtual
	novo := estoqueAntes + req.Delta
	if novo < 0 {
		return nil, ErrEstoqueNegativo
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// UpdateEstoqueTx may mutate the loaded entity, so the audit row
		// uses the quantity captured before the update
		if err := s.repo.UpdateEstoqueTx(orDB(tx, s.repo.DB()), p.ID, req.Delta); err != nil {
			return err
		}
		mov := &model.MovimentoEstoque{
			ProdutoID:       p.ID,
			Tipo:            "ajuste_manual",
			Delta:           req.Delta,
			EstoqueAnterior: estoqueAntes,
			EstoqueNovo:     novo,
			Motivo:          req.Motivo,
		}
		return s.movRepo.CreateTx(orDB(tx, s.repo.DB()), mov)
	})
	if txErr != nil {
		return nil, txErr
	}
	p.EstoqueAtual = novo

	if s.alertas != nil {
		if _, err := s.alertas.VerificarEstoqueBaixo(ctx); err != nil {
			log.Warn().Err(err).Msg("falha ao reavaliar alertas após ajuste de estoque")
		}
	}
	return produtoToResponse(p), nil
}

func produtoToResponse(p *model.Produto) *dto.ProdutoResponse {
	resp := &dto.ProdutoResponse{
		ID:            p.ID.String(),
		CodigoBarras:  p.CodigoBarras,
		Nome:          p.Nome,
		Descricao:     p.Descricao,
		PrecoCusto:    p.PrecoCusto,
		PrecoVenda:    p.PrecoVenda,
		EstoqueAtual:  p.EstoqueAtual,
		EstoqueMinimo: p.EstoqueMinimo,
		AutoCriado:    p.AutoCriado,
		Ativo:         p.Ativo,
	}
	if p.FornecedorID != nil {
		f := p.FornecedorID.String()
		resp.FornecedorID = &f
	}
	return resp
}
