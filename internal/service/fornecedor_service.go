package service

import (
	"context"
	"errors"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/dto"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrFornecedorNaoEncontrado = errors.New("fornecedor não encontrado")
	ErrCNPJDuplicado           = errors.New("já existe um fornecedor com esse CNPJ")
)

type FornecedorService interface {
	Criar(ctx context.Context, req dto.CriarFornecedorRequest) (*dto.FornecedorResponse, error)
	BuscarPorID(ctx context.Context, id uuid.UUID) (*dto.FornecedorResponse, error)
	List(ctx context.Context) ([]dto.FornecedorResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.CriarFornecedorRequest) (*dto.FornecedorResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
}

type fornecedorService struct {
	repo repository.FornecedorRepository
}

func NewFornecedorService(repo repository.FornecedorRepository) FornecedorService {
	return &fornecedorService{repo: repo}
}

func (s *fornecedorService) Criar(ctx context.Context, req dto.CriarFornecedorRequest) (*dto.FornecedorResponse, error) {
	if existente, err := s.repo.FindByCNPJ(ctx, req.CNPJ); err == nil && existente != nil {
		return nil, ErrCNPJDuplicado
	}
	f := &model.Fornecedor{
		RazaoSocial: req.RazaoSocial,
		CNPJ:        req.CNPJ,
		Telefone:    req.Telefone,
		Email:       req.Email,
		Endereco:    req.Endereco,
		Ativo:       true,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return fornecedorToResponse(f), nil
}

func (s *fornecedorService) BuscarPorID(ctx context.Context, id uuid.UUID) (*dto.FornecedorResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrFornecedorNaoEncontrado
	}
	return fornecedorToResponse(f), nil
}

func (s *fornecedorService) List(ctx context.Context) ([]dto.FornecedorResponse, error) {
	fornecedores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FornecedorResponse, len(fornecedores))
	for i := range fornecedores {
		out[i] = *fornecedorToResponse(&fornecedores[i])
	}
	return out, nil
}

func (s *fornecedorService) Atualizar(ctx context.Context, id uuid.UUID, req dto.CriarFornecedorRequest) (*dto.FornecedorResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrFornecedorNaoEncontrado
	}
	if f.CNPJ != req.CNPJ {
		if outro, err := s.repo.FindByCNPJ(ctx, req.CNPJ); err == nil && outro != nil && outro.ID != f.ID {
			return nil, ErrCNPJDuplicado
		}
	}
	f.RazaoSocial = req.RazaoSocial
	f.CNPJ = req.CNPJ
	f.Telefone = req.Telefone
	f.Email = req.Email
	f.Endereco = req.Endereco
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return fornecedorToResponse(f), nil
}

func (s *fornecedorService) Desativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrFornecedorNaoEncontrado
	}
	return s.repo.Desativar(ctx, id)
}

func fornecedorToResponse(f *model.Fornecedor) *dto.FornecedorResponse {
	return &dto.FornecedorResponse{
		ID:          f.ID.String(),
		RazaoSocial: f.RazaoSocial,
		CNPJ:        f.CNPJ,
		Telefone:    f.Telefone,
		Email:       f.Email,
		Endereco:    f.Endereco,
		Ativo:       f.Ativo,
	}
}
