package handler

import (
	"errors"
	"net/http"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/apierror"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/dto"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FornecedoresHandler struct{ svc service.FornecedorService }

func NewFornecedoresHandler(svc service.FornecedorService) *FornecedoresHandler {
	return &FornecedoresHandler{svc: svc}
}

// CriarFornecedor godoc
// @Summary      Cadastrar fornecedor
// @Tags         fornecedores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarFornecedorRequest true "Dados do fornecedor"
// @Success      201  {object} dto.FornecedorResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/fornecedores [post]
func (h *FornecedoresHandler) CriarFornecedor(c *gin.Context) {
	var req dto.CriarFornecedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrCNPJDuplicado) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListFornecedores godoc
// @Summary      Listar fornecedores
// @Tags         fornecedores
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.FornecedorResponse
// @Router       /v1/fornecedores [get]
func (h *FornecedoresHandler) ListFornecedores(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar fornecedores"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BuscarFornecedor godoc
// @Summary      Detalhar fornecedor
// @Tags         fornecedores
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID do fornecedor"
// @Success      200 {object} dto.FornecedorResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/fornecedores/{id} [get]
func (h *FornecedoresHandler) BuscarFornecedor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.BuscarPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AtualizarFornecedor godoc
// @Summary      Atualizar fornecedor
// @Tags         fornecedores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID do fornecedor"
// @Param        body body dto.CriarFornecedorRequest true "Dados"
// @Success      200  {object} dto.FornecedorResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/fornecedores/{id} [put]
func (h *FornecedoresHandler) AtualizarFornecedor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CriarFornecedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFornecedorNaoEncontrado):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrCNPJDuplicado):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DesativarFornecedor godoc
// @Summary      Desativar fornecedor
// @Tags         fornecedores
// @Security     BearerAuth
// @Param        id path string true "UUID do fornecedor"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/fornecedores/{id} [delete]
func (h *FornecedoresHandler) DesativarFornecedor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Desativar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
