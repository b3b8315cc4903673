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

type ProdutosHandler struct{ svc service.ProdutoService }

func NewProdutosHandler(svc service.ProdutoService) *ProdutosHandler {
	return &ProdutosHandler{svc: svc}
}

// CriarProduto godoc
// @Summary      Cadastrar produto
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarProdutoRequest true "Dados do produto"
// @Success      201  {object} dto.ProdutoResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/produtos [post]
func (h *ProdutosHandler) CriarProduto(c *gin.Context) {
	var req dto.CriarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrBarcodeDuplicado) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// BuscarProduto godoc
// @Summary      Detalhar produto
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID do produto"
// @Success      200 {object} dto.ProdutoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/produtos/{id} [get]
func (h *ProdutosHandler) BuscarProduto(c *gin.Context) {
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

// BuscarPorBarcode godoc
// @Summary      Consultar produto por código de barras
// @Description  Consulta usada pelo terminal durante a montagem do carrinho.
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        codigo path string true "Código de barras"
// @Success      200    {object} dto.ProdutoResponse
// @Failure      404    {object} apierror.APIError
// @Router       /v1/produtos/barcode/{codigo} [get]
func (h *ProdutosHandler) BuscarPorBarcode(c *gin.Context) {
	resp, err := h.svc.BuscarPorBarcode(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListProdutos godoc
// @Summary      Listar produtos
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        nome   query string false "Filtro por nome (parcial)"
// @Param        ativo  query string false "false | all (default: ativos)"
// @Param        page   query int    false "Página"
// @Param        limit  query int    false "Registros por página"
// @Success      200    {object} dto.ProdutoListResponse
// @Router       /v1/produtos [get]
func (h *ProdutosHandler) ListProdutos(c *gin.Context) {
	var filter dto.ProdutoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar produtos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AtualizarProduto godoc
// @Summary      Atualizar produto
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID do produto"
// @Param        body body dto.AtualizarProdutoRequest true "Dados"
// @Success      200  {object} dto.ProdutoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/produtos/{id} [put]
func (h *ProdutosHandler) AtualizarProduto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AtualizarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrProdutoNaoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DesativarProduto godoc
// @Summary      Desativar produto
// @Description  Desativação lógica: o produto some do catálogo e o estoque é zerado, o histórico de vendas permanece.
// @Tags         produtos
// @Security     BearerAuth
// @Param        id path string true "UUID do produto"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/produtos/{id} [delete]
func (h *ProdutosHandler) DesativarProduto(c *gin.Context) {
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

// AjustarEstoque godoc
// @Summary      Ajustar estoque manualmente
// @Description  Aplica um delta (recontagem, perda, entrada) e registra o movimento de estoque.
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID do produto"
// @Param        body body dto.AjustarEstoqueRequest true "Delta e motivo"
// @Success      200  {object} dto.ProdutoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/produtos/{id}/estoque [patch]
func (h *ProdutosHandler) AjustarEstoque(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AjustarEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarEstoque(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProdutoNaoEncontrado):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrEstoqueNegativo):
			c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}
