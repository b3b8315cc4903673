package handler

import (
	"errors"
	"net/http"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/apierror"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/dto"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/middleware"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VendasHandler struct {
	svc     service.VendaService
	estorno service.EstornoService
}

func NewVendasHandler(svc service.VendaService, estorno service.EstornoService) *VendasHandler {
	return &VendasHandler{svc: svc, estorno: estorno}
}

// FinalizarVenda godoc
// @Summary      Finalizar venda
// @Description  Finaliza a venda do carrinho: valida caixa, pagamento, baixa estoque e registra a receita em uma transação ACID.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.FinalizarVendaRequest true "Itens e pagamento"
// @Success      201  {object} dto.VendaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/vendas [post]
func (h *VendasHandler) FinalizarVenda(c *gin.Context) {
	var req dto.FinalizarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.FinalizarVenda(c.Request.Context(), usuarioID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCaixaFechadoHoje),
			errors.Is(err, service.ErrFinalizacaoEmAndamento):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// EstornarVenda godoc
// @Summary      Estornar venda
// @Description  Estorna a venda inteira: restaura estoque (exceto produtos auto-criados) e registra o movimento inverso.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID da venda"
// @Param        body body dto.EstornarVendaRequest true "Motivo do estorno"
// @Success      200  {object} dto.EstornoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/vendas/{id}/estorno [post]
func (h *VendasHandler) EstornarVenda(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.EstornarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.estorno.EstornarVenda(c.Request.Context(), id, usuarioID, req.Motivo)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrVendaNaoEncontrada) {
			status = http.StatusNotFound
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EstornarItem godoc
// @Summary      Estornar item da venda
// @Description  Estorna um único item: devolve estoque, deduz do total e encerra a venda quando for o último item.
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Param        id     path string true "UUID da venda"
// @Param        itemId path string true "UUID do item (ou do produto, legado)"
// @Success      200    {object} dto.EstornoResponse
// @Failure      400    {object} apierror.APIError
// @Router       /v1/vendas/{id}/itens/{itemId} [delete]
func (h *VendasHandler) EstornarItem(c *gin.Context) {
	vendaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID do item inválido"))
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.estorno.EstornarItem(c.Request.Context(), vendaID, itemID, usuarioID)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrVendaNaoEncontrada) || errors.Is(err, service.ErrItemNaoEncontrado) {
			status = http.StatusNotFound
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BuscarVenda godoc
// @Summary      Detalhar venda
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID da venda"
// @Success      200 {object} dto.VendaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/vendas/{id} [get]
func (h *VendasHandler) BuscarVenda(c *gin.Context) {
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

// ListVendas godoc
// @Summary      Listar vendas
// @Description  Lista paginada filtrada por data e estado.
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Param        data   query string false "Data YYYY-MM-DD (default: hoje)"
// @Param        estado query string false "CONCLUIDA | ESTORNADA | all"
// @Param        page   query int    false "Página (default 1)"
// @Param        limit  query int    false "Registros por página (default 50)"
// @Success      200    {object} dto.VendaListResponse
// @Failure      400    {object} apierror.APIError
// @Router       /v1/vendas [get]
func (h *VendasHandler) ListVendas(c *gin.Context) {
	var filter dto.VendaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListVendas(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar vendas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
