package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/apierror"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/dto"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/middleware"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CaixaHandler struct{ svc service.CaixaService }

func NewCaixaHandler(svc service.CaixaService) *CaixaHandler { return &CaixaHandler{svc: svc} }

// AbrirCaixa godoc
// @Summary      Abrir sessão de caixa
// @Description  Abre uma nova sessão com o saldo inicial informado.
// @Tags         caixa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AbrirCaixaRequest true "Saldo inicial"
// @Success      201  {object} dto.SessaoCaixaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/caixa/abrir [post]
func (h *CaixaHandler) AbrirCaixa(c *gin.Context) {
	var req dto.AbrirCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Abrir(c.Request.Context(), usuarioID, req)
	if err != nil {
		if errors.Is(err, service.ErrSessaoJaAberta) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SessaoAberta godoc
// @Summary      Consultar sessão aberta
// @Tags         caixa
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.SessaoCaixaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/caixa/aberta [get]
func (h *CaixaHandler) SessaoAberta(c *gin.Context) {
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.SessaoAberta(c.Request.Context(), usuarioID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FecharCaixa godoc
// @Summary      Fechar sessão de caixa
// @Description  Fecha a sessão: o saldo do sistema é calculado a partir dos movimentos e comparado com a contagem cega.
// @Tags         caixa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.FecharCaixaRequest true "Sessão e contagem"
// @Success      200  {object} dto.SessaoCaixaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/caixa/fechar [post]
func (h *CaixaHandler) FecharCaixa(c *gin.Context) {
	var req dto.FecharCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Fechar(c.Request.Context(), usuarioID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessaoJaFechada):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		case errors.Is(err, service.ErrSessaoNaoEncontrada):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListSessoes godoc
// @Summary      Histórico de sessões
// @Tags         caixa
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Página (default 1)"
// @Param        limit query int false "Registros por página (default 20)"
// @Success      200   {object} dto.SessaoListResponse
// @Router       /v1/caixa/sessoes [get]
func (h *CaixaHandler) ListSessoes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	resp, err := h.svc.ListSessoes(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar sessões"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
