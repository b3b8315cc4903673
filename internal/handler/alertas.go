package handler

import (
	"net/http"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/apierror"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type AlertasHandler struct{ svc service.AlertaService }

func NewAlertasHandler(svc service.AlertaService) *AlertasHandler {
	return &AlertasHandler{svc: svc}
}

// ListAlertas godoc
// @Summary      Painel de alertas de estoque
// @Description  Produtos com estoque igual ou abaixo do mínimo, classificados por severidade.
// @Tags         alertas
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.AlertaEstoqueResponse
// @Router       /v1/alertas/estoque [get]
func (h *AlertasHandler) ListAlertas(c *gin.Context) {
	resp, err := h.svc.VerificarEstoqueBaixo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao verificar estoque"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResumoAlertas godoc
// @Summary      Badge de alertas
// @Description  Contadores por severidade para o dashboard.
// @Tags         alertas
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ResumoAlertasResponse
// @Router       /v1/alertas/estoque/resumo [get]
func (h *AlertasHandler) ResumoAlertas(c *gin.Context) {
	resp, err := h.svc.Resumo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao resumir alertas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
