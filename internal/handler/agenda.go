package handler

import (
	"errors"
	"net/http"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/apierror"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/dto"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/middleware"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/repository"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AgendaHandler struct{ svc service.AgendaService }

func NewAgendaHandler(svc service.AgendaService) *AgendaHandler { return &AgendaHandler{svc: svc} }

// CriarAgenda godoc
// @Summary      Criar ou atualizar agenda do caixa
// @Description  Define os horários de fechamento e reabertura automáticos para uma data. Reeditar os horários rearma o dia.
// @Tags         agenda
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarAgendaRequest true "Data e horários"
// @Success      200  {object} dto.AgendaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/agenda [put]
func (h *AgendaHandler) CriarAgenda(c *gin.Context) {
	var req dto.CriarAgendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CriarOuAtualizar(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BuscarAgenda godoc
// @Summary      Consultar agenda por data
// @Tags         agenda
// @Produce      json
// @Security     BearerAuth
// @Param        data query string true "Data dd/mm/aaaa"
// @Success      200  {object} dto.AgendaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/agenda [get]
func (h *AgendaHandler) BuscarAgenda(c *gin.Context) {
	data := c.Query("data")
	if data == "" {
		c.JSON(http.StatusBadRequest, apierror.New("parâmetro data é obrigatório"))
		return
	}
	resp, err := h.svc.BuscarPorData(c.Request.Context(), data)
	if err != nil {
		if errors.Is(err, repository.ErrAgendaInexistente) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao consultar agenda"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// OverrideAgenda godoc
// @Summary      Sobrescrever estado da agenda
// @Description  Pausa, cancela ou reativa a agenda de uma data. Cada override é contado para auditoria.
// @Tags         agenda
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.OverrideAgendaRequest true "Data e novo estado"
// @Success      200  {object} dto.AgendaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/agenda/override [post]
func (h *AgendaHandler) OverrideAgenda(c *gin.Context) {
	var req dto.OverrideAgendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Override(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrAgendaInexistente) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
