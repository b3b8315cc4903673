package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/apierror"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/dto"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FinanceiroHandler struct{ svc service.FinanceiroService }

func NewFinanceiroHandler(svc service.FinanceiroService) *FinanceiroHandler {
	return &FinanceiroHandler{svc: svc}
}

// CriarDespesa godoc
// @Summary      Cadastrar despesa
// @Tags         financeiro
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarContaRequest true "Despesa"
// @Success      201  {object} dto.ContaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/financeiro/despesas [post]
func (h *FinanceiroHandler) CriarDespesa(c *gin.Context) {
	var req dto.CriarContaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarDespesa(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListDespesas godoc
// @Summary      Listar despesas
// @Tags         financeiro
// @Produce      json
// @Security     BearerAuth
// @Param        estado query string false "pendente | paga | all"
// @Success      200    {array} dto.ContaResponse
// @Router       /v1/financeiro/despesas [get]
func (h *FinanceiroHandler) ListDespesas(c *gin.Context) {
	resp, err := h.svc.ListDespesas(c.Request.Context(), c.DefaultQuery("estado", "pendente"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar despesas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PagarDespesa godoc
// @Summary      Pagar despesa
// @Description  Liquida total ou parcialmente. Pagamento parcial fecha a conta original e abre uma nova com o saldo restante.
// @Tags         financeiro
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID da despesa"
// @Param        body body dto.LiquidarContaRequest true "Valor pago"
// @Success      200  {object} dto.ContaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/financeiro/despesas/{id}/pagar [post]
func (h *FinanceiroHandler) PagarDespesa(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.LiquidarContaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.PagarDespesa(c.Request.Context(), id, req)
	if err != nil {
		h.writeContaErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CriarConta godoc
// @Summary      Cadastrar conta a receber
// @Tags         financeiro
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarContaRequest true "Conta"
// @Success      201  {object} dto.ContaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/financeiro/contas [post]
func (h *FinanceiroHandler) CriarConta(c *gin.Context) {
	var req dto.CriarContaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarConta(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListContas godoc
// @Summary      Listar contas a receber
// @Tags         financeiro
// @Produce      json
// @Security     BearerAuth
// @Param        estado query string false "pendente | recebida | all"
// @Success      200    {array} dto.ContaResponse
// @Router       /v1/financeiro/contas [get]
func (h *FinanceiroHandler) ListContas(c *gin.Context) {
	resp, err := h.svc.ListContas(c.Request.Context(), c.DefaultQuery("estado", "pendente"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar contas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReceberConta godoc
// @Summary      Receber conta
// @Description  Mesma regra de liquidação parcial das despesas, registrando RECEITA.
// @Tags         financeiro
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID da conta"
// @Param        body body dto.LiquidarContaRequest true "Valor recebido"
// @Success      200  {object} dto.ContaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/financeiro/contas/{id}/receber [post]
func (h *FinanceiroHandler) ReceberConta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.LiquidarContaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ReceberConta(c.Request.Context(), id, req)
	if err != nil {
		h.writeContaErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Dashboard godoc
// @Summary      Dashboard financeiro
// @Description  Totais de receitas, despesas e saldo do período (default: mês corrente).
// @Tags         financeiro
// @Produce      json
// @Security     BearerAuth
// @Param        de  query string false "Data inicial YYYY-MM-DD"
// @Param        ate query string false "Data final YYYY-MM-DD"
// @Success      200 {object} dto.DashboardResponse
// @Router       /v1/financeiro/dashboard [get]
func (h *FinanceiroHandler) Dashboard(c *gin.Context) {
	agora := time.Now()
	de := time.Date(agora.Year(), agora.Month(), 1, 0, 0, 0, 0, agora.Location())
	ate := agora

	if q := c.Query("de"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("parâmetro de inválido, use YYYY-MM-DD"))
			return
		}
		de = t
	}
	if q := c.Query("ate"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("parâmetro ate inválido, use YYYY-MM-DD"))
			return
		}
		ate = t.Add(24*time.Hour - time.Second)
	}

	resp, err := h.svc.Dashboard(c.Request.Context(), de, ate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao montar dashboard"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FinanceiroHandler) writeContaErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrContaNaoEncontrada):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrContaJaLiquidada):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
