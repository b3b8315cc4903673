package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/dto"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/infra"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/repository"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Refusal classes of FinalizarVenda. Handlers use errors.Is to distinguish
// "fix the input" from "resolve the register state first".
var (
	// ErrVendaVazia: empty cart or non-positive total. Callers treat it as a
	// quiet no-op signal, not a failure — pressing "finalizar" right after a
	// completed sale must not raise a noisy error.
	ErrVendaVazia = errors.New("nenhum item para finalizar")
	// ErrValorInsuficiente: cash tendered below the total. Never clamped.
	ErrValorInsuficiente = errors.New("valor recebido insuficiente")
	// ErrCaixaFechadoHoje: an end-of-day closure was already recorded today
	// and no session has been reopened since.
	ErrCaixaFechadoHoje = errors.New("o caixa já foi fechado hoje")
	// ErrFinalizacaoEmAndamento: a second finalize arrived while one is in
	// flight for the same user (double key-press).
	ErrFinalizacaoEmAndamento = errors.New("finalização já em andamento")
)

type VendaService interface {
	FinalizarVenda(ctx context.Context, usuarioID uuid.UUID, req dto.FinalizarVendaRequest) (*dto.VendaResponse, error)
	BuscarPorID(ctx context.Context, id uuid.UUID) (*dto.VendaResponse, error)
	ListVendas(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error)
}

type vendaService struct {
	repo        repository.VendaRepository
	produtoRepo repository.ProdutoRepository
	caixaRepo   repository.CaixaRepository
	finRepo     repository.FinanceiroRepository
	movRepo     repository.MovimentoEstoqueRepository
	tef         *infra.TEFClient
	tefCB       *infra.CircuitBreaker
	pix         PixService
	dispatcher  *worker.Dispatcher
	escopoCaixa string // "usuario" | "global"

	// One lock per user replaces the old process-wide "finalize in progress"
	// flag: TryLock refuses re-entry instead of blocking, so a double
	// key-press gets an immediate refusal rather than a queued duplicate.
	locks sync.Map // uuid.UUID → *sync.Mutex
}

func NewVendaService(
	repo repository.VendaRepository,
	produtoRepo repository.ProdutoRepository,
	caixaRepo repository.CaixaRepository,
	finRepo repository.FinanceiroRepository,
	movRepo repository.MovimentoEstoqueRepository,
	tef *infra.TEFClient,
	tefCB *infra.CircuitBreaker,
	pix PixService,
	dispatcher *worker.Dispatcher,
	escopoCaixa string,
) VendaService {
	return &vendaService{
		repo:        repo,
		produtoRepo: produtoRepo,
		caixaRepo:   caixaRepo,
		finRepo:     finRepo,
		movRepo:     movRepo,
		tef:         tef,
		tefCB:       tefCB,
		pix:         pix,
		dispatcher:  dispatcher,
		escopoCaixa: escopoCaixa,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── FinalizarVenda ───────────────────────────────────────────────────────────
// Guards run in a fixed order before any mutation:
//   1. register already closed today (and nothing reopened since)
//   2. empty cart
//   3. cash sufficiency
//   4. card authorization through the TEF terminal
// Only then the single ACID transaction commits the sale, its items, the
// stock decrements and the revenue ledger entry. The cart's unit prices are
// authoritative — the catalog is only consulted for stock.

func (s *vendaService) FinalizarVenda(ctx context.Context, usuarioID uuid.UUID, req dto.FinalizarVendaRequest) (*dto.VendaResponse, error) {
	mu := s.lockFor(usuarioID)
	if !mu.TryLock() {
		return nil, ErrFinalizacaoEmAndamento
	}
	defer mu.Unlock()

	total := decimal.Zero
	for _, item := range req.Itens {
		total = total.Add(item.PrecoUnitario.Mul(decimal.NewFromInt(int64(item.Quantidade))))
	}

	// Guard 1: end-of-day hard stop. Distinct from "no session ever opened" —
	// only refuses when a closure ledger entry exists for today AND no session
	// has been reopened since.
	fechadoHoje, err := s.finRepo.ExisteFechamentoHoje(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar fechamento: %w", err)
	}
	if fechadoHoje {
		if _, err := s.caixaRepo.FindSessaoAberta(ctx, s.escopo(usuarioID)); err != nil {
			return nil, ErrCaixaFechadoHoje
		}
	}

	// Guard 2
	if len(req.Itens) == 0 || !total.IsPositive() {
		return nil, ErrVendaVazia
	}

	// Guard 3
	valorRecebido := req.ValorRecebido
	if req.FormaPagamento == model.PagamentoDinheiro {
		if valorRecebido.LessThan(total) {
			return nil, ErrValorInsuficiente
		}
	} else {
		valorRecebido = total
	}
	troco := valorRecebido.Sub(total)
	if troco.IsNegative() {
		troco = decimal.Zero
	}

	// Guard 4: synchronous card authorization — aborts before any ledger write
	var transacaoID *string
	if req.FormaPagamento == model.PagamentoDebito || req.FormaPagamento == model.PagamentoCredito {
		var resp *infra.TEFResposta
		cbErr := s.tefCB.Execute(func() error {
			r, err := s.tef.Autorizar(ctx, total, req.FormaPagamento)
			if err != nil {
				return err
			}
			resp = r
			return nil
		})
		if cbErr != nil {
			return nil, fmt.Errorf("autorização do cartão falhou: %w", cbErr)
		}
		if !resp.Aprovada {
			return nil, fmt.Errorf("pagamento recusado: %s", resp.Mensagem)
		}
		transacaoID = &resp.TransacaoID
	}

	venda := model.Venda{
		UsuarioID:      usuarioID,
		Total:          decimal.Zero,
		FormaPagamento: req.FormaPagamento,
		ValorRecebido:  valorRecebido,
		Estado:         model.VendaConcluida,
		TransacaoID:    transacaoID,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &venda); err != nil {
			return err
		}

		acumulado := decimal.Zero
		for _, linha := range req.Itens {
			p, err := s.produtoRepo.FindByBarcodeTx(tx, linha.CodigoBarras)
			autoCriado := false
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				// Unknown barcode: materialize the product with zero stock and
				// the cart's price so the sale still records something. Stock
				// is NOT decremented for these.
				p = &model.Produto{
					CodigoBarras: linha.CodigoBarras,
					Nome:         linha.Nome,
					PrecoVenda:   linha.PrecoUnitario,
					EstoqueAtual: 0,
					AutoCriado:   true,
					Ativo:        true,
				}
				if err := s.produtoRepo.CreateTx(tx, p); err != nil {
					return fmt.Errorf("erro ao cadastrar produto %s: %w", linha.CodigoBarras, err)
				}
				autoCriado = true
			}

			if !autoCriado {
				estoqueAntes := p.EstoqueAtual
				if err := s.produtoRepo.UpdateEstoqueTx(tx, p.ID, -linha.Quantidade); err != nil {
					return fmt.Errorf("erro ao baixar estoque de %s: %w", linha.Nome, err)
				}
				mov := &model.MovimentoEstoque{
					ProdutoID:       p.ID,
					Tipo:            "venda",
					Delta:           -linha.Quantidade,
					EstoqueAnterior: estoqueAntes,
					EstoqueNovo:     estoqueAntes - linha.Quantidade,
					Motivo:          fmt.Sprintf("Venda %s", venda.ID),
					ReferenciaID:    &venda.ID,
				}
				if err := s.movRepo.CreateTx(tx, mov); err != nil {
					return err
				}
			}

			produtoID := p.ID
			item := model.ItemVenda{
				VendaID:       venda.ID,
				ProdutoID:     &produtoID,
				Quantidade:    linha.Quantidade,
				PrecoUnitario: linha.PrecoUnitario,
			}
			if tx != nil {
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			}
			venda.Itens = append(venda.Itens, item)
			acumulado = acumulado.Add(item.Subtotal())
		}

		venda.Total = acumulado
		if tx != nil {
			if err := s.repo.UpdateTotalTx(tx, venda.ID, acumulado); err != nil {
				return err
			}
		}

		movFin := &model.MovimentoFinanceiro{
			Tipo:         model.MovimentoReceita,
			Valor:        acumulado,
			Descricao:    fmt.Sprintf("Venda %s (%s)", venda.ID, req.FormaPagamento),
			ReferenciaID: &venda.ID,
		}
		return s.finRepo.CreateMovimentoTx(orDB(tx, s.repo.DB()), movFin)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := vendaToResponse(&venda, req.Itens)
	resp.Troco = troco

	// PIX: the BR Code embeds only the outstanding remainder after partial
	// payments. Generated after commit — a payload failure never undoes the sale.
	if req.FormaPagamento == model.PagamentoPix {
		cob, pixErr := s.pix.GerarCobranca(ctx, total, req.PagamentosParciais, venda.ID)
		if pixErr != nil {
			log.Warn().Err(pixErr).Str("venda_id", venda.ID.String()).Msg("falha ao gerar cobrança PIX")
		} else {
			resp.Pix = cob
		}
	}

	// Fire-and-forget: low-stock recheck + dashboard badge refresh
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueAlertaEstoque(ctx, map[string]interface{}{
			"venda_id": venda.ID.String(),
		})
	}

	return resp, nil
}

// escopo returns the session-lookup scope: per-user or the global register.
func (s *vendaService) escopo(usuarioID uuid.UUID) *uuid.UUID {
	if s.escopoCaixa == "global" {
		return nil
	}
	return &usuarioID
}

func (s *vendaService) lockFor(usuarioID uuid.UUID) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(usuarioID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// orDB returns tx when inside a transaction, or the fallback in unit-test mode.
func orDB(tx, db *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

func (s *vendaService) BuscarPorID(ctx context.Context, id uuid.UUID) (*dto.VendaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrVendaNaoEncontrada
	}
	return vendaToResponse(v, nil), nil
}

// ── ListVendas ───────────────────────────────────────────────────────────────
// Read-only surface for the report/export collaborators.
// Default filter: today's concluded sales.

func (s *vendaService) ListVendas(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Estado == "" {
		filter.Estado = model.VendaConcluida
	}
	vendas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VendaResponse, 0, len(vendas))
	for _, v := range vendas {
		items = append(items, *vendaToResponse(&v, nil))
	}
	return &dto.VendaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func vendaToResponse(v *model.Venda, carrinho []dto.ItemCarrinhoRequest) *dto.VendaResponse {
	items := make([]dto.ItemVendaResponse, 0, len(v.Itens))
	for i, item := range v.Itens {
		nome := ""
		if item.Produto != nil {
			nome = item.Produto.Nome
		} else if carrinho != nil && i < len(carrinho) {
			nome = carrinho[i].Nome
		}
		var pid *string
		if item.ProdutoID != nil {
			s := item.ProdutoID.String()
			pid = &s
		}
		items = append(items, dto.ItemVendaResponse{
			ID:            item.ID.String(),
			Produto:       nome,
			ProdutoID:     pid,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario,
			Subtotal:      item.Subtotal(),
		})
	}
	return &dto.VendaResponse{
		ID:             v.ID.String(),
		Itens:          items,
		Total:          v.Total,
		FormaPagamento: v.FormaPagamento,
		ValorRecebido:  v.ValorRecebido,
		Estado:         v.Estado,
		TransacaoID:    v.TransacaoID,
		CreatedAt:      v.CreatedAt.Format(time.RFC3339),
	}
}
