package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/dto"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrVendaNaoEncontrada = errors.New("venda não encontrada")
	ErrVendaJaEstornada   = errors.New("a venda já foi estornada")
	ErrItemNaoEncontrado  = errors.New("item não encontrado na venda")
)

type EstornoService interface {
	EstornarVenda(ctx context.Context, vendaID, usuarioID uuid.UUID, motivo string) (*dto.EstornoResponse, error)
	EstornarItem(ctx context.Context, vendaID, itemID, usuarioID uuid.UUID) (*dto.EstornoResponse, error)
}

type estornoService struct {
	vendaRepo   repository.VendaRepository
	produtoRepo repository.ProdutoRepository
	finRepo     repository.FinanceiroRepository
	movRepo     repository.MovimentoEstoqueRepository
}

func NewEstornoService(
	vendaRepo repository.VendaRepository,
	produtoRepo repository.ProdutoRepository,
	finRepo repository.FinanceiroRepository,
	movRepo repository.MovimentoEstoqueRepository,
) EstornoService {
	return &estornoService{
		vendaRepo:   vendaRepo,
		produtoRepo: produtoRepo,
		finRepo:     finRepo,
		movRepo:     movRepo,
	}
}

// ── EstornarVenda ────────────────────────────────────────────────────────────
// Full reversal. Stock restoration is best-effort per item: one failed restore
// is logged and the remaining items still get theirs back. The status change
// is authoritative; the audit return entry afterwards is best-effort and never
// undoes the reversal.

func (s *estornoService) EstornarVenda(ctx context.Context, vendaID, usuarioID uuid.UUID, motivo string) (*dto.EstornoResponse, error) {
	venda, err := s.vendaRepo.FindByID(ctx, vendaID)
	if err != nil {
		return nil, ErrVendaNaoEncontrada
	}
	if venda.Estado == model.VendaEstornada {
		return nil, ErrVendaJaEstornada
	}

	txErr := runTx(ctx, s.vendaRepo.DB(), func(tx *gorm.DB) error {
		for _, item := range venda.Itens {
			if err := s.restaurarEstoque(tx, &item, venda.ID, motivo); err != nil {
				log.Warn().Err(err).
					Str("venda_id", venda.ID.String()).
					Str("item_id", item.ID.String()).
					Msg("falha ao restaurar estoque no estorno, prosseguindo")
			}
		}
		return s.vendaRepo.UpdateEstadoTx(orDB(tx, s.vendaRepo.DB()), vendaID, model.VendaEstornada)
	})
	if txErr != nil {
		return nil, txErr
	}
	venda.Estado = model.VendaEstornada

	// Audit trail: inverse revenue entry. Logged on failure, never rolled back.
	mov := &model.MovimentoFinanceiro{
		Tipo:         model.MovimentoReceita,
		Valor:        venda.Total.Neg(),
		Descricao:    fmt.Sprintf("Estorno da venda %s — %s", venda.ID, motivo),
		ReferenciaID: &venda.ID,
	}
	if err := s.finRepo.CreateMovimento(ctx, mov); err != nil {
		log.Error().Err(err).Str("venda_id", venda.ID.String()).Msg("falha ao registrar movimento de estorno")
	}

	return &dto.EstornoResponse{
		VendaID:  venda.ID.String(),
		Estado:   model.VendaEstornada,
		Total:    venda.Total,
		Mensagem: "Venda estornada com sucesso",
	}, nil
}

// ── EstornarItem ─────────────────────────────────────────────────────────────
// Partial reversal of a single line item, all-or-nothing. The item is located
// by its own id or — legacy fallback — by product id within the sale. Removing
// the last item transitions the sale to ESTORNADA: a sale cannot stay
// CONCLUIDA with zero items.

func (s *estornoService) EstornarItem(ctx context.Context, vendaID, itemID, usuarioID uuid.UUID) (*dto.EstornoResponse, error) {
	venda, err := s.vendaRepo.FindByID(ctx, vendaID)
	if err != nil {
		return nil, ErrVendaNaoEncontrada
	}
	if venda.Estado == model.VendaEstornada {
		return nil, ErrVendaJaEstornada
	}

	item := localizarItem(venda, itemID)
	if item == nil {
		return nil, ErrItemNaoEncontrado
	}

	novoTotal := venda.Total.Sub(item.Subtotal())
	if novoTotal.IsNegative() {
		novoTotal = decimal.Zero
	}

	var restantes int64
	txErr := runTx(ctx, s.vendaRepo.DB(), func(tx *gorm.DB) error {
		// Return entry recorded before the item row disappears
		mov := &model.MovimentoFinanceiro{
			Tipo:         model.MovimentoReceita,
			Valor:        item.Subtotal().Neg(),
			Descricao:    fmt.Sprintf("Devolução de item da venda %s", venda.ID),
			ReferenciaID: &venda.ID,
		}
		if err := s.finRepo.CreateMovimentoTx(orDB(tx, s.vendaRepo.DB()), mov); err != nil {
			return err
		}

		if err := s.restaurarEstoque(tx, item, venda.ID, "devolução de item"); err != nil {
			return err
		}

		if err := s.vendaRepo.UpdateTotalTx(orDB(tx, s.vendaRepo.DB()), vendaID, novoTotal); err != nil {
			return err
		}
		if err := s.vendaRepo.DeleteItemTx(orDB(tx, s.vendaRepo.DB()), item.ID); err != nil {
			return err
		}

		// count inside the transaction: concurrent reversals must agree on
		// who removed the last item
		n, err := s.vendaRepo.CountItensTx(orDB(tx, s.vendaRepo.DB()), vendaID)
		if err != nil {
			return err
		}
		restantes = n

		if restantes == 0 {
			return s.vendaRepo.UpdateEstadoTx(orDB(tx, s.vendaRepo.DB()), vendaID, model.VendaEstornada)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	estado := model.VendaConcluida
	if restantes == 0 {
		estado = model.VendaEstornada
	}
	return &dto.EstornoResponse{
		VendaID:  venda.ID.String(),
		Estado:   estado,
		Total:    novoTotal,
		Mensagem: "Item estornado com sucesso",
	}, nil
}

// restaurarEstoque gives an item's quantity back to its product. Products that
// were auto-created by the sale never had stock decremented, so they are
// skipped here too — restoring them would fabricate inventory.
func (s *estornoService) restaurarEstoque(tx *gorm.DB, item *model.ItemVenda, vendaID uuid.UUID, motivo string) error {
	if item.ProdutoID == nil {
		return nil // product purged post-sale, nothing to restore
	}
	p, err := s.produtoRepo.FindByIDTx(orDB(tx, s.produtoRepo.DB()), *item.ProdutoID)
	if err != nil {
		return err
	}
	if p.AutoCriado {
		return nil
	}
	if err := s.produtoRepo.UpdateEstoqueTx(orDB(tx, s.produtoRepo.DB()), p.ID, item.Quantidade); err != nil {
		return err
	}
	mov := &model.MovimentoEstoque{
		ProdutoID:       p.ID,
		Tipo:            "estorno",
		Delta:           item.Quantidade,
		EstoqueAnterior: p.EstoqueAtual,
		EstoqueNovo:     p.EstoqueAtual + item.Quantidade,
		Motivo:          motivo,
		ReferenciaID:    &vendaID,
	}
	return s.movRepo.CreateTx(orDB(tx, s.produtoRepo.DB()), mov)
}

// localizarItem finds a line item by id, falling back to product id for
// callers that still send the product instead of the item.
func localizarItem(venda *model.Venda, itemID uuid.UUID) *model.ItemVenda {
	for i := range venda.Itens {
		if venda.Itens[i].ID == itemID {
			return &venda.Itens[i]
		}
	}
	for i := range venda.Itens {
		pid := venda.Itens[i].ProdutoID
		if pid != nil && *pid == itemID {
			return &venda.Itens[i]
		}
	}
	return nil
}
