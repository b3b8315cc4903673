package service

// In-memory repository doubles shared by the service tests. They mirror the
// behavior the gorm implementations have against Postgres, including the
// gorm.ErrRecordNotFound contract on missing rows.

import (
	"context"
	"time"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/dto"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── ProdutoRepository ────────────────────────────────────────────────────────

type memProdutoRepo struct {
	porID      map[uuid.UUID]*model.Produto
	porBarcode map[string]*model.Produto
}

func newMemProdutoRepo() *memProdutoRepo {
	return &memProdutoRepo{
		porID:      make(map[uuid.UUID]*model.Produto),
		porBarcode: make(map[string]*model.Produto),
	}
}

func (r *memProdutoRepo) seed(p *model.Produto) *model.Produto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.porID[p.ID] = p
	r.porBarcode[p.CodigoBarras] = p
	return p
}

func (r *memProdutoRepo) Create(_ context.Context, p *model.Produto) error {
	r.seed(p)
	return nil
}

func (r *memProdutoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	p, ok := r.porID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *memProdutoRepo) FindByBarcode(_ context.Context, barcode string) (*model.Produto, error) {
	p, ok := r.porBarcode[barcode]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *memProdutoRepo) List(_ context.Context, filter dto.ProdutoFilter) ([]model.Produto, int64, error) {
	var out []model.Produto
	for _, p := range r.porID {
		if filter.Ativo == "" && !p.Ativo {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *memProdutoRepo) Update(_ context.Context, p *model.Produto) error {
	r.porID[p.ID] = p
	r.porBarcode[p.CodigoBarras] = p
	return nil
}

func (r *memProdutoRepo) Desativar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.porID[id]; ok {
		p.Ativo = false
		p.EstoqueAtual = 0
	}
	return nil
}

func (r *memProdutoRepo) ListEstoqueBaixo(_ context.Context) ([]model.Produto, error) {
	var out []model.Produto
	for _, p := range r.porID {
		if p.Ativo && p.EstoqueAtual <= p.EstoqueMinimo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProdutoRepo) CreateTx(_ *gorm.DB, p *model.Produto) error {
	r.seed(p)
	return nil
}

func (r *memProdutoRepo) FindByBarcodeTx(_ *gorm.DB, barcode string) (*model.Produto, error) {
	return r.FindByBarcode(context.Background(), barcode)
}

func (r *memProdutoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *memProdutoRepo) UpdateEstoqueTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.porID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.EstoqueAtual += delta
	return nil
}

func (r *memProdutoRepo) AjustarEstoque(_ context.Context, id uuid.UUID, delta int) error {
	return r.UpdateEstoqueTx(nil, id, delta)
}

func (r *memProdutoRepo) DB() *gorm.DB { return nil }

var _ repository.ProdutoRepository = (*memProdutoRepo)(nil)

// ── VendaRepository ──────────────────────────────────────────────────────────

type memVendaRepo struct {
	vendas map[uuid.UUID]*model.Venda
}

func newMemVendaRepo() *memVendaRepo {
	return &memVendaRepo{vendas: make(map[uuid.UUID]*model.Venda)}
}

func (r *memVendaRepo) seed(v *model.Venda) *model.Venda {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	for i := range v.Itens {
		if v.Itens[i].ID == uuid.Nil {
			v.Itens[i].ID = uuid.New()
		}
		v.Itens[i].VendaID = v.ID
	}
	r.vendas[v.ID] = v
	return v
}

func (r *memVendaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venda) error {
	v.CreatedAt = time.Now()
	r.seed(v)
	return nil
}

func (r *memVendaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venda, error) {
	v, ok := r.vendas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *memVendaRepo) List(_ context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error) {
	var out []model.Venda
	for _, v := range r.vendas {
		if filter.Estado != "all" && filter.Estado != "" && v.Estado != filter.Estado {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *memVendaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	v, ok := r.vendas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Estado = estado
	return nil
}

func (r *memVendaRepo) UpdateTotalTx(_ *gorm.DB, id uuid.UUID, total decimal.Decimal) error {
	v, ok := r.vendas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Total = total
	return nil
}

func (r *memVendaRepo) DeleteItemTx(_ *gorm.DB, itemID uuid.UUID) error {
	for _, v := range r.vendas {
		for i := range v.Itens {
			if v.Itens[i].ID == itemID {
				v.Itens = append(v.Itens[:i], v.Itens[i+1:]...)
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memVendaRepo) CountItensTx(_ *gorm.DB, vendaID uuid.UUID) (int64, error) {
	v, ok := r.vendas[vendaID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return int64(len(v.Itens)), nil
}

func (r *memVendaRepo) DB() *gorm.DB { return nil }

var _ repository.VendaRepository = (*memVendaRepo)(nil)

// ── CaixaRepository ──────────────────────────────────────────────────────────

type memCaixaRepo struct {
	sessoes map[uuid.UUID]*model.SessaoCaixa
}

func newMemCaixaRepo() *memCaixaRepo {
	return &memCaixaRepo{sessoes: make(map[uuid.UUID]*model.SessaoCaixa)}
}

func (r *memCaixaRepo) CreateSessao(_ context.Context, s *model.SessaoCaixa) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.AbertaEm.IsZero() {
		s.AbertaEm = time.Now()
	}
	r.sessoes[s.ID] = s
	return nil
}

func (r *memCaixaRepo) FindSessaoByID(_ context.Context, id uuid.UUID) (*model.SessaoCaixa, error) {
	s, ok := r.sessoes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *memCaixaRepo) FindSessaoAberta(_ context.Context, usuarioID *uuid.UUID) (*model.SessaoCaixa, error) {
	for _, s := range r.sessoes {
		if s.Estado != model.SessaoAberta {
			continue
		}
		if usuarioID == nil || s.UsuarioID == *usuarioID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memCaixaRepo) UpdateSessao(_ context.Context, s *model.SessaoCaixa) error {
	r.sessoes[s.ID] = s
	return nil
}

func (r *memCaixaRepo) ListSessoes(_ context.Context, page, limit int) ([]model.SessaoCaixa, int64, error) {
	all := make([]model.SessaoCaixa, 0, len(r.sessoes))
	for _, s := range r.sessoes {
		all = append(all, *s)
	}
	return all, int64(len(all)), nil
}

var _ repository.CaixaRepository = (*memCaixaRepo)(nil)

// ── FinanceiroRepository ─────────────────────────────────────────────────────

type memFinanceiroRepo struct {
	movimentos []model.MovimentoFinanceiro
}

func newMemFinanceiroRepo() *memFinanceiroRepo { return &memFinanceiroRepo{} }

func (r *memFinanceiroRepo) append(m *model.MovimentoFinanceiro) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.movimentos = append(r.movimentos, *m)
}

func (r *memFinanceiroRepo) CreateMovimento(_ context.Context, m *model.MovimentoFinanceiro) error {
	r.append(m)
	return nil
}

func (r *memFinanceiroRepo) CreateMovimentoTx(_ *gorm.DB, m *model.MovimentoFinanceiro) error {
	r.append(m)
	return nil
}

func (r *memFinanceiroRepo) ExisteFechamentoHoje(_ context.Context) (bool, error) {
	hoje := time.Now().Format("2006-01-02")
	for _, m := range r.movimentos {
		if m.Tipo == model.MovimentoFechamento && m.CreatedAt.Format("2006-01-02") == hoje {
			return true, nil
		}
	}
	return false, nil
}

func (r *memFinanceiroRepo) ListMovimentos(_ context.Context, de, ate time.Time) ([]model.MovimentoFinanceiro, error) {
	var out []model.MovimentoFinanceiro
	for _, m := range r.movimentos {
		if !m.CreatedAt.Before(de) && !m.CreatedAt.After(ate) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memFinanceiroRepo) SumPorTipo(_ context.Context, de, ate time.Time) (map[string]decimal.Decimal, error) {
	sums := make(map[string]decimal.Decimal)
	for _, m := range r.movimentos {
		if !m.CreatedAt.Before(de) && !m.CreatedAt.After(ate) {
			sums[m.Tipo] = sums[m.Tipo].Add(m.Valor)
		}
	}
	return sums, nil
}

func (r *memFinanceiroRepo) porTipo(tipo string) []model.MovimentoFinanceiro {
	var out []model.MovimentoFinanceiro
	for _, m := range r.movimentos {
		if m.Tipo == tipo {
			out = append(out, m)
		}
	}
	return out
}

var _ repository.FinanceiroRepository = (*memFinanceiroRepo)(nil)

// ── MovimentoEstoqueRepository ───────────────────────────────────────────────

type memMovimentoEstoqueRepo struct {
	movimentos []model.MovimentoEstoque
}

func newMemMovimentoEstoqueRepo() *memMovimentoEstoqueRepo { return &memMovimentoEstoqueRepo{} }

func (r *memMovimentoEstoqueRepo) CreateTx(_ *gorm.DB, m *model.MovimentoEstoque) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimentos = append(r.movimentos, *m)
	return nil
}

func (r *memMovimentoEstoqueRepo) Create(_ context.Context, m *model.MovimentoEstoque) error {
	return r.CreateTx(nil, m)
}

func (r *memMovimentoEstoqueRepo) ListByProduto(_ context.Context, produtoID uuid.UUID, limit int) ([]model.MovimentoEstoque, error) {
	var out []model.MovimentoEstoque
	for _, m := range r.movimentos {
		if m.ProdutoID == produtoID {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ repository.MovimentoEstoqueRepository = (*memMovimentoEstoqueRepo)(nil)

// ── AgendaRepository ─────────────────────────────────────────────────────────

type memAgendaRepo struct {
	porData map[string]*model.AgendaCaixa
}

func newMemAgendaRepo() *memAgendaRepo {
	return &memAgendaRepo{porData: make(map[string]*model.AgendaCaixa)}
}

func (r *memAgendaRepo) FindByData(_ context.Context, data string) (*model.AgendaCaixa, error) {
	a, ok := r.porData[data]
	if !ok {
		return nil, repository.ErrAgendaInexistente
	}
	return a, nil
}

func (r *memAgendaRepo) Create(_ context.Context, a *model.AgendaCaixa) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.porData[a.Data] = a
	return nil
}

func (r *memAgendaRepo) Update(_ context.Context, a *model.AgendaCaixa) error {
	r.porData[a.Data] = a
	return nil
}

var _ repository.AgendaRepository = (*memAgendaRepo)(nil)

// ── UsuarioRepository ────────────────────────────────────────────────────────

type memUsuarioRepo struct {
	porID       map[uuid.UUID]*model.Usuario
	porUsername map[string]*model.Usuario
}

func newMemUsuarioRepo() *memUsuarioRepo {
	return &memUsuarioRepo{
		porID:       make(map[uuid.UUID]*model.Usuario),
		porUsername: make(map[string]*model.Usuario),
	}
}

func (r *memUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.porID[u.ID] = u
	r.porUsername[u.Username] = u
	return nil
}

func (r *memUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.porID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *memUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	u, ok := r.porUsername[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *memUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.porID {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.porID[u.ID] = u
	r.porUsername[u.Username] = u
	return nil
}

func (r *memUsuarioRepo) Desativar(_ context.Context, id uuid.UUID) error {
	if u, ok := r.porID[id]; ok {
		u.Ativo = false
	}
	return nil
}

func (r *memUsuarioRepo) CountAdminsAtivos(_ context.Context) (int64, error) {
	var n int64
	for _, u := range r.porID {
		if u.Ativo && u.Perfil == model.PerfilAdmin {
			n++
		}
	}
	return n, nil
}

var _ repository.UsuarioRepository = (*memUsuarioRepo)(nil)

// ── ContaRepository ──────────────────────────────────────────────────────────

type memContaRepo struct {
	despesas map[uuid.UUID]*model.Despesa
	contas   map[uuid.UUID]*model.ContaReceber
}

func newMemContaRepo() *memContaRepo {
	return &memContaRepo{
		despesas: make(map[uuid.UUID]*model.Despesa),
		contas:   make(map[uuid.UUID]*model.ContaReceber),
	}
}

func (r *memContaRepo) CreateDespesa(_ context.Context, d *model.Despesa) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.despesas[d.ID] = d
	return nil
}

func (r *memContaRepo) FindDespesaByID(_ context.Context, id uuid.UUID) (*model.Despesa, error) {
	d, ok := r.despesas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (r *memContaRepo) ListDespesas(_ context.Context, estado string) ([]model.Despesa, error) {
	var out []model.Despesa
	for _, d := range r.despesas {
		if estado == "all" || estado == "" || d.Estado == estado {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *memContaRepo) CreateDespesaTx(_ *gorm.DB, d *model.Despesa) error {
	return r.CreateDespesa(context.Background(), d)
}

func (r *memContaRepo) UpdateDespesaTx(_ *gorm.DB, d *model.Despesa) error {
	r.despesas[d.ID] = d
	return nil
}

func (r *memContaRepo) CreateConta(_ context.Context, c *model.ContaReceber) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.contas[c.ID] = c
	return nil
}

func (r *memContaRepo) FindContaByID(_ context.Context, id uuid.UUID) (*model.ContaReceber, error) {
	c, ok := r.contas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *memContaRepo) ListContas(_ context.Context, estado string) ([]model.ContaReceber, error) {
	var out []model.ContaReceber
	for _, c := range r.contas {
		if estado == "all" || estado == "" || c.Estado == estado {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memContaRepo) CreateContaTx(_ *gorm.DB, c *model.ContaReceber) error {
	return r.CreateConta(context.Background(), c)
}

func (r *memContaRepo) UpdateContaTx(_ *gorm.DB, c *model.ContaReceber) error {
	r.contas[c.ID] = c
	return nil
}

func (r *memContaRepo) DB() *gorm.DB { return nil }

var _ repository.ContaRepository = (*memContaRepo)(nil)
