package router

import (
	"time"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/config"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/handler"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/infra"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/middleware"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/model"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/repository"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/service"
	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Deps carries the services the main process also needs (cron, worker pool).
type Deps struct {
	Engine  *gin.Engine
	Agenda  service.AgendaService
	Alertas service.AlertaService
}

// New wires all dependencies and returns the configured engine plus the
// services shared with the background workers.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, tefCB *infra.CircuitBreaker) *Deps {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	tefClient := infra.NewTEFClient(cfg.TEFURL, cfg.TEFSimulado)
	mailer := infra.NewMailer(cfg)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	vendaRepo := repository.NewVendaRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	agendaRepo := repository.NewAgendaRepository(db)
	finRepo := repository.NewFinanceiroRepository(db)
	contaRepo := repository.NewContaRepository(db)
	movEstoqueRepo := repository.NewMovimentoEstoqueRepository(db)
	fornecedorRepo := repository.NewFornecedorRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	alertaSvc := service.NewAlertaService(produtoRepo, rdb, mailer, cfg.AlertaEmailPara)
	produtoSvc := service.NewProdutoService(produtoRepo, movEstoqueRepo, alertaSvc)
	caixaSvc := service.NewCaixaService(caixaRepo, finRepo, cfg.EscopoCaixa)
	pixSvc := service.NewPixService(cfg.PixChave, cfg.PixNomeLoja, cfg.PixCidade, cfg.PixCNPJ, rdb)

	saldoReabertura, err := decimal.NewFromString(cfg.SaldoInicialReabertura)
	if err != nil {
		saldoReabertura = decimal.Zero
	}
	agendaSvc := service.NewAgendaService(agendaRepo, caixaRepo, finRepo, saldoReabertura)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	vendaSvc := service.NewVendaService(vendaRepo, produtoRepo, caixaRepo, finRepo,
		movEstoqueRepo, tefClient, tefCB, pixSvc, dispatcher, cfg.EscopoCaixa)
	estornoSvc := service.NewEstornoService(vendaRepo, produtoRepo, finRepo, movEstoqueRepo)
	financeiroSvc := service.NewFinanceiroService(contaRepo, finRepo)
	fornecedorSvc := service.NewFornecedorService(fornecedorRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	vendasH := handler.NewVendasHandler(vendaSvc, estornoSvc)
	caixaH := handler.NewCaixaHandler(caixaSvc)
	agendaH := handler.NewAgendaHandler(agendaSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	financeiroH := handler.NewFinanceiroHandler(financeiroSvc)
	fornecedoresH := handler.NewFornecedoresHandler(fornecedorSvc)
	alertasH := handler.NewAlertasHandler(alertaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, tefCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		todos := middleware.RequireRole(model.PerfilCaixa, model.PerfilGerente, model.PerfilAdmin)
		gestao := middleware.RequireRole(model.PerfilGerente, model.PerfilAdmin)
		admin := middleware.RequireRole(model.PerfilAdmin)

		// Vendas
		v1.POST("/vendas", todos, vendasH.FinalizarVenda)
		v1.GET("/vendas", todos, vendasH.ListVendas)
		v1.GET("/vendas/:id", todos, vendasH.BuscarVenda)
		v1.POST("/vendas/:id/estorno", gestao, vendasH.EstornarVenda)
		v1.DELETE("/vendas/:id/itens/:itemId", gestao, vendasH.EstornarItem)

		// Caixa
		caixa := v1.Group("/caixa")
		{
			caixa.POST("/abrir", todos, caixaH.AbrirCaixa)
			caixa.GET("/aberta", todos, caixaH.SessaoAberta)
			caixa.POST("/fechar", gestao, caixaH.FecharCaixa)
			caixa.GET("/sessoes", gestao, caixaH.ListSessoes)
		}

		// Agenda — gerência
		agenda := v1.Group("/agenda", gestao)
		{
			agenda.PUT("", agendaH.CriarAgenda)
			agenda.GET("", agendaH.BuscarAgenda)
			agenda.POST("/override", agendaH.OverrideAgenda)
		}

		// Produtos — leitura para todos, escrita para gerência
		v1.GET("/produtos", todos, produtosH.ListProdutos)
		v1.GET("/produtos/:id", todos, produtosH.BuscarProduto)
		v1.GET("/produtos/barcode/:codigo", todos, produtosH.BuscarPorBarcode)
		prods := v1.Group("/produtos", gestao)
		{
			prods.POST("", produtosH.CriarProduto)
			prods.PUT("/:id", produtosH.AtualizarProduto)
			prods.DELETE("/:id", produtosH.DesativarProduto)
			prods.PATCH("/:id/estoque", produtosH.AjustarEstoque)
		}

		// Alertas de estoque
		v1.GET("/alertas/estoque", todos, alertasH.ListAlertas)
		v1.GET("/alertas/estoque/resumo", todos, alertasH.ResumoAlertas)

		// Financeiro — gerência
		fin := v1.Group("/financeiro", gestao)
		{
			fin.POST("/despesas", financeiroH.CriarDespesa)
			fin.GET("/despesas", financeiroH.ListDespesas)
			fin.POST("/despesas/:id/pagar", financeiroH.PagarDespesa)
			fin.POST("/contas", financeiroH.CriarConta)
			fin.GET("/contas", financeiroH.ListContas)
			fin.POST("/contas/:id/receber", financeiroH.ReceberConta)
			fin.GET("/dashboard", financeiroH.Dashboard)
		}

		// Fornecedores — gerência
		forn := v1.Group("/fornecedores", gestao)
		{
			forn.POST("", fornecedoresH.CriarFornecedor)
			forn.GET("", fornecedoresH.ListFornecedores)
			forn.GET("/:id", fornecedoresH.BuscarFornecedor)
			forn.PUT("/:id", fornecedoresH.AtualizarFornecedor)
			forn.DELETE("/:id", fornecedoresH.DesativarFornecedor)
		}

		// Usuários — admin
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", authH.CriarUsuario)
			usuarios.GET("", authH.ListUsuarios)
			usuarios.DELETE("/:id", authH.DesativarUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return &Deps{Engine: r, Agenda: agendaSvc, Alertas: alertaSvc}
}
