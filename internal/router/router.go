package router

import (
	"time"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/config"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/handler"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/infra"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/middleware"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/repository"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/service"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *gin.Engine {
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

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	stockRepo := repository.NewStockRepository(db)
	catalogoRepo := repository.NewCatalogoRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	mesaRepo := repository.NewMesaRepository(db)
	gastoRepo := repository.NewGastoRepository(db)
	cocinaRepo := repository.NewCocinaRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	jwtTTL := time.Duration(cfg.JWTExpirationHours) * time.Hour
	authSvc := service.NewAuthService(usuarioRepo, cajaRepo, cfg.JWTSecret, jwtTTL)
	turnoSvc := service.NewTurnoService(cajaRepo, ventaRepo, dispatcher)
	ventaSvc := service.NewVentaService(ventaRepo, cajaRepo, stockRepo, catalogoRepo, dispatcher)
	stockSvc := service.NewStockService(stockRepo, dispatcher)
	catalogoSvc := service.NewCatalogoService(catalogoRepo, stockRepo, categoriaRepo)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	mesaSvc := service.NewMesaService(mesaRepo)
	gastoSvc := service.NewGastoService(gastoRepo, cajaRepo, stockRepo)
	cocinaSvc := service.NewCocinaService(cocinaRepo, ventaRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	turnosH := handler.NewTurnosHandler(turnoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	stockH := handler.NewStockHandler(stockSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	mesasH := handler.NewMesasHandler(mesaSvc)
	gastosH := handler.NewGastosHandler(gastoSvc)
	cocinaH := handler.NewCocinaHandler(cocinaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes. Roles: admin, mozo, cocina, caja.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		todos := middleware.RequireRole("admin", "mozo", "cocina", "caja")
		mostradorMW := middleware.RequireRole("admin", "mozo", "caja")
		cajaMW := middleware.RequireRole("admin", "caja")
		adminMW := middleware.RequireRole("admin")

		// Cajas y turnos
		v1.POST("/cajas", adminMW, turnosH.CrearCaja)
		v1.GET("/cajas", todos, turnosH.ListarCajas)

		turnos := v1.Group("/turnos")
		{
			turnos.POST("/abrir", cajaMW, turnosH.Abrir)
			turnos.POST("/cerrar", cajaMW, turnosH.Cerrar)
			turnos.GET("", cajaMW, turnosH.Listar)
			turnos.GET("/:id", cajaMW, turnosH.Detalle)
			// El saldo esperado en vivo rompe el arqueo ciego: solo admin.
			turnos.GET("/:id/saldo-esperado", adminMW, turnosH.SaldoEsperado)
			turnos.POST("/movimientos", cajaMW, turnosH.RegistrarMovimiento)
			turnos.GET("/:id/movimientos", cajaMW, turnosH.ListarMovimientos)
			turnos.GET("/:id/gastos", cajaMW, gastosH.ListarPorTurno)
		}

		// Ventas
		ventas := v1.Group("/ventas", mostradorMW)
		{
			ventas.POST("", ventasH.Abrir)
			ventas.GET("", ventasH.Listar)
			ventas.GET("/:id", ventasH.Detalle)
			ventas.POST("/:id/items", ventasH.AgregarItem)
			ventas.DELETE("/:id/items/:item_id", ventasH.EliminarItem)
			ventas.POST("/:id/descuentos", ventasH.AplicarDescuento)
			ventas.POST("/:id/pagos", ventasH.RegistrarPago)
			ventas.POST("/:id/cerrar", ventasH.Cerrar)
		}
		v1.POST("/ventas/:id/anular", middleware.RequireRole("admin", "caja"), ventasH.Anular)
		v1.POST("/ventas/:id/despachar", mostradorMW, cocinaH.Despachar)

		// Cocina
		cocina := v1.Group("/cocina", middleware.RequireRole("admin", "cocina"))
		{
			cocina.GET("/pedidos", cocinaH.Listar)
			cocina.PATCH("/pedidos/:id", cocinaH.ActualizarEstado)
		}

		// Stock
		stock := v1.Group("/stock")
		{
			stock.GET("/ingredientes", cajaMW, stockH.ListarIngredientes)
			stock.GET("/ingredientes/:id", cajaMW, stockH.DetalleIngrediente)
			stock.GET("/alertas", cajaMW, stockH.Alertas)
			stock.GET("/movimientos", cajaMW, stockH.ListarMovimientos)
			stock.POST("/ingredientes", adminMW, stockH.CrearIngrediente)
			stock.POST("/movimientos", adminMW, stockH.RegistrarMovimiento)
			stock.GET("/ingredientes/:id/consistencia", adminMW, stockH.VerificarConsistencia)
		}

		// Catálogo — lectura para todos, escritura solo admin
		v1.GET("/productos", todos, catalogoH.ListarProductos)
		v1.GET("/productos/:id", todos, catalogoH.DetalleProducto)
		v1.GET("/productos/:id/precio", todos, catalogoH.PrecioVigente)
		v1.GET("/productos/:id/receta", todos, catalogoH.DetalleReceta)
		catalogo := v1.Group("", adminMW)
		{
			catalogo.POST("/productos", catalogoH.CrearProducto)
			catalogo.PUT("/productos/:id", catalogoH.ActualizarProducto)
			catalogo.PUT("/recetas", catalogoH.GuardarReceta)
			catalogo.POST("/subingredientes", catalogoH.CrearSubIngrediente)
			catalogo.POST("/listas-precio", catalogoH.CrearLista)
			catalogo.POST("/listas-precio/:id/activar", catalogoH.ActivarLista)
			catalogo.PUT("/listas-precio/items", catalogoH.SetListaItem)
		}

		// Categorías
		v1.GET("/categorias", todos, categoriasH.Arbol)
		v1.GET("/categorias/:id/descendientes", todos, categoriasH.Descendientes)
		v1.POST("/categorias", adminMW, categoriasH.Crear)

		// Clientes
		clientes := v1.Group("/clientes", mostradorMW)
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.Detalle)
			clientes.PUT("/:id", clientesH.Actualizar)
		}

		// Mesas
		v1.GET("/mesas", todos, mesasH.Listar)
		v1.POST("/mesas", adminMW, mesasH.Crear)
		v1.PUT("/mesas/:id/camarero/:camarero_id", cajaMW, mesasH.AsignarCamarero)

		// Gastos y proveedores
		v1.POST("/gastos", cajaMW, gastosH.Crear)
		v1.GET("/gastos/:id", cajaMW, gastosH.Detalle)
		v1.POST("/proveedores", adminMW, gastosH.CrearProveedor)
		v1.GET("/proveedores", cajaMW, gastosH.ListarProveedores)

		// Usuarios
		usuarios := v1.Group("/usuarios", adminMW)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
