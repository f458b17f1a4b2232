package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	posUseCase "github.com/TSaugineta225/vendendo-facil/src/pos/application/usecase"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/port"
	posCache "github.com/TSaugineta225/vendendo-facil/src/pos/infrastructure/cache"
	posController "github.com/TSaugineta225/vendendo-facil/src/pos/infrastructure/controller"
	posMetrics "github.com/TSaugineta225/vendendo-facil/src/pos/infrastructure/metrics"
	"github.com/TSaugineta225/vendendo-facil/src/pos/infrastructure/middleware"
	posPersistence "github.com/TSaugineta225/vendendo-facil/src/pos/infrastructure/persistence"
	"github.com/TSaugineta225/vendendo-facil/src/pos/infrastructure/persistence/memory"
	sharedConfig "github.com/TSaugineta225/vendendo-facil/src/shared/infrastructure/config"
	"github.com/TSaugineta225/vendendo-facil/src/shared/infrastructure/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq" // Driver de PostgreSQL
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	serviceName    = "vendendo-facil-pos"
	serviceVersion = "1.0.0"
	janitorEvery   = time.Minute
)

// repositories agrupa los puertos del PDV, sea Postgres o memoria
type repositories struct {
	products  port.ProductRepository
	sales     port.SaleRepository
	customers port.CustomerRepository
	settings  port.SettingsRepository
}

func main() {
	log.Println("🚀 POS Service - Iniciando...")

	cfg, err := sharedConfig.Load(os.Getenv("POS_CONFIG_FILE"))
	if err != nil {
		log.Fatalf("❌ Error al cargar la configuración: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Trazas a stdout si está habilitado
	if cfg.TracingStdout {
		shutdown, err := telemetry.Setup(serviceName, serviceVersion, os.Stdout)
		if err != nil {
			log.Printf("⚠️  Advertencia: No se pudo iniciar el tracing: %v", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	// Configurar el router con Gin
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Configurar Prometheus metrics si está habilitado
	var saleMetrics *posMetrics.SaleMetrics
	if cfg.PrometheusEnabled {
		log.Println("Registering /metrics endpoint for POS service")
		saleMetrics = posMetrics.NewSaleMetrics(nil)
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	} else {
		log.Println("Prometheus metrics disabled for POS service")
	}

	// Configurar GZIP y otros middlewares compartidos
	sharedConfig.SetupSharedMiddleware(router, sharedConfig.DefaultSharedConfig())

	db := connectDB(cfg.Database)
	if db != nil {
		defer db.Close()
	}

	repos := newRepositories(db)
	if cfg.RedisAddr != "" {
		repos.products = withProductCache(ctx, repos.products, cfg.RedisAddr, cfg.ProductCacheTTL)
	}

	// API v1 grupo de rutas
	v1 := router.Group("/api/v1")
	posController.NewHealthController(db, serviceVersion).RegisterRoutes(router, v1)

	cartUC := setupPOSModule(ctx, v1.Group("", middleware.Identity()), repos, saleMetrics, cfg)
	go cartUC.RunJanitor(ctx, janitorEvery)

	var handler http.Handler = router
	if cfg.TracingStdout {
		handler = telemetry.WrapHandler(router, serviceName)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Println("🛑 Deteniendo el servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("⚠️  Error al detener el servidor: %v", err)
		}
	}()

	log.Printf("✅ Servidor POS Service iniciado en http://localhost:%s", cfg.Port)
	log.Printf("✅ Health endpoint: GET http://localhost:%s/health", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("❌ Error del servidor: %v", err)
	}
}

// connectDB abre la conexión a PostgreSQL; nil si no está disponible
func connectDB(dbCfg sharedConfig.DatabaseConfig) *sql.DB {
	log.Printf("Intentando conectar a %s en %s:%s", dbCfg.Name, dbCfg.Host, dbCfg.Port)

	db, err := sql.Open("postgres", dbCfg.DSN())
	if err != nil {
		log.Printf("⚠️  Advertencia: Error al conectar a la base de datos: %v", err)
		return nil
	}
	if err := db.Ping(); err != nil {
		log.Printf("⚠️  Advertencia: Error al verificar la conexión a la base de datos: %v", err)
		db.Close()
		return nil
	}
	log.Printf("✅ Conexión a %s establecida con éxito", dbCfg.Name)
	return db
}

func newRepositories(db *sql.DB) repositories {
	if db == nil {
		log.Println("⚠️  Continuando con almacenamiento en memoria y catálogo de demostración")
		store := memory.NewSeeded()
		return repositories{
			products:  store.Products(),
			sales:     store.Sales(),
			customers: store.Customers(),
			settings:  store.Settings(),
		}
	}
	return repositories{
		products:  posPersistence.NewProductPostgresRepository(db),
		sales:     posPersistence.NewSalePostgresRepository(db),
		customers: posPersistence.NewCustomerPostgresRepository(db),
		settings:  posPersistence.NewSettingsPostgresRepository(db),
	}
}

// withProductCache envuelve el catálogo con Redis si responde
func withProductCache(ctx context.Context, products port.ProductRepository, addr string, ttl time.Duration) port.ProductRepository {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Redis no disponible en %s, cache de productos deshabilitado: %v", addr, err)
		client.Close()
		return products
	}
	log.Printf("✅ Cache de productos en Redis (%s, TTL %s)", addr, ttl)
	return posCache.NewProductCache(products, client, posCache.WithProductTTL(ttl))
}

// seedSettings escribe los valores iniciales que aún no existen en la tienda
func seedSettings(ctx context.Context, repo port.SettingsRepository, values map[string]string) {
	if len(values) == 0 {
		return
	}
	current, err := repo.All(ctx)
	if err != nil {
		log.Printf("⚠️  No se pudieron leer las configuraciones para el seed: %v", err)
		return
	}
	for key, value := range values {
		if _, ok := current[key]; ok {
			continue
		}
		if err := repo.Upsert(ctx, key, value); err != nil {
			log.Printf("⚠️  Seed de %s falló: %v", key, err)
		}
	}
}

// setupPOSModule configura el módulo POS y retorna el gestor de carritos
func setupPOSModule(
	ctx context.Context,
	router *gin.RouterGroup,
	repos repositories,
	saleMetrics *posMetrics.SaleMetrics,
	cfg *sharedConfig.Config,
) *posUseCase.CartSessionUseCase {
	log.Println("Configurando módulo POS...")

	seedSettings(ctx, repos.settings, cfg.Settings)
	settingsCache := posCache.NewSettingsCache(repos.settings)
	if err := settingsCache.Load(ctx); err != nil {
		log.Println("⚠️  Usando configuración por defecto de la tienda")
	}

	// Crear casos de uso
	submitUC := posUseCase.NewSubmitSaleUseCase(repos.sales, repos.products, saleMetrics)
	cartUC := posUseCase.NewCartSessionUseCase(repos.products, submitUC, settingsCache, saleMetrics, cfg.CartSessionTTL)
	historyUC := posUseCase.NewSalesHistoryUseCase(repos.sales, repos.customers)
	receiptUC := posUseCase.NewSaleReceiptUseCase(historyUC, settingsCache)
	exportUC := posUseCase.NewExportSalesCSVUseCase(repos.sales, repos.customers)
	dailyReportUC := posUseCase.NewDailyReportUseCase(repos.sales)
	inventoryUC := posUseCase.NewInventoryUseCase(repos.products)
	customersUC := posUseCase.NewCustomersUseCase(repos.customers)

	// Registrar rutas
	posController.NewProductController(inventoryUC).RegisterRoutes(router)
	posController.NewCartController(cartUC, historyUC).RegisterRoutes(router)
	posController.NewSaleController(historyUC, receiptUC, exportUC).RegisterRoutes(router)
	posController.NewReportController(dailyReportUC).RegisterRoutes(router)
	posController.NewCustomerController(customersUC).RegisterRoutes(router)
	posController.NewSettingsController(settingsCache).RegisterRoutes(router)

	log.Println("Módulo POS configurado exitosamente")
	return cartUC
}
