package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AdeebIsmail/PandaExpressPOS/internal/auth"
	"github.com/AdeebIsmail/PandaExpressPOS/internal/catalog"
	"github.com/AdeebIsmail/PandaExpressPOS/internal/db"
	"github.com/AdeebIsmail/PandaExpressPOS/internal/inventory"
	"github.com/AdeebIsmail/PandaExpressPOS/internal/middleware"
	"github.com/AdeebIsmail/PandaExpressPOS/internal/order"
	"github.com/AdeebIsmail/PandaExpressPOS/internal/receipts"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	zerolog.TimeFieldFormat = time.RFC3339
	if os.Getenv("APP_ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
	}
	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatal().Str("var", k).Msg("missing env var")
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pool := db.ConnectPostgres()
	defer pool.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── RECEIPT ARCHIVE ─────────────────────────
	archiveClient, err := receipts.NewArchiver(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("receipt archive init failed")
	}
	var archiver order.ReceiptArchiver
	if archiveClient != nil {
		archiver = archiveClient
	}

	// ───────────────────────── AUTH ─────────────────────────
	employeeRepo := auth.NewPostgresEmployeeRepository(pool)
	authService := auth.NewService(employeeRepo)
	authHandler := auth.NewHandler(authService)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ───────────────────────── CATALOG ─────────────────────────
	catalogRepo := catalog.NewPostgresRepository(pool)
	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	r.GET("/menu/:category", catalogHandler.GetMenu)
	r.GET("/premium-entrees", catalogHandler.GetPremiumEntrees)

	// ───────────────────────── INVENTORY ─────────────────────────
	inventoryRepo := inventory.NewPostgresRepository(pool)
	inventoryHandler := inventory.NewHandler(inventoryRepo)

	// ───────────────────────── ORDERING CORE ─────────────────────────
	store := order.NewPostgresStore(pool)
	pricer := order.NewPricer(catalogService)
	orchestrator := order.NewOrchestrator(store, inventoryRepo, pricer, archiver)
	sessions := order.NewSessionRegistry()
	orderHandler := order.NewHandler(orchestrator, sessions, catalogService)

	pos := r.Group("/pos")
	pos.Use(middleware.AuthMiddleware())
	{
		pos.POST("/sessions", orderHandler.OpenSession)

		session := pos.Group("/sessions/:id")
		{
			session.GET("/cart", orderHandler.GetCart)
			session.POST("/combos", orderHandler.StartCombo)
			session.POST("/combos/toggle", orderHandler.ToggleItem)
			session.POST("/combos/confirm", orderHandler.ConfirmCombo)
			session.POST("/alacarte", orderHandler.AddALaCarte)
			session.POST("/cart/remove", orderHandler.RemoveLine)
			session.POST("/cart/clear", orderHandler.ClearCart)

			session.POST("/checkout", orderHandler.BeginCheckout)
			session.POST("/checkout/payment", orderHandler.SetPaymentMethod)
			session.POST("/checkout/customer", orderHandler.SetCustomerInfo)
			session.POST("/checkout/finalize", orderHandler.Finalize)
			session.POST("/checkout/cancel", orderHandler.Cancel)
			session.GET("/receipt", orderHandler.GetReceipt)
		}
	}

	// ───────────────────────── MANAGER ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleManager),
	)
	{
		admin.GET("/inventory", inventoryHandler.GetLevels)
		admin.GET("/transactions/latest", orderHandler.GetLatestTransactionID)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	log.Info().Msg("POS API running at http://localhost:8000")
	if err := r.Run(":8000"); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
