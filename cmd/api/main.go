package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"github.com/prakoso/catalog-manager-be/internal/config"
	"github.com/prakoso/catalog-manager-be/internal/handlers"
	"github.com/prakoso/catalog-manager-be/internal/media"
	"github.com/prakoso/catalog-manager-be/internal/realtime"
	"github.com/prakoso/catalog-manager-be/internal/remote"
	"github.com/prakoso/catalog-manager-be/internal/session"
	"github.com/prakoso/catalog-manager-be/internal/storage"
)

func newSlot(cfg config.Config) storage.Slot {
	switch cfg.CatalogBackend {
	case "postgres":
		gdb, err := storage.ConnectPostgres(cfg.DBDSN)
		if err != nil {
			log.Fatal("Postgres connect failed:", err)
		}
		slot, err := storage.NewPostgresSlot(gdb)
		if err != nil {
			log.Fatal("Postgres migrate failed:", err)
		}
		log.Println("Catalog storage: postgres")
		return slot

	case "memory":
		log.Println("Catalog storage: memory (catalogs are lost on restart)")
		return storage.NewMemorySlot()

	default:
		rdb := storage.NewRedisClient()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Redis not reachable:", err)
		}
		log.Println("Catalog storage: redis")
		return storage.NewRedisSlot(rdb)
	}
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	slot := newSlot(cfg)

	sessionTTL := time.Duration(cfg.SessionTTLMin) * time.Minute
	registry := session.NewRegistry(slot, sessionTTL)
	go registry.Run(context.Background())

	hub := realtime.NewHub()
	go hub.Run()

	mediaClient := media.NewClient(cfg.MediaUploadURL, cfg.MediaDeleteURL)
	remoteClient := remote.NewClient(cfg.RemoteBaseURL)

	productH := handlers.NewProductHandler(hub, mediaClient)
	variantH := handlers.NewVariantHandler(hub)
	browseH := handlers.NewBrowseHandler(remoteClient)
	imageH := handlers.NewImageHandler(mediaClient)
	sessionH := handlers.NewSessionHandler()
	feedH := handlers.NewFeedHandler(hub, cfg.SessionSecret)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))

	api := app.Group("/api", session.Attach(registry, cfg.SessionSecret, sessionTTL))

	api.Get("/session", sessionH.Me)

	// remote catalog browsing
	api.Get("/browse/products", browseH.Products)
	api.Get("/browse/categories", browseH.Categories)

	// personal catalog
	cat := api.Group("/catalog")
	cat.Get("/products", productH.List)
	cat.Post("/products", productH.Create)
	cat.Post("/products/import", productH.Import)
	cat.Put("/products/:id", productH.Update)
	cat.Delete("/products/:id", productH.Delete)

	cat.Post("/variants", variantH.Create)
	cat.Put("/variants/:id", variantH.Update)
	cat.Delete("/variants/:id", variantH.Delete)

	// media host passthrough
	api.Post("/image/upload", imageH.Upload)
	api.Post("/image/delete", imageH.Delete)

	// change feed (session comes from the cookie, not the middleware)
	app.Get("/ws/catalog", websocket.New(feedH.CatalogFeed))

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
