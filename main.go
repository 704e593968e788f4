package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipebox/db"
	"recipebox/fixtures"
	"recipebox/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"
)

func main() {
	loadFixtures := flag.Bool("fixtures", false, "seed demo data and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "database.db"
	}
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":3000"
	}

	// Initialize database
	db.InitDatabase(dbPath)

	if *loadFixtures {
		if err := fixtures.LoadTags(db.DB, time.Now().UnixNano()); err != nil {
			log.Fatal("Failed to load fixtures:", err)
		}
		log.Printf("Loaded %d tags", fixtures.TagCount)
		return
	}

	// Create uploads directory if it doesn't exist
	if _, err := os.Stat("uploads"); os.IsNotExist(err) {
		os.Mkdir("uploads", 0755)
	}

	// Create Fiber app with server-rendered views
	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
	})

	// Middleware
	app.Use(logger.New())
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
	}))

	// Serve static files
	app.Static("/uploads", "./uploads")

	store := session.New(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})

	// Setup routes
	routes.SetupRoutes(app, store)

	go func() {
		log.Println("Server started on", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("Could not listen on %s: %v", addr, err)
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)
	<-shutdownChan

	log.Println("Shutdown signal received, shutting down gracefully...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped cleanly")
}
