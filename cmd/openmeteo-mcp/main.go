package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"openmeteo-mcp/internal/config"
	"openmeteo-mcp/internal/openmeteo"
	"openmeteo-mcp/internal/server"
)

func main() {
	// All logging goes to stderr; stdout belongs to the JSON-RPC stream in
	// stdio mode.
	log.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	client := openmeteo.NewClient(openmeteo.Config{
		HTTPClient:     &http.Client{Timeout: cfg.HTTPTimeout},
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		CircuitBreaker: cfg.CircuitBreaker,
	})

	srv := server.New(client)

	// A single positional argument selects the transport; stdio is the
	// default for MCP hosts.
	transport := "stdio"
	if len(os.Args) > 1 && (os.Args[1] == "http" || os.Args[1] == "--http") {
		transport = "http"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if transport == "stdio" {
		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
			log.Fatalf("stdio server stopped: %v", err)
		}
		return
	}

	runHTTP(ctx, srv, cfg.Port)
}

// runHTTP serves the MCP streamable HTTP transport behind a fiber app with
// graceful shutdown.
func runHTTP(ctx context.Context, srv *mcp.Server, port string) {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return srv
	}, nil)

	app := fiber.New(fiber.Config{
		AppName:               "openmeteo-mcp",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "openmeteo-mcp",
		})
	})

	app.All("/mcp", adaptor.HTTPHandler(handler))

	go func() {
		log.Printf("HTTP transport listening on :%s", port)
		if err := app.Listen(":" + port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
