package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/gridwell/mcp-pdf-tables/internal/config"
	"github.com/gridwell/mcp-pdf-tables/internal/mcp"
	"github.com/gridwell/mcp-pdf-tables/internal/pdf"
)

// Injected via -ldflags at release time.
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// setupLogging routes the standard logger per transport mode. Stdio mode
// shares stdout with the MCP protocol, so logs go to stderr when debugging
// and are discarded otherwise.
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		log.SetOutput(os.Stderr)
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
	} else {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// runServerMode runs the server until it fails or a termination signal
// arrives, then cancels the context and waits for the run loop to return.
func runServerMode(ctx context.Context, cancel context.CancelFunc, server *mcp.Server) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run(ctx)
	}()

	select {
	case sig := <-sigCh:
		log.Printf("Caught %s, shutting down", sig)
		cancel()

		if err := <-errCh; err != nil {
			log.Printf("Shutdown finished with error: %v", err)
			os.Exit(1)
		}

	case err := <-errCh:
		if err != nil {
			log.Printf("Server exited: %v", err)
			os.Exit(1)
		}
	}

	log.Println("Shutdown complete")
}

// runStdioMode serves the MCP protocol over stdin/stdout. The client owns
// the process lifecycle; we exit when stdin closes or the loop errors.
func runStdioMode(ctx context.Context, _ context.CancelFunc, server *mcp.Server) {
	if err := server.Run(ctx); err != nil {
		// stdout belongs to the protocol, so only stderr in debug.
		if os.Getenv("DEBUG") != "" {
			log.Printf("Stdio loop exited: %v", err)
		}
		os.Exit(1)
	}
}

func main() {
	// The version flags short-circuit before config parsing so they work
	// without a valid environment.
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	setupLogging(cfg)

	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() && cfg.IsServerMode() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	pdfService, err := pdf.NewService(cfg.MaxFileSize, cfg.PDFDirectory)
	if err != nil {
		log.Fatalf("PDF service init failed: %v", err)
	}

	server, err := mcp.NewServer(cfg, pdfService)
	if err != nil {
		log.Fatalf("MCP server init failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsServerMode() {
		runServerMode(ctx, cancel, server)
	} else {
		runStdioMode(ctx, cancel, server)
	}
}

func printVersion() {
	fmt.Printf("MCP PDF Tables\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
