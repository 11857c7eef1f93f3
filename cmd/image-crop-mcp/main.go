package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/image-crop-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-crop-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-crop-mcp - MCP server for interactive image cropping")
			fmt.Println()
			fmt.Println("Usage: image-crop-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_CROP_MCP_LOG_LEVEL=debug       Log level (debug, info, warn, error)")
			fmt.Println("  IMAGE_CROP_MCP_OUTPUT_DIR=<dir>      Where committed crops are written")
			fmt.Println("  IMAGE_CROP_MCP_FORMAT=png            Default output format (png, jpeg)")
			fmt.Println("  IMAGE_CROP_MCP_JPEG_QUALITY=90       Default JPEG quality (1-100)")
			fmt.Println("  IMAGE_CROP_MCP_HANDLE_RADIUS=10      Corner handle hit radius in display pixels")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	logger := NewLogger(ParseLevel(os.Getenv("IMAGE_CROP_MCP_LOG_LEVEL")))
	logger.Debug("starting image-crop-mcp", "version", Version, "built", BuildTime, "commit", GitCommit)

	cfg, err := server.ConfigFromEnv()
	if err != nil {
		logger.Warn("ignoring invalid configuration", "error", err)
	}
	logger.Debug("configuration", "output_dir", cfg.OutputDir, "format", cfg.Format,
		"jpeg_quality", cfg.JPEGQuality, "handle_radius", cfg.HandleRadius)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server.Version = Version
	srv := server.NewWithConfig(cfg, logger)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
