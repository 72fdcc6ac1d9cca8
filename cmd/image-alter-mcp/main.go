package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ironsheep/image-alter-mcp/internal/config"
	"github.com/ironsheep/image-alter-mcp/internal/format"
	"github.com/ironsheep/image-alter-mcp/internal/imaging"
	"github.com/ironsheep/image-alter-mcp/internal/observability"
	"github.com/ironsheep/image-alter-mcp/internal/pipeline"
	"github.com/ironsheep/image-alter-mcp/internal/processor"
	"github.com/ironsheep/image-alter-mcp/internal/server"
	"github.com/ironsheep/image-alter-mcp/internal/transform"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := ""
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-alter-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "--config", "-c":
			if len(os.Args) < 3 {
				fmt.Fprintln(os.Stderr, "--config requires a path")
				os.Exit(2)
			}
			configPath = os.Args[2]
		}
	}

	if err := run(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "image-alter-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := observability.SetupLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("commit", GitCommit))

	codec := imaging.NewCodec()
	formats := format.New(codec.Formats())
	logger.Info(formats.String())

	transforms := transform.Builtin()
	exec := pipeline.NewExecutor(transforms, logger)
	proc := processor.New(codec, formats, exec, logger)

	srv := server.New(cfg, server.Deps{
		Processor:  proc,
		Formats:    formats,
		Transforms: transforms,
		Logger:     logger,
	})
	defer func() {
		if err := srv.Close(); err != nil {
			logger.Warn("cleanup failed", zap.Error(err))
		}
	}()

	logger.Debug("session directory", zap.String("dir", srv.SessionDir()))
	if err := srv.Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func printHelp() {
	fmt.Println("image-alter-mcp - MCP server for image transformation")
	fmt.Println()
	fmt.Println("Usage: image-alter-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config, -c PATH  Read configuration from PATH")
	fmt.Println("  --version, -v      Print version information")
	fmt.Println("  --help, -h         Print this help message")
	fmt.Println()
	fmt.Println("Configuration is read from image-alter.yaml in ., ./configs or")
	fmt.Println("~/.image-alter unless --config or IMAGE_ALTER_CONFIG is set.")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  IMAGE_ALTER_LOG_LEVEL=debug        Enable debug logging")
	fmt.Println("  IMAGE_ALTER_TEMP_DIR=/path         Where output images are written")
	fmt.Println("  IMAGE_ALTER_DEFAULT_QUALITY=75     Quality when a request gives none")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
}
