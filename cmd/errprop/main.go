package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/errprop/internal/batch"
	"github.com/GriffinCanCode/errprop/internal/infrastructure/config"
	"github.com/GriffinCanCode/errprop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/errprop/internal/providers/uncertainty"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code: 0 when every job
// succeeded, 1 when any job failed, 2 on usage or setup errors.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("errprop", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("file", "", "Job file (.yaml, .yml, .toml or .json)")
	output := fs.String("output", "text", "Report format: text, json or csv")
	verbose := fs.Bool("v", false, "Log each job to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *file == "" {
		fmt.Fprintln(stderr, "errprop: -file is required")
		fs.Usage()
		return 2
	}
	out, err := batch.ParseOutput(*output)
	if err != nil {
		fmt.Fprintf(stderr, "errprop: %v\n", err)
		return 2
	}

	logCfg := logging.Config{Level: "warn", Output: stderr}
	if *verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		logger = logging.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	jobs, err := batch.LoadFile(*file)
	if err != nil {
		fmt.Fprintf(stderr, "errprop: %v\n", err)
		return 2
	}

	cfg := config.LoadOrDefault()
	runner := batch.NewRunner(uncertainty.NewCalculator(cfg.Engine.Limits()), logger.Logger)
	results, err := runner.Run(ctx, jobs)
	if err != nil {
		logger.Warn("Batch interrupted", zap.Int("completed", len(results)), zap.Error(err))
	}
	if werr := batch.Write(stdout, results, out); werr != nil {
		fmt.Fprintf(stderr, "errprop: %v\n", werr)
		return 2
	}
	if err != nil || batch.Failed(results) > 0 {
		return 1
	}
	return 0
}
