// Package main provides the entry point for the job ad assistant: the HTTP form server
// and the one-shot generate and recover commands.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobad-assistant/internal/observability"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jobad_agent",
		Short:         "Randstad-style job ad assistant",
		Long:          "jobad_agent rewrites recruiter drafts into structured Italian job ads with an LLM, through a web form or from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "Path to a JSON or YAML config file")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")

	root.AddCommand(newServeCmd(), newGenerateCmd(), newRecoverCmd())
	return root
}

// run executes the command line and returns the process exit code.
// Errors are reported on stderr.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		observability.NewPrinter(stderr).PrintError(err.Error())
		return 1
	}
	return 0
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
