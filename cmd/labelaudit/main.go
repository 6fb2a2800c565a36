// Command labelaudit verifies that a GitHub label standardization
// workflow was carried out: feature branch, label documentation,
// tracking issue and PR, label sets and the completion comment.
// Exit code 0 means every check passed; 1 means a failed check, an
// interrupt or an unexpected error.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"labelaudit/internal/config"
	"labelaudit/internal/github"
	"labelaudit/internal/rules"
	"labelaudit/internal/verify"
)

var (
	verbose   bool
	envFile   string
	rulesFile string
	repoName  string
)

var errVerificationFailed = errors.New("verification failed")

var rootCmd = &cobra.Command{
	Use:   "labelaudit",
	Short: "Verify a GitHub label standardization workflow",
	Long: `labelaudit audits a label standardization workflow against the GitHub
REST API. It runs a fixed sequence of checks — feature branch, label
documentation, tracking issue, tracking PR, label-set consistency and
completion comment — and stops at the first failure.

Requires GITHUB_TOKEN and GITHUB_ORG in the environment or a .env file.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAudit,
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to preload")
	rootCmd.Flags().StringVar(&rulesFile, "rules", "", "YAML ruleset overriding the built-in expectations")
	rootCmd.Flags().StringVar(&repoName, "repo", "", "target repository name (overrides the ruleset)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAudit(cmd *cobra.Command, _ []string) (err error) {
	// Anything escaping the pipeline maps to exit code 1, never a crash.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected error: %v", r)
		}
	}()

	zcfg := zap.NewDevelopmentConfig()
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.DisableStacktrace = true
	if !verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar().With("run_id", uuid.NewString())

	cfg := config.Load(envFile)

	rs := rules.Default()
	if rulesFile != "" {
		if rs, err = rules.Load(rulesFile); err != nil {
			return err
		}
	}
	if repoName != "" {
		rs.TargetRepo = repoName
	}

	gh := github.NewClient(cfg.Token, cfg.Org, rs.TargetRepo, log)
	pipeline := verify.New(cfg, rs, gh, log, verify.NewPrinter(os.Stdout))

	if !pipeline.Run(cmd.Context()) {
		if cmd.Context().Err() != nil {
			return fmt.Errorf("verification interrupted")
		}
		return errVerificationFailed
	}
	return nil
}
