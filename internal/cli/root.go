package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/branding"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagYes      bool
	flagAgent    string
	flagLogLevel string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Accept the default answer for every prompt")
	rootCmd.PersistentFlags().StringVar(&flagAgent, "agent", "", "Target assistant (antigravity, claude, cursor, gemini, kiro)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` bootstraps spec-driven development projects and injects
AI skill packs into them. Installers run in a scratch directory and their output is
merged into the project under the selected assistant's folder without overwriting
existing files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with build info injected via ldflags.
// SIGINT and SIGTERM cancel the command context.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		newPrinter(rootCmd.ErrOrStderr()).Error("Error: %v", err)
	}
	return err
}
