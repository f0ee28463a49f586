package cli

import (
	"fmt"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/doctor"
	"github.com/spf13/cobra"
)

// newDoctor is replaceable in tests.
var newDoctor = doctor.New

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check installer prerequisites and the user catalog",
	Long: `Verify that node, npm, npx and uvx are on PATH, that Node.js is recent enough
for the npx-based installers, and that the user catalog file is valid.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Environment:")
		checks := newDoctor(a.store.Path()).Run(cmd.Context())
		doctor.Print(cmd.OutOrStdout(), checks)

		if !doctor.Healthy(checks) {
			return fmt.Errorf("some checks failed")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "\nAll checks passed.")
		return nil
	},
}
