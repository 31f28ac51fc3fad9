package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autoduo",
	Short: "Automated solver for browser math exercises",
	Long: "Autoduo attaches to a browser session, watches the page for math\n" +
		"exercise widgets, solves them, and performs the answers. A terminal\n" +
		"panel shows the run status and the solver log.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides AUTODUO_CONFIG env var)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log at debug level")

	rootCmd.Flags().String("attach", "", "DevTools websocket URL of a running browser to attach to")
	rootCmd.Flags().Bool("headless", false, "Launch the browser headless instead of attaching")
	rootCmd.Flags().String("url", "", "Page to navigate to after launching")
	rootCmd.Flags().Int("max-exercises", 0, "Stop after solving this many exercises (0 = unlimited)")
	rootCmd.Flags().Bool("dry-run", false, "Detect and solve but perform no clicks or typing")
	rootCmd.Flags().Bool("auto", false, "Start the solver loop immediately")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfigPath returns the config path using --config (highest
// priority), then the AUTODUO_CONFIG env var. Empty means defaults.
func resolveConfigPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return os.Getenv("AUTODUO_CONFIG")
}
