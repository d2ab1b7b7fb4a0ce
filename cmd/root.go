package cmd

import (
	"os"

	"github.com/abhisek/bs2tutor/internal/config"
	"github.com/abhisek/bs2tutor/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bs2tutor",
	Short: "Bilingual study tutor for the BS2 course",
	Long:  "bs2tutor answers questions about the course material and quizzes you with generated single and multiple choice questions.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides BS2TUTOR_CONFIG env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BS2TUTOR_DB env var)")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config from the --config flag, then BS2TUTOR_CONFIG.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("BS2TUTOR_CONFIG")
	}
	return config.Load(path)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file, then BS2TUTOR_DB and the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
