package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"SunCatalog/internal/config"
)

const service = "catalog"

var envFile string

var rootCmd = &cobra.Command{
	Use:           "catalog",
	Short:         "Sunscreen product catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return config.LoadDotEnv(envFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
