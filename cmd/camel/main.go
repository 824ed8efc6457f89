package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "camel",
		Short:        "Run Arabic text analysis locally without the HTTP server",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional
			_ = godotenv.Load()
			return nil
		},
	}

	root.PersistentFlags().String("db", os.Getenv("MORPHOLOGY_DB"), "morphology lexicon (.yaml or .db), builtin when empty")

	root.AddCommand(newAnalyzeCmd(), newOperationsCmd(), newExportDBCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
