package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/camel-tools-api/camel-api/internal/analysis/domain"
	"github.com/camel-tools-api/camel-api/internal/analysis/service"
	"github.com/camel-tools-api/camel-api/internal/bootstrap"
	"github.com/camel-tools-api/camel-api/internal/nlp/morphology"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	var flag string

	cmd := &cobra.Command{
		Use:   "analyze --flag <operation> <text...>",
		Short: "Analyze text with one operation and print the JSON response",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")

			tk, _, err := bootstrap.LoadToolkit(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			svc, err := service.NewAnalysisService(tk, nil, nil, nil, service.DefaultOptions())
			if err != nil {
				return err
			}

			req := domain.AnalysisRequest{Text: strings.Join(args, " "), Flag: flag}
			resp, err := svc.Analyze(cmd.Context(), req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			return enc.Encode(resp)
		},
	}

	cmd.Flags().StringVar(&flag, "flag", "", "operation: tokenizer, tagger, disambig, dediac or root_stem")
	_ = cmd.MarkFlagRequired("flag")
	return cmd
}

func newOperationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List the supported operations",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, op := range domain.Operations {
				fmt.Fprintln(cmd.OutOrStdout(), op)
			}
		},
	}
}

func newExportDBCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export-db --out <file.db>",
		Short: "Write the morphology lexicon to a SQLite file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New("--out is required")
			}
			dbPath, _ := cmd.Flags().GetString("db")

			db, err := morphology.Open(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			if err := morphology.SaveSQLite(cmd.Context(), out, db); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d stems to %s\n", db.Size(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "destination SQLite file")
	return cmd
}
