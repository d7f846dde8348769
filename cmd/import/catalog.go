package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/wordflash/internal/catalog"
	"github.com/vytor/wordflash/internal/services"
)

type catalogOptions struct {
	lang       string
	targetLang string
	layout     catalog.Config
}

func newCatalogCommand(root *rootOptions) *cobra.Command {
	opts := &catalogOptions{layout: catalog.DefaultConfig()}
	cmd := &cobra.Command{
		Use:   "catalog FILE",
		Short: "Import a word catalog from .xlsx or .csv",
		Long: "Reads rows of word, translations and frequency rank. Several " +
			"translations in one cell are separated by semicolons.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := catalog.ReadFile(args[0], opts.layout)
			if err != nil {
				return err
			}

			svc, closeDB, err := openImporter(root, services.ImportConfig{})
			if err != nil {
				return err
			}
			defer closeDB()

			res, err := svc.ImportCatalog(cmd.Context(), opts.lang, opts.targetLang, rows)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d words, %d translations, skipped %d rows\n",
				res.Words, res.Translations, res.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.lang, "lang", "", "language of the catalog words (required)")
	cmd.Flags().StringVar(&opts.targetLang, "target-lang", "", "language of the translations (required)")
	cmd.Flags().StringVar(&opts.layout.SheetName, "sheet", opts.layout.SheetName, "worksheet to read")
	cmd.Flags().IntVar(&opts.layout.StartRow, "start-row", opts.layout.StartRow, "first data row, 1-based")
	cmd.Flags().IntVar(&opts.layout.WordColumn, "word-col", opts.layout.WordColumn, "zero-based word column")
	cmd.Flags().IntVar(&opts.layout.TranslationColumn, "translation-col", opts.layout.TranslationColumn, "zero-based translation column")
	cmd.Flags().IntVar(&opts.layout.RankColumn, "rank-col", opts.layout.RankColumn, "zero-based rank column, -1 to rank by row order")
	_ = cmd.MarkFlagRequired("lang")
	_ = cmd.MarkFlagRequired("target-lang")
	return cmd
}
