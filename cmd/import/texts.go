package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"github.com/vytor/wordflash/internal/config"
	"github.com/vytor/wordflash/internal/fetch"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/services"
	"golang.org/x/sync/errgroup"
)

type textsOptions struct {
	lang        string
	corpusSlug  string
	corpusName  string
	replace     bool
	concurrency int
	minWords    int
	maxWords    int
}

func newTextsCommand(root *rootOptions, cfg config.Config) *cobra.Command {
	opts := &textsOptions{
		concurrency: 4,
		minWords:    cfg.PassageMinWords,
		maxWords:    cfg.PassageMaxWords,
	}
	cmd := &cobra.Command{
		Use:   "texts PATH|URL...",
		Short: "Split .txt files into reading passages",
		Long: "Imports every .txt file given, found in the given directories or " +
			"downloaded from http(s) URLs. The file name becomes the source slug and title.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTexts(cmd, root, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.lang, "lang", "", "language of the texts (required)")
	cmd.Flags().StringVar(&opts.corpusSlug, "corpus", "", "corpus slug to file the texts under")
	cmd.Flags().StringVar(&opts.corpusName, "corpus-name", "", "corpus display name")
	cmd.Flags().BoolVar(&opts.replace, "replace", false, "replace sources that were already imported")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", opts.concurrency, "files read in parallel")
	cmd.Flags().IntVar(&opts.minWords, "min-words", opts.minWords, "minimum words per passage")
	cmd.Flags().IntVar(&opts.maxWords, "max-words", opts.maxWords, "maximum words per passage")
	_ = cmd.MarkFlagRequired("lang")
	return cmd
}

func runTexts(cmd *cobra.Command, root *rootOptions, opts *textsOptions, args []string) error {
	ctx := cmd.Context()
	log := logger.Default().WithPrefix("import-texts")

	files, err := collectTextFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .txt files or URLs found")
	}
	client := fetch.New()

	svc, closeDB, err := openImporter(root, services.ImportConfig{
		PassageMinWords: opts.minWords,
		PassageMaxWords: opts.maxWords,
	})
	if err != nil {
		return err
	}
	defer closeDB()

	var (
		mu                          sync.Mutex
		imported, skipped, passages int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.concurrency, 1))
	for _, path := range files {
		path := path
		g.Go(func() error {
			raw, err := readText(gctx, client, path)
			if err != nil {
				return err
			}
			slug := slugFromPath(path)
			res, err := svc.ImportText(gctx, models.TextImport{
				Slug:       slug,
				Title:      titleFromPath(path),
				Lang:       opts.lang,
				CorpusSlug: opts.corpusSlug,
				CorpusName: opts.corpusName,
				Text:       raw,
				Replace:    opts.replace,
			})
			if err != nil {
				return fmt.Errorf("import %s: %w", path, err)
			}

			mu.Lock()
			defer mu.Unlock()
			if res.Skipped {
				skipped++
				log.Info("%s: already imported, skipped", slug)
				return nil
			}
			imported++
			passages += res.Passages
			log.Info("%s: %d passages", slug, res.Passages)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d texts (%d skipped), %d passages\n", imported, len(files), skipped, passages)
	return nil
}

// readText loads a local file or downloads an http(s) URL.
func readText(ctx context.Context, client fetch.TextFetcher, path string) (string, error) {
	if isURL(path) {
		return client.FetchText(ctx, path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(raw), nil
}
