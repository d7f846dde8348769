package models

// TextImport describes one reading text to split into passages.
type TextImport struct {
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Lang       string `json:"lang"`
	CorpusSlug string `json:"corpus_slug,omitempty"`
	CorpusName string `json:"corpus_name,omitempty"`
	Text       string `json:"text"`
	// Replace drops an existing source with the same slug first.
	Replace bool `json:"replace"`
}

type TextImportResult struct {
	SourceID int64  `json:"source_id"`
	Slug     string `json:"slug"`
	Passages int    `json:"passages"`
	Skipped  bool   `json:"skipped"`
}

// CatalogRow is one word of a frequency catalog with its translations.
type CatalogRow struct {
	Lemma        string
	Translations []string
	Rank         *int
}

type CatalogImportResult struct {
	Words        int `json:"words"`
	Translations int `json:"translations"`
	Skipped      int `json:"skipped"`
}
