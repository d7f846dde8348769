package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	data := "word,translation,rank\n" +
		"дом,house; home,1\n" +
		",orphan,5\n" +
		"кот,cat,\n"

	rows, err := ReadCSV(strings.NewReader(data), DefaultConfig())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "дом", rows[0].Lemma)
	assert.Equal(t, []string{"house", "home"}, rows[0].Translations)
	require.NotNil(t, rows[0].Rank)
	assert.Equal(t, 1, *rows[0].Rank)

	assert.Equal(t, "кот", rows[1].Lemma)
	assert.Nil(t, rows[1].Rank)
}

func TestReadCSV_InvalidRank(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("word,translation,rank\nдом,house,first\n"), DefaultConfig())
	assert.ErrorContains(t, err, "row 2")
}

func TestReadCSV_RowOrderRank(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RankColumn = -1
	cfg.StartRow = 1

	rows, err := ReadCSV(strings.NewReader("один,one\nдва,two\n"), cfg)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, *rows[1].Rank)
}

func TestReadExcel(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"word", "translation", "rank"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"дом", "house", 1}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"кот", "cat;kitty", 2}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := ReadExcel(buf, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "кот", rows[1].Lemma)
	assert.Equal(t, []string{"cat", "kitty"}, rows[1].Translations)
	assert.Equal(t, 2, *rows[1].Rank)
}
