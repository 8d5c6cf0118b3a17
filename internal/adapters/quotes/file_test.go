package quotes

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/daily-quote-bot/internal/domain"
)

func writeQuotes(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "quotes.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeQuotes(t, `["Buy the dip.", "  padded  ", "Buy the dip."]`)

	list, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Buy the dip.", "  padded  ", "Buy the dip."}, list.Items())
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeQuotes(t, "- first\n- \"second: with colon\"\n")

	list, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second: with colon"}, list.Items())
}

func TestLoadFile_Empty(t *testing.T) {
	for name, content := range map[string]string{
		"empty array": "[]",
		"empty file":  "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFile(writeQuotes(t, content))
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestLoadFile_NotSequence(t *testing.T) {
	for name, content := range map[string]string{
		"object":      `{"quotes": ["a"]}`,
		"scalar":      `"just one"`,
		"number item": `["a", 5]`,
		"nested list": `[["a"]]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFile(writeQuotes(t, content))
			assert.ErrorIs(t, err, ErrNotSequence)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile_Malformed(t *testing.T) {
	_, err := LoadFile(writeQuotes(t, `["unterminated`))
	assert.Error(t, err)
}

func TestLoad_InlineWins(t *testing.T) {
	list, err := Load([]string{"inline"}, filepath.Join(t.TempDir(), "ignored.json"))
	require.NoError(t, err)

	assert.Equal(t, []string{"inline"}, list.Items())
}

func TestLoad_NothingConfigured(t *testing.T) {
	_, err := Load(nil, "")
	assert.True(t, domain.IsValidation(err))
}

func TestParse_JSONEscapes(t *testing.T) {
	faker := gofakeit.New(7)

	want := make([]string, 25)
	for i := range want {
		want[i] = faker.Quote()
	}

	// json.Marshal escapes quotes and <>& the way a hand-edited quotes.json might.
	doc, err := json.Marshal(want)
	require.NoError(t, err)

	got, err := Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParse_JSONOnlyEscapes(t *testing.T) {
	// Python's json.dump writes non-BMP characters as surrogate pairs.
	got, err := Parse([]byte(`["hodl \ud83d\ude00 to the \uD83D\uDE80", "a\/b"]`))
	require.NoError(t, err)

	assert.Equal(t, []string{"hodl 😀 to the 🚀", "a/b"}, got)
}

func TestLoadFile_YAMLFlowSequence(t *testing.T) {
	path := writeQuotes(t, "[plain, 'single quoted']\n")

	list, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"plain", "single quoted"}, list.Items())
}
