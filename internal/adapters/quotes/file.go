// Package quotes loads the bot's quote list from configuration or a file.
package quotes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen/daily-quote-bot/internal/domain"
)

// ErrNotSequence is returned when a quotes file holds something other than a list.
var ErrNotSequence = errors.New("quotes file must contain a list of strings")

// Load returns the inline items when any are configured, else the contents of path.
func Load(items []string, path string) (*domain.QuoteList, error) {
	if len(items) > 0 {
		return domain.NewQuoteList(items)
	}

	if path == "" {
		return nil, domain.NewValidationError("quotes", "neither quotes.items nor quotes.file is set")
	}

	return LoadFile(path)
}

// LoadFile reads a JSON or YAML sequence of strings. Entries are kept as written,
// whitespace and duplicates included.
func LoadFile(path string) (*domain.QuoteList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading quotes file: %w", err)
	}

	items, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing quotes file %q: %w", path, err)
	}

	return domain.NewQuoteList(items)
}

// Parse decodes a document holding a sequence of string scalars.
// Valid JSON is decoded as JSON; anything else goes through the YAML parser.
func Parse(data []byte) ([]string, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && json.Valid(trimmed) {
		return parseJSON(trimmed)
	}

	return parseYAML(data)
}

// parseJSON handles the escapes YAML rejects, such as \/ and surrogate pairs.
func parseJSON(data []byte) ([]string, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	if doc == nil {
		return nil, nil
	}

	entries, ok := doc.([]any)
	if !ok {
		return nil, ErrNotSequence
	}

	items := make([]string, 0, len(entries))
	for i, e := range entries {
		s, ok := e.(string)
		if !ok {
			return nil, fmt.Errorf("entry %d: %w", i, ErrNotSequence)
		}
		items = append(items, s)
	}

	return items, nil
}

func parseYAML(data []byte) ([]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	// An empty document decodes to a zero node.
	if doc.Kind == 0 {
		return nil, nil
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}

	if root.Kind != yaml.SequenceNode {
		return nil, ErrNotSequence
	}

	items := make([]string, 0, len(root.Content))
	for i, n := range root.Content {
		if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrNotSequence)
		}
		items = append(items, n.Value)
	}

	return items, nil
}
