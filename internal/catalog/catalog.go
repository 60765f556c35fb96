// Package catalog loads and validates the word catalog used to seed the store.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/aliskhannn/vocab-quiz/internal/domain"
	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// MaxTextLength is the longest source or target text the schema accepts.
const MaxTextLength = 64

var ErrUnsupportedFormat = errors.New("unsupported catalog format")

//go:embed data/words.json
var defaultCatalog []byte

// record is the on-disk shape of a catalog entry.
type record struct {
	Source     string `json:"source"`
	Target     string `json:"target"`
	Difficulty int    `json:"difficulty"`
}

// Default returns the catalog bundled with the binary.
func Default() ([]entities.Word, error) {
	return ParseJSON(bytes.NewReader(defaultCatalog))
}

// LoadFile reads a catalog from a .json or .xlsx file.
func LoadFile(path string) ([]entities.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ParseJSON(f)
	case ".xlsx":
		return ParseXLSX(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ParseJSON reads an array of {"source", "target", "difficulty"} objects.
func ParseJSON(r io.Reader) ([]entities.Word, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	words := make([]entities.Word, 0, len(records))
	for i, rec := range records {
		w := entities.Word{
			Source:     strings.TrimSpace(rec.Source),
			Target:     strings.TrimSpace(rec.Target),
			Difficulty: entities.Difficulty(rec.Difficulty),
		}
		if err := Validate(w); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		words = append(words, w)
	}

	return words, nil
}

// ParseXLSX reads the first sheet of a workbook. Columns are source, target and
// difficulty; the first row is a header. Blank rows are skipped.
func ParseXLSX(r io.Reader) ([]entities.Word, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrUnsupportedFormat)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	var words []entities.Word
	for i, row := range rows {
		if i == 0 || isBlank(row) {
			continue
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("row %d: expected 3 columns, got %d: %w", i+1, len(row), domain.ErrValidation)
		}

		difficulty, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("row %d: difficulty %q: %w", i+1, row[2], domain.ErrValidation)
		}

		w := entities.Word{
			Source:     strings.TrimSpace(row[0]),
			Target:     strings.TrimSpace(row[1]),
			Difficulty: entities.Difficulty(difficulty),
		}
		if err := Validate(w); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		words = append(words, w)
	}

	return words, nil
}

// Validate checks a single entry against the catalog constraints.
func Validate(w entities.Word) error {
	switch {
	case w.Source == "" || w.Target == "":
		return fmt.Errorf("empty text: %w", domain.ErrValidation)
	case utf8.RuneCountInString(w.Source) > MaxTextLength || utf8.RuneCountInString(w.Target) > MaxTextLength:
		return fmt.Errorf("text longer than %d characters: %w", MaxTextLength, domain.ErrValidation)
	case !w.Difficulty.Valid():
		return fmt.Errorf("difficulty %d out of range: %w", w.Difficulty, domain.ErrValidation)
	}
	return nil
}

// ValidateAll validates every entry and reports the first failure.
func ValidateAll(words []entities.Word) error {
	for i, w := range words {
		if err := Validate(w); err != nil {
			return fmt.Errorf("word %d (%q): %w", i, w.Source, err)
		}
	}
	return nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
