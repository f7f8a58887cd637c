package fileio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFile = errors.New("unsupported file")

// Upload: содержимое загруженного каталога: либо текст (CSV/TSV), либо ячейки листа.
type Upload struct {
	Format string     // csv | xlsx | xls
	Text   string     // для csv: уже декодированный UTF-8
	Rows   [][]string // для xlsx/xls
}

// ReadUpload: выберет парсер по расширению. Разбор колонок делает catalog.
func ReadUpload(r io.Reader, filename string) (Upload, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv", ".tsv", ".txt":
		text, err := readText(r)
		if err != nil {
			return Upload{}, err
		}
		return Upload{Format: "csv", Text: text}, nil
	case ".xlsx":
		rows, err := readXLSX(r)
		if err != nil {
			return Upload{}, err
		}
		return Upload{Format: "xlsx", Rows: rows}, nil
	case ".xls":
		rows, err := readXLS(r)
		if err != nil {
			return Upload{}, err
		}
		return Upload{Format: "xls", Rows: rows}, nil
	default:
		return Upload{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, filename)
	}
}

// normalizeCell: значение ячейки без обрамляющих пробелов.
func normalizeCell(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\u00A0", " "))
}
