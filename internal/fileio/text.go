package fileio

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readText reads a CSV/TSV upload and converts it to UTF-8.
// Excel on Japanese Windows saves CSV as Shift_JIS, so that case matters most.
func readText(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	enc := detectEncoding(b)
	if enc == nil {
		return string(b), nil
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// detectEncoding: nil означает "уже UTF-8".
func detectEncoding(b []byte) encoding.Encoding {
	switch {
	case bytes.HasPrefix(b, []byte{0xFF, 0xFE}):
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	case bytes.HasPrefix(b, []byte{0xFE, 0xFF}):
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	}
	// валидный UTF-8 не перекодируем: chardet путается на коротких ASCII файлах
	if utf8.Valid(b) {
		return nil
	}

	peek := b
	if len(peek) > 4096 {
		peek = peek[:4096]
	}
	cs := ""
	if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
		cs = strings.ToLower(det.Charset)
	}
	switch cs {
	case "euc-jp":
		return japanese.EUCJP
	case "iso-2022-jp":
		return japanese.ISO2022JP
	default:
		// не UTF-8 и не опознано → Shift_JIS (Windows-31J) как самый частый случай
		return japanese.ShiftJIS
	}
}
