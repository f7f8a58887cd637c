// utils/numja.go: числа из ячеек каталогов японских поставщиков
package utils

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// ParseCellFloat парсит "52", "５２", " 52.5 " и т.п.
// Пробел внутри числа ("52 18") делает ячейку непригодной, как и мусор, NaN и Inf.
func ParseCellFloat(s string) (float64, bool) {
	// полноширинные цифры/точка/минус/пробел → ASCII
	s = strings.TrimFunc(width.Narrow.String(s), unicode.IsSpace)
	if s == "" || strings.IndexFunc(s, isCellSpace) >= 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// isCellSpace: любой пробельный символ, включая NBSP и узкий пробел.
func isCellSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Zs, r)
}

// ParseCellCount: неотрицательное целое (остатки на складе); всё прочее → 0.
func ParseCellCount(s string) int {
	f, ok := ParseCellFloat(s)
	if !ok || f <= 0 {
		return 0
	}
	return int(math.Floor(f))
}
