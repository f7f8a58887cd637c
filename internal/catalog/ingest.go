package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"lensfit-service/internal/lens/model"
	"lensfit-service/internal/utils"
)

// UnnamedBrand: подпись для оправ без бренда.
const UnnamedBrand = "(無名)"

// "52□18", "52-18", "52x18", "52 18", "52　18"; пробел в т.ч. U+3000 и NBSP
var reSize = regexp.MustCompile(`(\d{2})(?:[\s\p{Zs}]*□|[\s\p{Zs}]*[-xX*\s\p{Zs}])?(\d{2})`)

// Result: итог разбора одного документа.
type Result struct {
	Frames   []model.Frame
	Rejected int
	Header   []string
	Empty    bool
}

// Summary: короткий отчёт для оператора.
func (r Result) Summary() string {
	if r.Empty {
		return "空のファイルでした"
	}
	return fmt.Sprintf("読み込み: %d件 / スキップ: %d件\nヘッダ: %s",
		len(r.Frames), r.Rejected, strings.Join(r.Header, ", "))
}

// Ingestor разбирает табличный каталог оправ.
type Ingestor struct {
	Columns []Column
	NewID   func() string
}

func NewIngestor() *Ingestor {
	return &Ingestor{Columns: Columns, NewID: uuid.NewString}
}

// Parse: уже декодированный текст (CSV или TSV).
func Parse(text string) Result { return NewIngestor().Parse(text) }

// ParseRows: уже разбитые по ячейкам строки (XLSX/XLS).
func ParseRows(rows [][]string) Result { return NewIngestor().ParseRows(rows) }

func (in *Ingestor) Parse(text string) Result {
	text = strings.TrimPrefix(text, "\uFEFF")

	// табуляция, только если в документе нет ни одной запятой
	delim := ","
	if strings.Contains(text, "\t") && !strings.Contains(text, ",") {
		delim = "\t"
	}

	var grid [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		grid = append(grid, strings.Split(line, delim))
	}
	return in.parseGrid(grid)
}

func (in *Ingestor) ParseRows(rows [][]string) Result {
	grid := make([][]string, 0, len(rows))
	for _, r := range rows {
		if isBlank(trimAll(r)) {
			continue
		}
		grid = append(grid, r)
	}
	return in.parseGrid(grid)
}

func (in *Ingestor) parseGrid(grid [][]string) Result {
	if len(grid) == 0 {
		return Result{Empty: true}
	}

	header := trimAll(grid[0])
	l := resolveLayout(header, in.Columns)

	res := Result{Header: header, Frames: make([]model.Frame, 0, len(grid)-1)}
	for _, raw := range grid[1:] {
		cols := trimAll(raw)
		if isBlank(cols) {
			continue
		}
		f, ok := in.parseRow(cols, l)
		if !ok {
			res.Rejected++
			continue
		}
		res.Frames = append(res.Frames, f)
	}
	return res
}

func (in *Ingestor) parseRow(cols []string, l layout) (model.Frame, bool) {
	a, aOK := dimension(l, cols, FieldA)
	dbl, dblOK := dimension(l, cols, FieldDBL)

	if !aOK || !dblOK {
		if size, present := l.cell(cols, FieldSize); present {
			if m := reSize.FindStringSubmatch(size); m != nil {
				if !aOK {
					a, aOK = positive(m[1])
				}
				if !dblOK {
					dbl, dblOK = positive(m[2])
				}
			}
		}
	}
	if !aOK || !dblOK {
		return model.Frame{}, false
	}

	f := model.Frame{
		ID:  in.NewID(),
		A:   a,
		DBL: dbl,
	}
	if s, _ := l.cell(cols, FieldB); s != "" {
		if b, ok := utils.ParseCellFloat(s); ok {
			f.B = b
		}
	}
	f.Brand, _ = l.cell(cols, FieldBrand)
	if f.Brand == "" {
		f.Brand = UnnamedBrand
	}
	f.Shape, _ = l.cell(cols, FieldShape)
	f.SKU, _ = l.cell(cols, FieldSKU)
	f.Color, _ = l.cell(cols, FieldColor)
	if s, _ := l.cell(cols, FieldStock); s != "" {
		f.Stock = utils.ParseCellCount(s)
	}
	if s, _ := l.cell(cols, FieldReorder); s != "" {
		_, f.Reorder = reorderTruthy[s]
	}
	return f, true
}

// dimension: обязательный размер; ноль и отрицательные значения непригодны.
func dimension(l layout, cols []string, f Field) (float64, bool) {
	s, present := l.cell(cols, f)
	if !present {
		return 0, false
	}
	return positive(s)
}

func positive(s string) (float64, bool) {
	v, ok := utils.ParseCellFloat(s)
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
