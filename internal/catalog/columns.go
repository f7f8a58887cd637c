package catalog

import "strings"

// Field: логическое поле записи оправы.
type Field int

const (
	FieldBrand Field = iota
	FieldShape
	FieldA
	FieldB
	FieldDBL
	FieldSize
	FieldSKU
	FieldColor
	FieldStock
	FieldReorder
)

// Column: поле и допустимые подписи заголовка (точное совпадение, с учётом регистра).
type Column struct {
	Field  Field
	Labels []string
}

// Columns: таблица синонимов. Новые подписи добавлять сюда, парсер не трогать.
var Columns = []Column{
	{FieldBrand, []string{"ブランド", "ブランド/型", "型番", "品番", "name", "brand", "モデル"}},
	{FieldShape, []string{"形状", "シェイプ", "shape", "形"}},
	{FieldA, []string{"A", "玉型横", "玉型横幅", "玉型幅", "レンズ横幅"}},
	{FieldB, []string{"B", "玉型縦", "玉型縦幅", "レンズ縦幅"}},
	{FieldDBL, []string{"DBL", "ブリッジ", "ブリッジ幅", "鼻幅", "Bridge"}},
	{FieldSize, []string{"サイズ", "A□DBL", "表記", "規格", "size", "Size"}},
	{FieldSKU, []string{"SKU", "sku", "型番", "品番"}},
	{FieldColor, []string{"カラー", "color", "Color", "COL"}},
	{FieldStock, []string{"在庫", "在庫数", "stock", "Stock"}},
	{FieldReorder, []string{"発注", "発注フラグ", "reorder", "order_flag"}},
}

// reorderTruthy: значения флага дозаказа, считающиеся "да".
var reorderTruthy = map[string]struct{}{
	"1": {}, "true": {}, "TRUE": {}, "はい": {}, "要": {}, "y": {},
}

const notFound = -1

// layout: индексы колонок документа, вычисляются один раз по заголовку.
type layout map[Field]int

func resolveLayout(header []string, cols []Column) layout {
	l := make(layout, len(cols))
	for _, c := range cols {
		// поле может встречаться в таблице несколько раз: побеждает первое найденное
		if i, ok := l[c.Field]; ok && i != notFound {
			continue
		}
		l[c.Field] = indexOf(header, c.Labels)
	}
	return l
}

// indexOf: первая колонка заголовка, подпись которой есть в labels.
func indexOf(header, labels []string) int {
	for i, h := range header {
		for _, lb := range labels {
			if h == lb {
				return i
			}
		}
	}
	return notFound
}

// cell: значение по индексу; отсутствующая колонка или короткая строка → "".
func (l layout) cell(cols []string, f Field) (string, bool) {
	i, ok := l[f]
	if !ok || i == notFound {
		return "", false
	}
	if i >= len(cols) {
		return "", true
	}
	return cols[i], true
}

func trimAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
