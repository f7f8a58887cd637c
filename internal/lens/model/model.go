package model

// Prescription: рецепт на один глаз.
type Prescription struct {
	Sphere   float64 `json:"sph"`                    // SPH, диоптрии
	Cylinder float64 `json:"cyl"`                    // CYL, диоптрии (0 допустим)
	MonoPD   float64 `json:"monoPD" validate:"gt=0"` // монокулярное PD, мм
}

type Material struct {
	Key   string  `json:"key"`   // стабильный ключ, например "1.60"
	Name  string  `json:"name"`  // подпись для UI
	Index float64 `json:"index"` // показатель преломления, всегда > 1
}

type Frame struct {
	ID      string  `json:"id"`
	Brand   string  `json:"brand"`
	Shape   string  `json:"shape,omitempty"`
	A       float64 `json:"A"`   // ширина линзы, мм
	B       float64 `json:"B"`   // высота линзы, мм (0 если неизвестна)
	DBL     float64 `json:"DBL"` // мост, мм
	SKU     string  `json:"sku,omitempty"`
	Color   string  `json:"color,omitempty"`
	Stock   int     `json:"stock"`
	Reorder bool    `json:"reorder"`
}

// EstimateInput: все входы модели толщины для одного глаза.
type EstimateInput struct {
	Sphere    float64
	Cylinder  float64
	Index     float64
	MinCT     float64
	A         float64
	B         float64
	DBL       float64
	MonoPD    float64
	Allowance *float64 // nil → 2 мм
}

type Estimate struct {
	Edge         float64 `json:"edge"`
	DeltaT       float64 `json:"deltaT"`
	BlankDia     float64 `json:"blankDia"`
	Decentration float64 `json:"decentration"`
	ED           float64 `json:"ED"`
}

type RankedRow struct {
	Frame
	Right Estimate `json:"right"`
	Left  Estimate `json:"left"`
	Worst float64  `json:"worst"`
}

// RankRequest: всё, от чего зависит пересчёт таблицы.
type RankRequest struct {
	Right         Prescription `json:"right"`
	Left          Prescription `json:"left"`
	Maker         string       `json:"maker" validate:"required"`
	Design        string       `json:"design" validate:"required"`
	MaterialRight string       `json:"materialRight" validate:"required"`
	MaterialLeft  string       `json:"materialLeft" validate:"required"`
	SafetyMargin  *float64     `json:"safetyMargin,omitempty" validate:"omitempty,gte=0"`
	Allowance     *float64     `json:"allowance,omitempty" validate:"omitempty,gte=0"`
	StockOnly     bool         `json:"stockOnly"`
	StoreName     string       `json:"storeName,omitempty"`
}

// CompareRequest: сравнение материалов, сами материалы не выбираются.
type CompareRequest struct {
	Right        Prescription `json:"right"`
	Left         Prescription `json:"left"`
	Maker        string       `json:"maker" validate:"required"`
	Design       string       `json:"design" validate:"required"`
	SafetyMargin *float64     `json:"safetyMargin,omitempty" validate:"omitempty,gte=0"`
	Allowance    *float64     `json:"allowance,omitempty" validate:"omitempty,gte=0"`
}

// QuoteHeader: метаданные для экспорта (шапка сметы).
type QuoteHeader struct {
	StoreName    string  `json:"storeName"`
	Maker        string  `json:"maker"`
	Design       string  `json:"design"`
	SafetyMargin float64 `json:"safetyMargin"`
	Allowance    float64 `json:"allowance"`
	MinCTRight   float64 `json:"minCTRight"`
	MinCTLeft    float64 `json:"minCTLeft"`
	StockOnly    bool    `json:"stockOnly"`
}

type Quote struct {
	Header QuoteHeader `json:"header"`
	Rows   []RankedRow `json:"rows"`
}

type ImportSummary struct {
	File     string   `json:"file"`
	Accepted int      `json:"accepted"`
	Rejected int      `json:"rejected"`
	Header   []string `json:"header"`
	Summary  string   `json:"summary"`
	Total    int      `json:"total"` // размер каталога после слияния
}

type MaterialComparison struct {
	Material Material `json:"material"`
	MinCT    float64  `json:"minCT"`
	Right    float64  `json:"right"`
	Left     float64  `json:"left"`
	Worst    float64  `json:"worst"`
}
