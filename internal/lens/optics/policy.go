package optics

// DefaultBaseCT: минимальная толщина по центру (мм), если комбинации нет в таблице.
const DefaultBaseCT = 1.5

// CTKey: составной ключ таблицы минимальной толщины по центру.
type CTKey struct {
	Maker    string
	Design   string
	Material string
}

// CenterThicknessPolicy: производитель → дизайн → материал, разложенные в плоскую карту.
type CenterThicknessPolicy struct {
	base    map[CTKey]float64
	makers  []string
	designs []string
}

func NewPolicy(makers, designs []string, base map[CTKey]float64) *CenterThicknessPolicy {
	p := &CenterThicknessPolicy{
		base:    make(map[CTKey]float64, len(base)),
		makers:  append([]string(nil), makers...),
		designs: append([]string(nil), designs...),
	}
	for k, v := range base {
		p.base[k] = v
	}
	return p
}

// Base возвращает базовую толщину; found=false значит сработал дефолт 1.5 мм.
func (p *CenterThicknessPolicy) Base(maker, design, material string) (value float64, found bool) {
	if v, ok := p.base[CTKey{Maker: maker, Design: design, Material: material}]; ok {
		return v, true
	}
	return DefaultBaseCT, false
}

// MinCT = база + запас.
func (p *CenterThicknessPolicy) MinCT(maker, design, material string, margin float64) float64 {
	v, _ := p.Base(maker, design, material)
	return v + margin
}

func (p *CenterThicknessPolicy) Makers() []string  { return append([]string(nil), p.makers...) }
func (p *CenterThicknessPolicy) Designs() []string { return append([]string(nil), p.designs...) }

var (
	defaultMakers  = []string{"HOYA", "東海光学", "伊藤光学"}
	defaultDesigns = []string{"外面非球面", "両面非球面", "遠近", "中近", "近々"}
)

// DefaultPolicy: таблица производителей, как в прайсах.
func DefaultPolicy() *CenterThicknessPolicy {
	type row struct{ m160, m167, mHigh float64 }
	// у 東海光学 верхний материал 1.76, у остальных 1.74
	tables := map[string]struct {
		high string
		rows map[string]row
	}{
		"HOYA": {high: "1.74", rows: map[string]row{
			"外面非球面": {1.5, 1.5, 1.0},
			"両面非球面": {1.4, 1.3, 1.0},
			"遠近":    {1.8, 1.8, 1.2},
			"中近":    {1.8, 1.8, 1.2},
			"近々":    {1.8, 1.8, 1.2},
		}},
		"東海光学": {high: "1.76", rows: map[string]row{
			"外面非球面": {1.5, 1.4, 1.0},
			"両面非球面": {1.4, 1.3, 1.0},
			"遠近":    {1.8, 1.7, 1.2},
			"中近":    {1.8, 1.7, 1.2},
			"近々":    {1.8, 1.7, 1.2},
		}},
		"伊藤光学": {high: "1.74", rows: map[string]row{
			"外面非球面": {1.5, 1.5, 1.0},
			"両面非球面": {1.4, 1.3, 1.0},
			"遠近":    {1.8, 1.8, 1.2},
			"中近":    {1.8, 1.8, 1.2},
			"近々":    {1.8, 1.8, 1.2},
		}},
	}

	base := make(map[CTKey]float64)
	for maker, t := range tables {
		for design, r := range t.rows {
			base[CTKey{maker, design, "1.60"}] = r.m160
			base[CTKey{maker, design, "1.67"}] = r.m167
			base[CTKey{maker, design, t.high}] = r.mHigh
		}
	}
	return NewPolicy(defaultMakers, defaultDesigns, base)
}
