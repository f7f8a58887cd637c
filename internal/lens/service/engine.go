package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"lensfit-service/internal/catalog"
	"lensfit-service/internal/lens/model"
	"lensfit-service/internal/lens/optics"
	"lensfit-service/internal/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Representative frame for material comparison.
const (
	RepresentativeA   = 50.0
	RepresentativeB   = 40.0
	RepresentativeDBL = 20.0
)

type Defaults struct {
	StoreName    string
	SafetyMargin float64
	Allowance    float64
}

// Engine связывает каталог, материалы и политику толщины.
// Кэш не хранит состояние между входами: ключ включает все входы и версию каталога.
type Engine struct {
	Materials *optics.MaterialCatalog
	Policy    *optics.CenterThicknessPolicy
	Store     *catalog.Store
	Defaults  Defaults

	cache   *cache.Cache
	metrics *metrics.Collectors
	log     zerolog.Logger
}

func NewEngine(
	materials *optics.MaterialCatalog,
	policy *optics.CenterThicknessPolicy,
	store *catalog.Store,
	defaults Defaults,
	cacheTTL time.Duration,
	m *metrics.Collectors,
	logger zerolog.Logger,
) *Engine {
	return &Engine{
		Materials: materials,
		Policy:    policy,
		Store:     store,
		Defaults:  defaults,
		cache:     cache.New(cacheTTL, 2*cacheTTL),
		metrics:   m,
		log:       logger,
	}
}

// resolved: входы после подстановки дефолтов; из них строится ключ кэша.
type resolved struct {
	Rank     RankInput
	Header   model.QuoteHeader
	CatalogV uint64
}

func (e *Engine) resolve(req model.RankRequest) (resolved, error) {
	matR, err := e.Materials.Get(req.MaterialRight)
	if err != nil {
		return resolved{}, fmt.Errorf("right eye: %w", err)
	}
	matL, err := e.Materials.Get(req.MaterialLeft)
	if err != nil {
		return resolved{}, fmt.Errorf("left eye: %w", err)
	}

	margin := e.Defaults.SafetyMargin
	if req.SafetyMargin != nil {
		margin = *req.SafetyMargin
	}
	allowance := e.Defaults.Allowance
	if req.Allowance != nil {
		allowance = *req.Allowance
	}
	storeName := req.StoreName
	if storeName == "" {
		storeName = e.Defaults.StoreName
	}

	minR := e.minCT(req.Maker, req.Design, matR.Key, margin)
	minL := e.minCT(req.Maker, req.Design, matL.Key, margin)

	return resolved{
		Rank: RankInput{
			Right: req.Right, Left: req.Left,
			MaterialRight: matR, MaterialLeft: matL,
			MinCTRight: minR, MinCTLeft: minL,
			Allowance: allowance,
			StockOnly: req.StockOnly,
		},
		Header: model.QuoteHeader{
			StoreName:    storeName,
			Maker:        req.Maker,
			Design:       req.Design,
			SafetyMargin: margin,
			Allowance:    allowance,
			MinCTRight:   minR,
			MinCTLeft:    minL,
			StockOnly:    req.StockOnly,
		},
	}, nil
}

func (e *Engine) minCT(maker, design, material string, margin float64) float64 {
	base, found := e.Policy.Base(maker, design, material)
	if !found {
		e.log.Debug().
			Str("maker", maker).
			Str("design", design).
			Str("material", material).
			Float64("base", base).
			Msg("center thickness not in table, default used")
	}
	return base + margin
}

// Quote: пересчёт сметы без кэша, только от входов и текущего каталога.
func (e *Engine) Quote(req model.RankRequest) (model.Quote, error) {
	r, err := e.resolve(req)
	if err != nil {
		return model.Quote{}, err
	}
	frames, _ := e.Store.List()
	return model.Quote{Header: r.Header, Rows: Rank(frames, r.Rank)}, nil
}

// Recompute: Quote с мемоизацией. Ключ включает все разрешённые входы и версию каталога,
// поэтому любое изменение даёт новый результат.
func (e *Engine) Recompute(req model.RankRequest) (model.Quote, error) {
	r, err := e.resolve(req)
	if err != nil {
		return model.Quote{}, err
	}

	frames, version := e.Store.List()
	r.CatalogV = version

	key, err := cacheKey(r)
	if err != nil {
		return model.Quote{}, fmt.Errorf("cache key: %w", err)
	}
	if v, ok := e.cache.Get(key); ok {
		e.metrics.CacheHits.WithLabelValues("hit").Inc()
		q := v.(model.Quote)
		q.Rows = append([]model.RankedRow(nil), q.Rows...)
		return q, nil
	}
	e.metrics.CacheHits.WithLabelValues("miss").Inc()

	start := time.Now()
	rows := Rank(frames, r.Rank)
	e.metrics.RankDuration.Observe(time.Since(start).Seconds())
	e.metrics.RankedFrames.Observe(float64(len(rows)))

	q := model.Quote{Header: r.Header, Rows: rows}
	e.cache.SetDefault(key, model.Quote{Header: q.Header, Rows: append([]model.RankedRow(nil), rows...)})
	return q, nil
}

func cacheKey(r resolved) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// CompareMaterials: все материалы на типовой оправе A50/B40/DBL20.
func (e *Engine) CompareMaterials(req model.CompareRequest) []model.MaterialComparison {
	margin := e.Defaults.SafetyMargin
	if req.SafetyMargin != nil {
		margin = *req.SafetyMargin
	}
	allowance := e.Defaults.Allowance
	if req.Allowance != nil {
		allowance = *req.Allowance
	}
	frame := model.Frame{A: RepresentativeA, B: RepresentativeB, DBL: RepresentativeDBL}

	list := e.Materials.List()
	out := make([]model.MaterialComparison, 0, len(list))
	for _, m := range list {
		ct := e.minCT(req.Maker, req.Design, m.Key, margin)
		r := optics.Estimate(eyeInput(frame, req.Right, m, ct, allowance))
		l := optics.Estimate(eyeInput(frame, req.Left, m, ct, allowance))
		out = append(out, model.MaterialComparison{
			Material: m,
			MinCT:    ct,
			Right:    r.Edge,
			Left:     l.Edge,
			Worst:    max(r.Edge, l.Edge),
		})
	}
	return out
}
