package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"lensfit-service/internal/catalog"
	"lensfit-service/internal/config"
	"lensfit-service/internal/fileio"
	"lensfit-service/internal/lens/model"
	"lensfit-service/internal/lens/service"
	"lensfit-service/internal/metrics"
)

// Materials: справочники для формы: материалы, производители, дизайны.
func Materials(e *service.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]any{
			"materials": e.Materials.List(),
			"makers":    e.Policy.Makers(),
			"designs":   e.Policy.Designs(),
		})
	}
}

// MinCT: GET /policy/min-ct?maker=&design=&material=&margin=
// defaulted=true означает, что комбинации нет в таблице и взято 1.5 мм.
func MinCT(e *service.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		maker, design, material := q.Get("maker"), q.Get("design"), q.Get("material")
		if _, err := e.Materials.Get(material); err != nil {
			writeError(w, r, err)
			return
		}
		margin, err := queryFloat(r, "margin", e.Defaults.SafetyMargin)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if margin < 0 {
			writeError(w, r, fmt.Errorf("%w: margin must be >= 0", errBadRequest))
			return
		}

		base, found := e.Policy.Base(maker, design, material)
		writeJSON(w, r, http.StatusOK, map[string]any{
			"maker":     maker,
			"design":    design,
			"material":  material,
			"base":      base,
			"margin":    margin,
			"minCT":     base + margin,
			"defaulted": !found,
		})
	}
}

// ListFrames: GET /frames[?stockOnly=1]
func ListFrames(e *service.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		frames, version := e.Store.List()
		if toBool(r.URL.Query().Get("stockOnly")) {
			frames = lo.Filter(frames, func(f model.Frame, _ int) bool { return f.Stock > 0 })
		}
		writeJSON(w, r, http.StatusOK, map[string]any{
			"version": version,
			"frames":  frames,
		})
	}
}

// frameInput: ручное добавление оправы.
type frameInput struct {
	Brand   string  `json:"brand"`
	Shape   string  `json:"shape"`
	A       float64 `json:"A" validate:"gt=0"`
	B       float64 `json:"B" validate:"gte=0"`
	DBL     float64 `json:"DBL" validate:"gt=0"`
	SKU     string  `json:"sku"`
	Color   string  `json:"color"`
	Stock   int     `json:"stock" validate:"gte=0"`
	Reorder bool    `json:"reorder"`
}

// AddFrame: POST /frames
func AddFrame(e *service.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in frameInput
		if err := readJSON(r, &in); err != nil {
			writeError(w, r, err)
			return
		}
		f, err := e.Store.Add(model.Frame{
			Brand: in.Brand, Shape: in.Shape,
			A: in.A, B: in.B, DBL: in.DBL,
			SKU: in.SKU, Color: in.Color,
			Stock: in.Stock, Reorder: in.Reorder,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		zerolog.Ctx(r.Context()).Info().Str("id", f.ID).Str("brand", f.Brand).Msg("frame added")
		writeJSON(w, r, http.StatusCreated, f)
	}
}

// ImportFrames: POST /frames/import, multipart поле "file".
// Битые строки не ошибка: они считаются и попадают в отчёт.
func ImportFrames(cfg config.Config, e *service.Engine, in *catalog.Ingestor, m *metrics.Collectors) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := zerolog.Ctx(r.Context())

		if err := r.ParseMultipartForm(cfg.MaxUploadBytes()); err != nil {
			writeError(w, r, fmt.Errorf("%w: bad multipart form: %v", errBadRequest, err))
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: missing file: %v", errBadRequest, err))
			return
		}
		defer file.Close()

		up, err := fileio.ReadUpload(file, header.Filename)
		if err != nil {
			writeError(w, r, err)
			return
		}

		var res catalog.Result
		if up.Rows != nil {
			res = in.ParseRows(up.Rows)
		} else {
			res = in.Parse(up.Text)
		}
		total := e.Store.Append(res.Frames)

		m.Imports.WithLabelValues(up.Format).Inc()
		m.ImportedRows.WithLabelValues("accepted").Add(float64(len(res.Frames)))
		m.ImportedRows.WithLabelValues("rejected").Add(float64(res.Rejected))

		log.Info().
			Str("file", header.Filename).
			Str("format", up.Format).
			Int("accepted", len(res.Frames)).
			Int("rejected", res.Rejected).
			Strs("header", res.Header).
			Int("catalog", total).
			Dur("elapsed", time.Since(start)).
			Msg("catalog import done")

		writeJSON(w, r, http.StatusOK, model.ImportSummary{
			File:     header.Filename,
			Accepted: len(res.Frames),
			Rejected: res.Rejected,
			Header:   lo.Ternary(res.Header == nil, []string{}, res.Header),
			Summary:  res.Summary(),
			Total:    total,
		})
	}
}

// Estimate: POST /estimate: полный пересчёт и сортировка.
func Estimate(e *service.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, ok := recompute(w, r, e)
		if !ok {
			return
		}
		writeJSON(w, r, http.StatusOK, q)
	}
}

// Export: POST /estimate/export: та же смета в XLSX.
func Export(e *service.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, ok := recompute(w, r, e)
		if !ok {
			return
		}
		var buf bytes.Buffer
		if err := fileio.WriteQuoteXLSX(&buf, q); err != nil {
			writeError(w, r, fmt.Errorf("export xlsx: %w", err))
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="estimate.xlsx"`)
		w.Header().Set("Cache-Control", "no-store")
		if _, err := buf.WriteTo(w); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("write xlsx")
		}
	}
}

// Compare: POST /compare: материалы на типовой оправе.
func Compare(e *service.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.CompareRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]any{
			"frame": model.Frame{A: service.RepresentativeA, B: service.RepresentativeB, DBL: service.RepresentativeDBL},
			"rows":  e.CompareMaterials(req),
		})
	}
}

func recompute(w http.ResponseWriter, r *http.Request, e *service.Engine) (model.Quote, bool) {
	var req model.RankRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, err)
		return model.Quote{}, false
	}
	q, err := e.Recompute(req)
	if err != nil {
		writeError(w, r, err)
		return model.Quote{}, false
	}
	zerolog.Ctx(r.Context()).Debug().
		Int("rows", len(q.Rows)).
		Bool("stockOnly", req.StockOnly).
		Msg("quote recomputed")
	return q, true
}

func toBool(s string) bool {
	switch s {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
