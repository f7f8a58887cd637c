package service

import (
	"sort"

	"github.com/samber/lo"

	"lensfit-service/internal/lens/model"
	"lensfit-service/internal/lens/optics"
)

// RankInput: уже разрешённые входы пересчёта (материалы и min CT известны).
type RankInput struct {
	Right, Left                 model.Prescription
	MaterialRight, MaterialLeft model.Material
	MinCTRight, MinCTLeft       float64
	Allowance                   float64
	StockOnly                   bool
}

// Rank пересчитывает оценку для каждой оправы и сортирует по худшему глазу.
// Кадры не изменяются; при равенстве сохраняется исходный порядок.
func Rank(frames []model.Frame, in RankInput) []model.RankedRow {
	if in.StockOnly {
		frames = lo.Filter(frames, func(f model.Frame, _ int) bool { return f.Stock > 0 })
	}

	rows := lo.Map(frames, func(f model.Frame, _ int) model.RankedRow {
		r := optics.Estimate(eyeInput(f, in.Right, in.MaterialRight, in.MinCTRight, in.Allowance))
		l := optics.Estimate(eyeInput(f, in.Left, in.MaterialLeft, in.MinCTLeft, in.Allowance))
		return model.RankedRow{Frame: f, Right: r, Left: l, Worst: max(r.Edge, l.Edge)}
	})

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Worst < rows[j].Worst })
	return rows
}

func eyeInput(f model.Frame, rx model.Prescription, m model.Material, minCT, allowance float64) model.EstimateInput {
	return model.EstimateInput{
		Sphere:    rx.Sphere,
		Cylinder:  rx.Cylinder,
		Index:     m.Index,
		MinCT:     minCT,
		A:         f.A,
		B:         f.B,
		DBL:       f.DBL,
		MonoPD:    rx.MonoPD,
		Allowance: &allowance,
	}
}
