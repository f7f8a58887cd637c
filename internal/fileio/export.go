package fileio

import (
	"fmt"
	"io"
	"math"

	excelize "github.com/xuri/excelize/v2"

	"lensfit-service/internal/lens/model"
)

const quoteSheet = "見積"

var quoteColumns = []string{
	"ブランド/型", "形状", "A", "B", "DBL",
	"SKU", "カラー", "在庫", "発注",
	"偏心R", "偏心L", "ED R", "ED L",
	"厚R", "厚L", "最大側",
}

// WriteQuoteXLSX: таблица сметы с шапкой (салон, производитель, дизайн, запас).
// Только читает смету, ничего не пересчитывает.
func WriteQuoteXLSX(w io.Writer, q model.Quote) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), quoteSheet); err != nil {
		return err
	}

	h := q.Header
	meta := [][]any{
		{"レンズ厚み・フレーム最適化 見積"},
		{h.StoreName},
		{fmt.Sprintf("メーカー: %s / 設計: %s / 安全マージン: %.1f mm", h.Maker, h.Design, h.SafetyMargin)},
		{fmt.Sprintf("CT(右) %.1f mm / CT(左) %.1f mm / 仕上げ余裕 %.1f mm", h.MinCTRight, h.MinCTLeft, h.Allowance)},
	}
	for i, row := range meta {
		if err := setRow(f, i+1, row); err != nil {
			return err
		}
	}

	headerRow := len(meta) + 2
	hdr := make([]any, len(quoteColumns))
	for i, c := range quoteColumns {
		hdr[i] = c
	}
	if err := setRow(f, headerRow, hdr); err != nil {
		return err
	}

	for i, r := range q.Rows {
		reorder := "-"
		if r.Reorder {
			reorder = "要"
		}
		row := []any{
			r.Brand, r.Shape, r.A, r.B, r.DBL,
			r.SKU, r.Color, r.Stock, reorder,
			round1(r.Right.Decentration), round1(r.Left.Decentration),
			round1(r.Right.ED), round1(r.Left.ED),
			round1(r.Right.Edge), round1(r.Left.Edge), round1(r.Worst),
		}
		if err := setRow(f, headerRow+1+i, row); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func setRow(f *excelize.File, n int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	return f.SetSheetRow(quoteSheet, cell, &values)
}

// round1: как в таблице UI: одна цифра после запятой.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
