package catalog_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"lensfit-service/internal/catalog"
)

func TestParseBasicCSV(t *testing.T) {
	rq := require.New(t)

	res := catalog.Parse("A,B,DBL\n50,40,20\n")

	rq.Len(res.Frames, 1)
	rq.Zero(res.Rejected)
	f := res.Frames[0]
	rq.Equal(50.0, f.A)
	rq.Equal(40.0, f.B)
	rq.Equal(20.0, f.DBL)
	rq.Equal(catalog.UnnamedBrand, f.Brand)
	rq.Zero(f.Stock)
	rq.False(f.Reorder)
	rq.NotEmpty(f.ID)
	rq.Equal([]string{"A", "B", "DBL"}, res.Header)
}

func TestParseRejectsUnparsableGeometry(t *testing.T) {
	rq := require.New(t)

	res := catalog.Parse("A,B,DBL\nabc,40,xyz\n50,40,20\n")

	rq.Len(res.Frames, 1)
	rq.Equal(1, res.Rejected)
}

func TestParseSizeToken(t *testing.T) {
	tests := []struct {
		cell   string
		a, dbl float64
	}{
		{"52□18", 52, 18},
		{"52-18", 52, 18},
		{"52 18", 52, 18},
		{"52x18", 52, 18},
		{"52X18", 52, 18},
		{"52*18", 52, 18},
		{"5218", 52, 18},
		{"Size 48□20-145", 48, 20},
		{"52\u300018", 52, 18},
		{"52\u00A018", 52, 18},
		{"52\u3000□18", 52, 18},
	}
	for _, tc := range tests {
		t.Run(tc.cell, func(t *testing.T) {
			res := catalog.Parse("サイズ\n" + tc.cell + "\n")
			require.Len(t, res.Frames, 1)
			require.Equal(t, tc.a, res.Frames[0].A)
			require.Equal(t, tc.dbl, res.Frames[0].DBL)
			require.Zero(t, res.Frames[0].B)
		})
	}
}

func TestParseSizeFillsOnlyMissing(t *testing.T) {
	rq := require.New(t)

	res := catalog.Parse("A,DBL,サイズ\n50,,52□18\n,21,52□18\n")

	rq.Len(res.Frames, 2)
	rq.Equal(50.0, res.Frames[0].A)
	rq.Equal(18.0, res.Frames[0].DBL)
	rq.Equal(52.0, res.Frames[1].A)
	rq.Equal(21.0, res.Frames[1].DBL)
}

func TestParseSpacedDimensionFallsBackToSize(t *testing.T) {
	rq := require.New(t)

	res := catalog.Parse("A,DBL,サイズ\n52 18,,52□18\n5 0,20,\n")

	rq.Len(res.Frames, 1)
	rq.Equal(52.0, res.Frames[0].A)
	rq.Equal(18.0, res.Frames[0].DBL)
	rq.Equal(1, res.Rejected)
}

func TestParseSizeWithoutMatchRejected(t *testing.T) {
	res := catalog.Parse("サイズ\nfree\n")
	require.Empty(t, res.Frames)
	require.Equal(t, 1, res.Rejected)
}

func TestParseTabDelimited(t *testing.T) {
	rq := require.New(t)

	text := "ブランド\t玉型横\t玉型縦\tブリッジ\t在庫\t発注\nAO Round\t46\t42\t22\t3\tはい\n"
	res := catalog.Parse(text)

	rq.Len(res.Frames, 1)
	f := res.Frames[0]
	rq.Equal("AO Round", f.Brand)
	rq.Equal(46.0, f.A)
	rq.Equal(42.0, f.B)
	rq.Equal(22.0, f.DBL)
	rq.Equal(3, f.Stock)
	rq.True(f.Reorder)
}

func TestParseTabWithCommaFallsBackToComma(t *testing.T) {
	// запятая где угодно в документе → разделитель запятая
	res := catalog.Parse("A\tDBL\n50\t20,x\n")
	require.Empty(t, res.Frames)
	require.Equal(t, []string{"A\tDBL"}, res.Header)
}

func TestParseBOMAndCRLF(t *testing.T) {
	rq := require.New(t)

	res := catalog.Parse("\uFEFFbrand,A,DBL\r\nSlim,52,18\r\n\r\n")

	rq.Equal([]string{"brand", "A", "DBL"}, res.Header)
	rq.Len(res.Frames, 1)
	rq.Equal("Slim", res.Frames[0].Brand)
}

func TestParseSkipsBlankRowsWithoutCounting(t *testing.T) {
	rq := require.New(t)

	res := catalog.Parse("A,B,DBL\n\n , , \n,,\n50,40,20\n   \n")

	rq.Len(res.Frames, 1)
	rq.Zero(res.Rejected)
}

func TestParseTrimsCells(t *testing.T) {
	rq := require.New(t)

	res := catalog.Parse(" A , DBL , color \n 50 , 20 , NV \n")

	rq.Len(res.Frames, 1)
	rq.Equal("NV", res.Frames[0].Color)
}

func TestParseReorderTokens(t *testing.T) {
	tests := map[string]bool{
		"1": true, "true": true, "TRUE": true, "はい": true, "要": true, "y": true,
		"True": false, "Y": false, "0": false, "no": false, "いいえ": false, "": false,
	}
	for token, want := range tests {
		t.Run(token, func(t *testing.T) {
			res := catalog.Parse("A,DBL,発注\n50,20," + token + "\n")
			require.Len(t, res.Frames, 1)
			require.Equal(t, want, res.Frames[0].Reorder)
		})
	}
}

func TestParseStock(t *testing.T) {
	rq := require.New(t)

	res := catalog.Parse("A,DBL,在庫数\n50,20,2\n50,20,\n50,20,-4\n50,20,many\n")

	rq.Len(res.Frames, 4)
	rq.Equal(2, res.Frames[0].Stock)
	rq.Zero(res.Frames[1].Stock)
	rq.Zero(res.Frames[2].Stock)
	rq.Zero(res.Frames[3].Stock)
}

func TestParseNonPositiveGeometryRejected(t *testing.T) {
	res := catalog.Parse("A,DBL\n0,20\n50,-1\n50,20\n")
	require.Len(t, res.Frames, 1)
	require.Equal(t, 2, res.Rejected)
}

func TestParseUnparsableBDefaultsToZero(t *testing.T) {
	res := catalog.Parse("A,B,DBL\n50,?,20\n")
	require.Len(t, res.Frames, 1)
	require.Zero(t, res.Frames[0].B)
}

func TestParseShortRowMissingDBLRejected(t *testing.T) {
	res := catalog.Parse("brand,A,DBL\nShort,50\n")
	require.Empty(t, res.Frames)
	require.Equal(t, 1, res.Rejected)
}

func TestParseSharedSynonymColumn(t *testing.T) {
	rq := require.New(t)

	// 型番 подходит и для бренда, и для SKU
	res := catalog.Parse("型番,A,DBL\nXJ-100,50,20\n")

	rq.Len(res.Frames, 1)
	rq.Equal("XJ-100", res.Frames[0].Brand)
	rq.Equal("XJ-100", res.Frames[0].SKU)
}

func TestParseHeaderMatchIsCaseSensitive(t *testing.T) {
	res := catalog.Parse("a,dbl\n50,20\n")
	require.Empty(t, res.Frames)
	require.Equal(t, 1, res.Rejected)
}

func TestParseFullWidthDigits(t *testing.T) {
	res := catalog.Parse("A,DBL\n５２,１８\n")
	require.Len(t, res.Frames, 1)
	require.Equal(t, 52.0, res.Frames[0].A)
}

func TestParseEmptyDocument(t *testing.T) {
	rq := require.New(t)

	for _, text := range []string{"", "\uFEFF", "\n\r\n  \n"} {
		res := catalog.Parse(text)
		rq.True(res.Empty)
		rq.Empty(res.Frames)
		rq.Zero(res.Rejected)
		rq.Equal("空のファイルでした", res.Summary())
	}
}

func TestParseHeaderOnly(t *testing.T) {
	res := catalog.Parse("A,B,DBL\n")
	require.False(t, res.Empty)
	require.Empty(t, res.Frames)
	require.Equal(t, "読み込み: 0件 / スキップ: 0件\nヘッダ: A, B, DBL", res.Summary())
}

func TestSummary(t *testing.T) {
	res := catalog.Parse("ブランド,A,DBL\nX,50,20\nY,abc,\n")
	require.Equal(t, "読み込み: 1件 / スキップ: 1件\nヘッダ: ブランド, A, DBL", res.Summary())
}

func TestParseUniqueIDs(t *testing.T) {
	rq := require.New(t)

	text := "A,DBL\n"
	for i := 0; i < 500; i++ {
		text += "50," + strconv.Itoa(10+i%30) + "\n"
	}
	seen := map[string]struct{}{}
	for round := 0; round < 3; round++ {
		for _, f := range catalog.Parse(text).Frames {
			_, dup := seen[f.ID]
			rq.False(dup, "duplicate id %s", f.ID)
			seen[f.ID] = struct{}{}
		}
	}
	rq.Len(seen, 1500)
}

func TestIngestorCustomColumnsAndIDs(t *testing.T) {
	rq := require.New(t)

	n := 0
	in := catalog.NewIngestor()
	in.NewID = func() string { n++; return "f" + strconv.Itoa(n) }
	in.Columns = append([]catalog.Column{{Field: catalog.FieldA, Labels: []string{"Eye"}}}, catalog.Columns...)

	res := in.Parse("Eye,DBL\n50,20\n51,20\n")

	rq.Len(res.Frames, 2)
	rq.Equal("f1", res.Frames[0].ID)
	rq.Equal("f2", res.Frames[1].ID)
	rq.Equal(51.0, res.Frames[1].A)
}

func TestParseRowsMatchesText(t *testing.T) {
	rq := require.New(t)

	rows := [][]string{
		{"", "", ""},
		{"ブランド/型", "サイズ", "カラー"},
		{"Classic", "48□20", "BR"},
		{" ", "", " "},
		{"Broken", "n/a", "BK"},
	}
	res := catalog.ParseRows(rows)

	rq.Equal([]string{"ブランド/型", "サイズ", "カラー"}, res.Header)
	rq.Len(res.Frames, 1)
	rq.Equal(1, res.Rejected)
	rq.Equal("Classic", res.Frames[0].Brand)
	rq.Equal(48.0, res.Frames[0].A)
	rq.Equal(20.0, res.Frames[0].DBL)
}
