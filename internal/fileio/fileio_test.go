package fileio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"

	"lensfit-service/internal/fileio"
	"lensfit-service/internal/lens/model"
)

const sample = "ブランド/型,形状,A,B,DBL,在庫\nAO Round,ラウンド,46,42,22,1\n"

func TestReadUploadUTF8(t *testing.T) {
	rq := require.New(t)

	up, err := fileio.ReadUpload(strings.NewReader(sample), "frames.CSV")
	rq.NoError(err)
	rq.Equal("csv", up.Format)
	rq.Equal(sample, up.Text)
}

func TestReadUploadShiftJIS(t *testing.T) {
	rq := require.New(t)

	sjis, err := japanese.ShiftJIS.NewEncoder().String(sample)
	rq.NoError(err)
	rq.NotEqual(sample, sjis)

	up, err := fileio.ReadUpload(strings.NewReader(sjis), "frames.csv")
	rq.NoError(err)
	rq.Equal(sample, up.Text)
}

func TestReadUploadUTF16(t *testing.T) {
	rq := require.New(t)

	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	b, err := enc.String(sample)
	rq.NoError(err)

	up, err := fileio.ReadUpload(strings.NewReader(b), "frames.tsv")
	rq.NoError(err)
	rq.Equal(sample, up.Text)
}

func TestReadUploadUnsupported(t *testing.T) {
	_, err := fileio.ReadUpload(strings.NewReader("x"), "frames.pdf")
	require.ErrorIs(t, err, fileio.ErrUnsupportedFile)
}

func TestReadUploadXLSX(t *testing.T) {
	rq := require.New(t)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rq.NoError(f.SetSheetRow(sheet, "A1", &[]any{"ブランド", "サイズ", "カラー"}))
	rq.NoError(f.SetSheetRow(sheet, "A2", &[]any{" Slim ", "52□18", "NV"}))
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	rq.NoError(err)
	rq.NoError(f.Close())

	up, err := fileio.ReadUpload(&buf, "frames.xlsx")
	rq.NoError(err)
	rq.Equal("xlsx", up.Format)
	rq.Equal([][]string{{"ブランド", "サイズ", "カラー"}, {"Slim", "52□18", "NV"}}, up.Rows)
}

func TestWriteQuoteXLSX(t *testing.T) {
	rq := require.New(t)

	q := model.Quote{
		Header: model.QuoteHeader{StoreName: "AOINOMEGANE", Maker: "HOYA", Design: "外面非球面", SafetyMargin: 0.2},
		Rows: []model.RankedRow{{
			Frame: model.Frame{Brand: "Slim R", A: 52, B: 36, DBL: 18, Stock: 2, Reorder: true},
			Right: model.Estimate{Edge: 4.26, Decentration: 4, ED: 60},
			Left:  model.Estimate{Edge: 4.01, Decentration: 4, ED: 60},
			Worst: 4.26,
		}},
	}

	var buf bytes.Buffer
	rq.NoError(fileio.WriteQuoteXLSX(&buf, q))

	f, err := excelize.OpenReader(&buf)
	rq.NoError(err)
	defer f.Close()

	rows, err := f.GetRows("見積")
	rq.NoError(err)
	rq.Equal("AOINOMEGANE", rows[1][0])
	rq.Contains(rows[2][0], "メーカー: HOYA / 設計: 外面非球面 / 安全マージン: 0.2 mm")
	rq.Equal("ブランド/型", rows[5][0])
	data := rows[6]
	rq.Equal("Slim R", data[0])
	rq.Equal("要", data[8])
	rq.Equal("4.3", data[15])
}
