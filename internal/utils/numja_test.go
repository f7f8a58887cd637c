package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lensfit-service/internal/utils"
)

func TestParseCellFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"52", 52, true},
		{" 52.5 ", 52.5, true},
		{"５２", 52, true},
		{"１８．５", 18.5, true},
		{"\u3000５２\u3000", 52, true},
		{"\u00A052\u00A0", 52, true},
		{"1\u00A0200", 0, false},
		{"1 200", 0, false},
		{"52 18", 0, false},
		{"52\u202F18", 0, false},
		{"５２\u3000１８", 0, false},
		{"-3", -3, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"xyz", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"52mm", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := utils.ParseCellFloat(tc.in)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseCellCount(t *testing.T) {
	require.Equal(t, 3, utils.ParseCellCount("3"))
	require.Equal(t, 2, utils.ParseCellCount("2.7"))
	require.Equal(t, 0, utils.ParseCellCount("-1"))
	require.Equal(t, 0, utils.ParseCellCount(""))
	require.Equal(t, 0, utils.ParseCellCount("many"))
	require.Equal(t, 4, utils.ParseCellCount("４"))
}
