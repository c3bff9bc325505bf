package utils

import (
	"math"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected float64
	}{
		{"string numérica", "125.43", 125.43},
		{"string com espaços", "  7 ", 7},
		{"string vazia", "", 0},
		{"string não-numérica", "abc", 0},
		{"float64", 3.14, 3.14},
		{"int", 42, 42},
		{"nil", nil, 0},
		{"NaN vira zero", math.NaN(), 0},
		{"infinito vira zero", math.Inf(1), 0},
		{"booleano verdadeiro", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToFloat(tt.input))
		})
	}
}

func TestToFloatPtr(t *testing.T) {
	assert.Nil(t, ToFloatPtr(nil))
	assert.Nil(t, ToFloatPtr(""), "string vazia é ausência de valor, não zero")
	assert.Nil(t, ToFloatPtr("   "))

	got := ToFloatPtr("402.00")
	require.NotNil(t, got)
	assert.Equal(t, 402.00, *got)

	zero := ToFloatPtr("0")
	require.NotNil(t, zero, "zero explícito é valor presente")
	assert.Equal(t, 0.0, *zero)
}

func TestToFloatPropriedades(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("nunca retorna NaN nem infinito", prop.ForAll(
		func(f float64) bool {
			got := ToFloat(f)
			return !math.IsNaN(got) && !math.IsInf(got, 0)
		},
		gen.Float64(),
	))

	properties.Property("string de float finito faz ida e volta", prop.ForAll(
		func(f float64) bool {
			s := strconv.FormatFloat(f, 'f', -1, 64)
			return ToFloat(s) == f
		},
		gen.Float64Range(-1e12, 1e12),
	))

	properties.Property("string arbitrária nunca causa panic", prop.ForAll(
		func(s string) bool {
			got := ToFloat(s)
			return !math.IsNaN(got) && !math.IsInf(got, 0)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 10.35, RoundWithTwoDecimalPlace(10.3456))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
}
