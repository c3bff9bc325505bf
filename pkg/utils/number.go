package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// ToFloat converte valores numéricos heterogêneos das APIs (string, número,
// json.Number, nil) para float64. Qualquer valor ausente ou não-parseável
// vira 0 - nunca NaN, nunca panic.
func ToFloat(v any) float64 {
	switch value := v.(type) {
	case nil:
		return 0
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return 0
		}
		return value
	case float32:
		return ToFloat(float64(value))
	case int:
		return float64(value)
	case int64:
		return float64(value)
	case json.Number:
		return parseFloatString(value.String())
	case string:
		return parseFloatString(value)
	case bool:
		if value {
			return 1
		}
		return 0
	}

	return 0
}

// ToFloatPtr é como ToFloat, mas preserva a ausência do valor: retorna nil
// quando o provedor não tem o conceito (campo ausente ou vazio)
func ToFloatPtr(v any) *float64 {
	if v == nil {
		return nil
	}

	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}

	f := ToFloat(v)
	return &f
}

func parseFloatString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return f
}
