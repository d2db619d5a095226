package ui

import (
	"math"
	"strconv"

	"aidash/internal/display"
	"aidash/internal/models"
)

const noData = display.NoData

func formatCell(v any) string {
	switch x := v.(type) {
	case models.Float:
		return formatCell(float64(x))
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case string:
		return x
	default:
		return ""
	}
}
