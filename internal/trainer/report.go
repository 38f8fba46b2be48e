package trainer

import (
	"strconv"
	"strings"

	"xornet/internal/model"
)

func formatInput(x [model.NumInputs]float64) string {
	parts := make([]string, len(x))
	for i, v := range x {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}
