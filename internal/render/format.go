package render

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var goalNames = map[string]string{
	"strength":    "Strength",
	"hypertrophy": "Hypertrophy",
	"endurance":   "Endurance",
	"weight_loss": "Weight Loss",
}

// FormatGoalName maps a goal key to its label. Unknown keys are shown as they are.
func FormatGoalName(goal string) string {
	if name, ok := goalNames[goal]; ok {
		return name
	}
	return goal
}

// FormatSubcategory turns "upper_chest" into "Upper Chest".
func FormatSubcategory(subcategory string) string {
	words := strings.Split(subcategory, "_")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// capitalize upper cases the first letter only, the rest is kept as is.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func formatNumber(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
