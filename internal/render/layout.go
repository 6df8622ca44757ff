package render

import (
	"errors"
	"fmt"
	"strings"
)

// Layout selects between the two result page variants. The rich one adds
// macro percentages with bars and the exercise form overlay.
type Layout string

const (
	LayoutBasic Layout = "basic"
	LayoutRich  Layout = "rich"
)

var ErrUnknownLayout = errors.New("unknown layout")

func ParseLayout(s string) (Layout, error) {
	switch l := Layout(strings.ToLower(strings.TrimSpace(s))); l {
	case LayoutBasic, LayoutRich:
		return l, nil
	case "":
		return LayoutRich, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLayout, s)
	}
}
