package model

import (
	"fmt"
	"strings"
)

// ChartStyle selects how the primary price series is drawn.
type ChartStyle string

const (
	Candlestick ChartStyle = "Candlestick"
	Line        ChartStyle = "Line"
	Area        ChartStyle = "Area"
)

// ParseChartStyle accepts a style name in any letter case.
func ParseChartStyle(s string) (ChartStyle, error) {
	for _, cs := range []ChartStyle{Candlestick, Line, Area} {
		if strings.EqualFold(s, string(cs)) {
			return cs, nil
		}
	}
	return "", fmt.Errorf("unknown chart style %q", s)
}

// Selection is what the user is currently looking at.
type Selection struct {
	Ticker     string
	StartDate  string // YYYY-MM-DD
	EndDate    string // YYYY-MM-DD
	ChartStyle ChartStyle
}
