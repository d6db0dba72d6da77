package view

import "github.com/shashrwatshukla/StockXpert/internal/model"

// Trace kinds.
const (
	KindCandlestick = "candlestick"
	KindScatter     = "scatter"
	KindBar         = "bar"
)

// Palette.
const (
	ColorUp      = "#34d399"
	ColorDown    = "#f87171"
	ColorPrimary = "#22d3ee"
	ColorBands   = "#f472b6"
	ColorVolume  = "#7d8590"
	ColorAccent  = "#a78bfa"
)

// Trace is one plotted series. Y holds the line/bar values; candlesticks use
// Open/High/Low/Close instead. Nil entries are gaps.
type Trace struct {
	Name   string
	Kind   string
	X      []string
	Y      []*float64
	Open   []*float64
	High   []*float64
	Low    []*float64
	Close  []*float64
	Color  string
	Colors []string // per-point bar colors
	Dash   string
	Fill   string
	Width  int
}

// Shape is a straight reference line.
type Shape struct {
	X0, X1 string
	Y0, Y1 float64
	Color  string
	Dash   string
}

// Chart groups traces under one title.
type Chart struct {
	Title  string
	Traces []Trace
	Shapes []Shape
	YRange *[2]float64
}

// Charts is the full chart panel for one fetch.
type Charts struct {
	Main   Chart
	Volume Chart
	ATR    Chart
	MACD   Chart
	RSI    Chart
}

// RSI reference levels.
const (
	RSIOversold   = 30
	RSIOverbought = 70
)

type column func(model.HistoryPoint) *float64

func project(history []model.HistoryPoint, col column) []*float64 {
	out := make([]*float64, len(history))
	for i, p := range history {
		out[i] = col(p)
	}
	return out
}

func dates(history []model.HistoryPoint) []string {
	out := make([]string, len(history))
	for i, p := range history {
		out[i] = p.Date
	}
	return out
}

// BuildCharts projects history into the five chart panels.
func BuildCharts(ticker string, history []model.HistoryPoint, style model.ChartStyle) Charts {
	x := dates(history)
	return Charts{
		Main:   mainChart(ticker, history, x, style),
		Volume: Chart{Traces: []Trace{{Name: "Volume", Kind: KindBar, X: x, Y: project(history, func(p model.HistoryPoint) *float64 { return p.Volume }), Color: ColorVolume}}},
		ATR:    Chart{Traces: []Trace{{Name: "ATR", Kind: KindScatter, X: x, Y: project(history, func(p model.HistoryPoint) *float64 { return p.ATR }), Color: ColorAccent}}},
		MACD:   macdChart(history, x),
		RSI:    rsiChart(history, x),
	}
}

func mainChart(ticker string, history []model.HistoryPoint, x []string, style model.ChartStyle) Chart {
	closes := project(history, func(p model.HistoryPoint) *float64 { return p.Close })

	var primary Trace
	switch style {
	case model.Line:
		primary = Trace{Name: "Close", Kind: KindScatter, X: x, Y: closes, Color: ColorPrimary, Width: 2}
	case model.Area:
		primary = Trace{Name: "Close", Kind: KindScatter, X: x, Y: closes, Color: ColorPrimary, Width: 2, Fill: "tozeroy"}
	default:
		primary = Trace{
			Name:  "Price",
			Kind:  KindCandlestick,
			X:     x,
			Open:  project(history, func(p model.HistoryPoint) *float64 { return p.Open }),
			High:  project(history, func(p model.HistoryPoint) *float64 { return p.High }),
			Low:   project(history, func(p model.HistoryPoint) *float64 { return p.Low }),
			Close: closes,
			Color: ColorUp,
		}
	}

	return Chart{
		Title: ticker + " Price Analysis",
		Traces: []Trace{
			primary,
			{Name: "BB Upper", Kind: KindScatter, X: x, Y: project(history, func(p model.HistoryPoint) *float64 { return p.BBUpper }), Color: ColorBands, Dash: "dot", Width: 1},
			{Name: "BB Lower", Kind: KindScatter, X: x, Y: project(history, func(p model.HistoryPoint) *float64 { return p.BBLower }), Color: ColorBands, Dash: "dot", Width: 1},
		},
	}
}

func macdChart(history []model.HistoryPoint, x []string) Chart {
	hist := project(history, func(p model.HistoryPoint) *float64 { return p.Histogram })
	colors := make([]string, len(hist))
	for i, v := range hist {
		if v != nil && *v >= 0 {
			colors[i] = ColorUp
		} else {
			colors[i] = ColorDown
		}
	}
	return Chart{
		Title: "MACD",
		Traces: []Trace{
			{Name: "MACD", Kind: KindScatter, X: x, Y: project(history, func(p model.HistoryPoint) *float64 { return p.MACD }), Color: ColorPrimary},
			{Name: "Signal", Kind: KindScatter, X: x, Y: project(history, func(p model.HistoryPoint) *float64 { return p.Signal }), Color: ColorBands},
			{Name: "Histogram", Kind: KindBar, X: x, Y: hist, Colors: colors},
		},
	}
}

func rsiChart(history []model.HistoryPoint, x []string) Chart {
	c := Chart{
		Title:  "RSI (14)",
		Traces: []Trace{{Name: "RSI", Kind: KindScatter, X: x, Y: project(history, func(p model.HistoryPoint) *float64 { return p.RSI }), Color: ColorAccent}},
		YRange: &[2]float64{0, 100},
	}
	if len(x) == 0 {
		return c
	}
	first, last := x[0], x[len(x)-1]
	for _, level := range []float64{RSIOversold, RSIOverbought} {
		c.Shapes = append(c.Shapes, Shape{X0: first, X1: last, Y0: level, Y1: level, Color: ColorDown, Dash: "dot"})
	}
	return c
}
