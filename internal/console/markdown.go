package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shashrwatshukla/StockXpert/internal/view"
)

// DefaultRows is how many trailing trading days each chart table shows.
const DefaultRows = 10

// FormatRange renders the date inputs and the highlighted range button.
func FormatRange(active, start, end string) string {
	if active == "" {
		active = "custom"
	}
	return fmt.Sprintf("**Range:** %s → %s (%s)\n", start, end, active)
}

// FormatCharts renders every chart panel as a table of its last rows points.
func FormatCharts(c view.Charts, rows int) string {
	var b strings.Builder
	for _, ch := range []view.Chart{c.Main, c.Volume, c.ATR, c.MACD, c.RSI} {
		b.WriteString(formatChart(ch, rows))
	}
	return b.String()
}

func formatChart(c view.Chart, rows int) string {
	if len(c.Traces) == 0 {
		return ""
	}
	title := c.Title
	if title == "" {
		title = c.Traces[0].Name
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("## %s\n\n", title))

	x := c.Traces[0].X
	if len(x) == 0 {
		b.WriteString("_No data_\n\n")
		return b.String()
	}

	type col struct {
		name   string
		values []*float64
	}
	var cols []col
	for _, t := range c.Traces {
		if t.Kind == view.KindCandlestick {
			cols = append(cols,
				col{"Open", t.Open}, col{"High", t.High}, col{"Low", t.Low}, col{"Close", t.Close})
			continue
		}
		cols = append(cols, col{t.Name, t.Y})
	}

	b.WriteString("| Date |")
	for _, cl := range cols {
		b.WriteString(" " + cl.name + " |")
	}
	b.WriteString("\n|---|")
	b.WriteString(strings.Repeat("---:|", len(cols)))
	b.WriteString("\n")

	from := 0
	if rows > 0 && len(x) > rows {
		from = len(x) - rows
	}
	for i := from; i < len(x); i++ {
		b.WriteString("| " + x[i] + " |")
		for _, cl := range cols {
			var v *float64
			if i < len(cl.values) {
				v = cl.values[i]
			}
			b.WriteString(" " + cell(v) + " |")
		}
		b.WriteString("\n")
	}

	if len(c.Shapes) > 0 {
		levels := make([]string, len(c.Shapes))
		for i, s := range c.Shapes {
			levels[i] = strconv.FormatFloat(s.Y0, 'f', -1, 64)
		}
		b.WriteString("\nReference levels: " + strings.Join(levels, ", ") + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func cell(v *float64) string {
	if v == nil {
		return view.Placeholder
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// FormatCompanyInfo renders the fundamentals panel.
func FormatCompanyInfo(ci view.CompanyInfo) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("## %s (%s)\n\n", ci.Name, ci.Symbol))
	b.WriteString(fmt.Sprintf("**Sector:** %s | **Industry:** %s | **Website:** [%s](%s)\n\n",
		ci.Sector, ci.Industry, ci.Website, ci.Link))
	b.WriteString(ci.Summary + "\n\n")
	b.WriteString("| Metric | Value |\n|---|---:|\n")
	for _, kv := range [][2]string{
		{"Market Cap", ci.MarketCap},
		{"P/E Ratio", ci.PERatio},
		{"EPS", ci.EPS},
		{"Dividend Yield", ci.DividendYield},
		{"52W High", ci.High52w},
		{"52W Low", ci.Low52w},
		{"Avg Volume", ci.AvgVolume},
		{"Beta", ci.Beta},
	} {
		b.WriteString(fmt.Sprintf("| %s | %s |\n", kv[0], kv[1]))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatSimilar renders the peer list.
func FormatSimilar(l view.SimilarList) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("## %s\n\n", l.Title))
	if len(l.Items) == 0 {
		b.WriteString("_" + l.Empty + "_\n\n")
		return b.String()
	}
	for _, it := range l.Items {
		b.WriteString(fmt.Sprintf("- **%s** %s\n", it.Symbol, it.Price))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatNews renders the headlines.
func FormatNews(l view.NewsList) string {
	var b strings.Builder
	b.WriteString("## Latest News\n\n")
	if len(l.Items) == 0 {
		b.WriteString("_" + l.Empty + "_\n\n")
		return b.String()
	}
	for _, n := range l.Items {
		b.WriteString(fmt.Sprintf("- [%s](%s) %s\n", n.Title, n.Link, n.Date))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatPortfolio renders the holdings, priced when v is non-nil.
func FormatPortfolio(h view.Holdings, v *view.Valuation, collapsed bool) string {
	var b strings.Builder
	if collapsed {
		b.WriteString("## Portfolio (collapsed)\n\n")
		return b.String()
	}
	b.WriteString("## Portfolio\n\n")

	rows := h.Rows
	if v != nil {
		rows = v.Rows
	}
	if len(rows) == 0 {
		b.WriteString("_" + view.NoHoldings + "_\n\n")
	} else {
		b.WriteString("| Symbol | Shares | Price | Value |\n|---|---:|---:|---:|\n")
		for _, r := range rows {
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", r.Symbol, r.Shares, r.Price, r.Value))
		}
		b.WriteString("\n")
	}
	if v != nil {
		b.WriteString(fmt.Sprintf("**Total Value:** %s\n\n", v.Total))
	}
	return b.String()
}
