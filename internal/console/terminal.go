package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"

	"github.com/shashrwatshukla/StockXpert/internal/view"
)

// PlainStyle disables markdown rendering.
const PlainStyle = "plain"

// Renderer turns markdown into terminal output.
type Renderer interface {
	Render(in string) (string, error)
}

type plainRenderer struct{}

func (plainRenderer) Render(in string) (string, error) { return in, nil }

// NewRenderer returns a glamour renderer for style, or a pass-through one for
// PlainStyle and the empty style.
func NewRenderer(style string, width int) (Renderer, error) {
	if style == "" || style == PlainStyle {
		return plainRenderer{}, nil
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("glamour renderer: %w", err)
	}
	return r, nil
}

// Options configures a Terminal.
type Options struct {
	// Live prints each panel as soon as it is rendered. Otherwise panels are
	// only kept for Dashboard.
	Live bool
	Rows int
}

// Terminal is a view.Sink that writes markdown panels to a writer.
type Terminal struct {
	mu   sync.Mutex
	out  io.Writer
	md   Renderer
	opts Options
	log  zerolog.Logger

	symbols   []string
	selected  string
	active    string
	start     string
	end       string
	loading   string
	visible   bool
	charts    *view.Charts
	info      *view.CompanyInfo
	similar   *view.SimilarList
	news      *view.NewsList
	input     string
	holdings  view.Holdings
	valuation *view.Valuation
	collapsed bool
	message   string
	kind      view.MessageKind
}

var _ view.Sink = (*Terminal)(nil)

// NewTerminal creates a Terminal writing to out.
func NewTerminal(out io.Writer, md Renderer, opts Options, log zerolog.Logger) *Terminal {
	if md == nil {
		md = plainRenderer{}
	}
	if opts.Rows <= 0 {
		opts.Rows = DefaultRows
	}
	return &Terminal{
		out:      out,
		md:       md,
		opts:     opts,
		log:      log.With().Str("component", "console").Logger(),
		holdings: view.Holdings{Empty: view.NoHoldings},
	}
}

func (t *Terminal) ShowMessage(text string, kind view.MessageKind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.message, t.kind = text, kind
	if t.opts.Live {
		t.line(fmt.Sprintf("[%s] %s", kind, text))
	}
}

func (t *Terminal) HideMessage() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.message, t.kind = "", ""
}

func (t *Terminal) SetPortfolioInput(raw string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.input = raw
}

func (t *Terminal) RenderHoldings(h view.Holdings) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.holdings = h
	t.valuation = nil
}

func (t *Terminal) RenderValuation(v view.Valuation) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.valuation = &v
	if t.opts.Live {
		t.markdown(FormatPortfolio(t.holdings, t.valuation, t.collapsed))
	}
}

func (t *Terminal) ShowLoading(ticker string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.loading = ticker
	if t.opts.Live {
		t.line(fmt.Sprintf("Loading %s...", ticker))
	}
}

func (t *Terminal) HideLoading() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.loading = ""
}

func (t *Terminal) SetPanelsVisible(visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.visible = visible
}

func (t *Terminal) RenderSymbols(symbols []string, selected string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.symbols = append(t.symbols[:0], symbols...)
	t.selected = selected
}

func (t *Terminal) SetRange(active, start, end string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active, t.start, t.end = active, start, end
}

func (t *Terminal) RenderCharts(c view.Charts) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.charts = &c
	t.similar, t.news = nil, nil
	if t.opts.Live {
		t.markdown(FormatRange(t.active, t.start, t.end) + "\n" + FormatCharts(c, t.opts.Rows))
	}
}

func (t *Terminal) RenderCompanyInfo(info view.CompanyInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.info = &info
	if t.opts.Live {
		t.markdown(FormatCompanyInfo(info))
	}
}

func (t *Terminal) RenderSimilar(list view.SimilarList) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.similar = &list
	if t.opts.Live {
		t.markdown(FormatSimilar(list))
	}
}

func (t *Terminal) RenderNews(list view.NewsList) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.news = &list
	if t.opts.Live {
		t.markdown(FormatNews(list))
	}
}

func (t *Terminal) SetPortfolioCollapsed(collapsed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.collapsed = collapsed
}

// Loading reports the ticker currently being fetched, if any.
func (t *Terminal) Loading() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

// Message returns the visible message, empty when hidden.
func (t *Terminal) Message() (string, view.MessageKind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.message, t.kind
}

// PortfolioInput returns the text last restored into the portfolio input.
func (t *Terminal) PortfolioInput() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.input
}

// Dashboard writes every panel. Data panels are left out while hidden.
func (t *Terminal) Dashboard() {
	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	b.WriteString("# StockXpert\n\n")
	if t.selected != "" || len(t.symbols) > 0 {
		b.WriteString(fmt.Sprintf("**Ticker:** %s (%d symbols)\n\n", t.selected, len(t.symbols)))
	}
	if t.start != "" {
		b.WriteString(FormatRange(t.active, t.start, t.end) + "\n")
	}
	if t.message != "" {
		b.WriteString(fmt.Sprintf("> **%s:** %s\n\n", t.kind, t.message))
	}
	if t.visible {
		if t.charts != nil {
			b.WriteString(FormatCharts(*t.charts, t.opts.Rows))
		}
		if t.info != nil {
			b.WriteString(FormatCompanyInfo(*t.info))
		}
		if t.similar != nil {
			b.WriteString(FormatSimilar(*t.similar))
		}
		if t.news != nil {
			b.WriteString(FormatNews(*t.news))
		}
	}
	b.WriteString(FormatPortfolio(t.holdings, t.valuation, t.collapsed))
	t.markdown(b.String())
}

// Portfolio writes only the portfolio panel.
func (t *Terminal) Portfolio() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.markdown(FormatPortfolio(t.holdings, t.valuation, false))
}

// Print writes a plain line, serialized with panel output.
func (t *Terminal) Print(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.line(text)
}

func (t *Terminal) prompt() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := io.WriteString(t.out, Prompt); err != nil {
		t.log.Warn().Err(err).Msg("write failed")
	}
}

func (t *Terminal) line(text string) {
	if _, err := fmt.Fprintln(t.out, text); err != nil {
		t.log.Warn().Err(err).Msg("write failed")
	}
}

func (t *Terminal) markdown(md string) {
	out, err := t.md.Render(md)
	if err != nil {
		t.log.Warn().Err(err).Msg("markdown render failed, writing raw")
		out = md
	}
	if _, err := io.WriteString(t.out, out); err != nil {
		t.log.Warn().Err(err).Msg("write failed")
	}
}
