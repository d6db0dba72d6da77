package orchestrator

import (
	"sync"

	"github.com/shashrwatshukla/StockXpert/internal/view"
)

// sinkState is everything a recordingSink has seen.
type sinkState struct {
	events     []string
	messages   []string
	charts     []view.Charts
	infos      []view.CompanyInfo
	similar    []view.SimilarList
	news       []view.NewsList
	valuations []view.Valuation
	symbols    []string
	selected   string
	active     string
	start, end string
	panels     bool
	loading    bool
	collapsed  bool
}

// recordingSink captures every sink call in order.
type recordingSink struct {
	mu sync.Mutex
	sinkState
}

func (r *recordingSink) event(e string) {
	r.events = append(r.events, e)
}

func (r *recordingSink) ShowMessage(text string, _ view.MessageKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.event("message")
	r.messages = append(r.messages, text)
}

func (r *recordingSink) HideMessage() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.event("hide-message")
}

func (r *recordingSink) SetPortfolioInput(string) {}

func (r *recordingSink) RenderHoldings(view.Holdings) {}

func (r *recordingSink) RenderValuation(v view.Valuation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.valuations = append(r.valuations, v)
}

func (r *recordingSink) ShowLoading(ticker string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.event("loading:" + ticker)
	r.loading = true
}

func (r *recordingSink) HideLoading() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.event("loaded")
	r.loading = false
}

func (r *recordingSink) SetPanelsVisible(visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panels = visible
}

func (r *recordingSink) RenderSymbols(symbols []string, selected string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.symbols, r.selected = symbols, selected
}

func (r *recordingSink) SetRange(active, start, end string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active, r.start, r.end = active, start, end
}

func (r *recordingSink) RenderCharts(c view.Charts) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.event("charts:" + c.Main.Title)
	r.charts = append(r.charts, c)
}

func (r *recordingSink) RenderCompanyInfo(info view.CompanyInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, info)
}

func (r *recordingSink) RenderSimilar(list view.SimilarList) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.similar = append(r.similar, list)
}

func (r *recordingSink) RenderNews(list view.NewsList) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.news = append(r.news, list)
}

func (r *recordingSink) SetPortfolioCollapsed(collapsed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collapsed = collapsed
}

func (r *recordingSink) snapshot() sinkState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sinkState{
		events:     append([]string(nil), r.events...),
		messages:   append([]string(nil), r.messages...),
		charts:     append([]view.Charts(nil), r.charts...),
		infos:      append([]view.CompanyInfo(nil), r.infos...),
		similar:    append([]view.SimilarList(nil), r.similar...),
		news:       append([]view.NewsList(nil), r.news...),
		valuations: append([]view.Valuation(nil), r.valuations...),
		symbols:    r.symbols,
		selected:   r.selected,
		active:     r.active,
		start:      r.start,
		end:        r.end,
		panels:     r.panels,
		loading:    r.loading,
		collapsed:  r.collapsed,
	}
}

// instantNotices forwards straight to the sink without timers.
type instantNotices struct{ sink *recordingSink }

func (n instantNotices) Show(text string, kind view.MessageKind) { n.sink.ShowMessage(text, kind) }
func (n instantNotices) Hide()                                  { n.sink.HideMessage() }
