package view

// MessageKind styles a user-visible message.
type MessageKind string

const (
	Info    MessageKind = "info"
	Success MessageKind = "success"
	Error   MessageKind = "error"
)

// MessageSink displays and hides the single message box.
type MessageSink interface {
	ShowMessage(text string, kind MessageKind)
	HideMessage()
}

// PortfolioSink receives the portfolio panel.
type PortfolioSink interface {
	SetPortfolioInput(raw string)
	RenderHoldings(h Holdings)
	RenderValuation(v Valuation)
}

// Sink is the whole rendering surface. Implementations must not call back
// into the session that drives them.
type Sink interface {
	MessageSink
	PortfolioSink

	ShowLoading(ticker string)
	HideLoading()
	SetPanelsVisible(visible bool)

	RenderSymbols(symbols []string, selected string)
	// SetRange reflects the dates in the inputs. active is the highlighted
	// range token, empty for explicit dates.
	SetRange(active, start, end string)
	RenderCharts(c Charts)
	RenderCompanyInfo(info CompanyInfo)
	RenderSimilar(list SimilarList)
	RenderNews(list NewsList)
	SetPortfolioCollapsed(collapsed bool)
}
