package console

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shashrwatshukla/StockXpert/internal/daterange"
	"github.com/shashrwatshukla/StockXpert/internal/model"
	"github.com/shashrwatshukla/StockXpert/internal/orchestrator"
	"github.com/shashrwatshukla/StockXpert/internal/portfolio"
	"github.com/shashrwatshukla/StockXpert/internal/view"
)

// Session is the part of the orchestrator the console drives.
type Session interface {
	SetTicker(ctx context.Context, ticker string) error
	SetChartStyle(ctx context.Context, style model.ChartStyle) error
	SelectRange(ctx context.Context, token daterange.Token) error
	SetCustomDates(ctx context.Context, start, end string) error
	Refresh(ctx context.Context) error
	TogglePortfolio() bool
	Symbols() []string
	Selection() model.Selection
	WaitSecondary()
}

// Portfolio is the part of the portfolio store the console drives.
type Portfolio interface {
	Save(ctx context.Context, raw string) error
	RefreshValuations(ctx context.Context) (view.Valuation, error)
	Reconstruct() string
}

// Dashboard prints the current state of every panel.
type Dashboard interface {
	Dashboard()
}

const helpText = `Commands:
  ticker <SYMBOL>          select a ticker
  chart <Candlestick|Line|Area>
  range <1d|5d|1m|6m|1y|5y|max>
  dates <YYYY-MM-DD> <YYYY-MM-DD>
  portfolio <SYM:QTY, ...> save holdings
  portfolio                show saved holdings
  value                    reprice the portfolio
  toggle                   collapse or expand the portfolio
  refresh                  refetch the current selection
  symbols                  list tickers
  show                     print the dashboard
  help
  quit`

// Commands maps console input onto session and portfolio triggers.
type Commands struct {
	session   Session
	portfolio Portfolio
	dash      Dashboard
	log       zerolog.Logger
}

func NewCommands(session Session, pf Portfolio, dash Dashboard, log zerolog.Logger) *Commands {
	return &Commands{
		session:   session,
		portfolio: pf,
		dash:      dash,
		log:       log.With().Str("component", "commands").Logger(),
	}
}

// Handle executes one input line. It returns the reply to print and whether
// the session should end. Fetch failures are reported through the message
// sink, so their reply is empty.
func (c *Commands) Handle(ctx context.Context, line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	cmd := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
	args := fields[1:]

	switch cmd {
	case "ticker", "t":
		if len(args) != 1 {
			return "Usage: ticker <SYMBOL>", false
		}
		return c.reply(c.session.SetTicker(ctx, args[0])), false

	case "chart", "c":
		if len(args) != 1 {
			return "Usage: chart <Candlestick|Line|Area>", false
		}
		style, err := model.ParseChartStyle(args[0])
		if err != nil {
			return err.Error(), false
		}
		return c.reply(c.session.SetChartStyle(ctx, style)), false

	case "range", "r":
		if len(args) != 1 {
			return "Usage: range <1d|5d|1m|6m|1y|5y|max>", false
		}
		token, err := daterange.ParseToken(strings.ToLower(args[0]))
		if err != nil {
			return err.Error(), false
		}
		return c.reply(c.session.SelectRange(ctx, token)), false

	case "dates", "d":
		if len(args) != 2 {
			return "Usage: dates <YYYY-MM-DD> <YYYY-MM-DD>", false
		}
		if _, err := daterange.Custom(args[0], args[1]); err != nil {
			return err.Error(), false
		}
		return c.reply(c.session.SetCustomDates(ctx, args[0], args[1])), false

	case "portfolio", "p":
		if len(args) == 0 {
			if s := c.portfolio.Reconstruct(); s != "" {
				return s, false
			}
			return view.NoHoldings, false
		}
		raw := strings.TrimSpace(line[strings.Index(line, fields[0])+len(fields[0]):])
		if err := c.portfolio.Save(ctx, raw); err != nil {
			c.log.Warn().Err(err).Msg("portfolio save failed")
		}
		return "", false

	case "value", "v":
		v, err := c.portfolio.RefreshValuations(ctx)
		if errors.Is(err, portfolio.ErrStale) {
			return "", false
		}
		if err != nil {
			return fmt.Sprintf("Valuation failed: %v", err), false
		}
		return fmt.Sprintf("Total Value: %s (%d priced)", v.Total, v.Priced), false

	case "toggle":
		if c.session.TogglePortfolio() {
			return "Portfolio collapsed", false
		}
		return "Portfolio expanded", false

	case "refresh":
		return c.reply(c.session.Refresh(ctx)), false

	case "symbols":
		syms := c.session.Symbols()
		if len(syms) == 0 {
			return "No symbols loaded", false
		}
		return strings.Join(syms, " "), false

	case "show", "s":
		c.session.WaitSecondary()
		c.dash.Dashboard()
		return "", false

	case "help", "h", "?":
		return helpText, false

	case "quit", "exit", "q":
		return "Bye", true

	default:
		return fmt.Sprintf("Unknown command %q, type help", cmd), false
	}
}

func (c *Commands) reply(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, orchestrator.ErrNoTicker):
		return "No ticker selected"
	case errors.Is(err, context.Canceled):
		return ""
	default:
		c.log.Debug().Err(err).Msg("command failed")
		return ""
	}
}
