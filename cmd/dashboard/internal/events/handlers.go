package events

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/app"
	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/protocol"
	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/render"
)

const (
	SearchSection = "search-section"
	StocksSection = "stocks-section"
	SearchInput   = "stockSearch"

	// focus lands once the smooth scroll to the search bar has settled
	heroFocusDelayMS = 800
	loadMoreDelayMS  = 1000
)

type handlers struct {
	app      *app.App
	renderer *render.Renderer
	logger   *zap.Logger
	d        *Dispatcher
}

// Bind registers the dashboard's event handlers on d and broadcasts a fresh
// render to every source whenever the collection changes.
func Bind(d *Dispatcher, a *app.App, r *render.Renderer, logger *zap.Logger) {
	h := &handlers{app: a, renderer: r, logger: logger, d: d}

	d.Register(protocol.EventSearchSubmit, h.searchSubmit)
	d.Register(protocol.EventSearchFocus, h.searchFocus)
	d.Register(protocol.EventSearchBlur, h.searchBlur)
	d.Register(protocol.EventSuggestionClick, h.suggestionClick)
	d.Register(protocol.EventKeyDown, h.keyDown)
	d.Register(protocol.EventHeroStart, h.heroStart)
	d.Register(protocol.EventHeroLearnMore, h.heroLearnMore)
	d.Register(protocol.EventLinkClick, h.linkClick)
	d.Register(protocol.EventCardAnalyze, h.cardAnalyze)
	d.Register(protocol.EventGridLoadMore, h.gridLoadMore)
	d.Register(protocol.EventStocksRender, h.stocksRender)

	a.OnChange(func() {
		data, err := h.renderData()
		if err != nil {
			logger.Error("Failed to render stocks", zap.Error(err))
			return
		}
		d.Broadcast(protocol.Response{Type: protocol.TypeRender, Data: data})
	})
}

func (h *handlers) searchSubmit(src Source, ev protocol.Event) {
	res, ok := h.app.SubmitSearch(ev.Payload.Value)
	if !ok {
		sendAck(src, ev.ID, protocol.StatusIgnored, "empty search")
		return
	}
	send(src, ev.ID, protocol.TypeNotification, res.Notification)
	send(src, ev.ID, protocol.TypeSearchResults, res)
}

func (h *handlers) searchFocus(src Source, ev protocol.Event) {
	h.app.SetSearchActive(true)
	sendAck(src, ev.ID, protocol.StatusSuccess, "search active")
}

func (h *handlers) searchBlur(src Source, ev protocol.Event) {
	h.app.SetSearchActive(false)
	sendAck(src, ev.ID, protocol.StatusSuccess, "search inactive")
}

func (h *handlers) suggestionClick(src Source, ev protocol.Event) {
	h.app.SetSearchValue(ev.Payload.Symbol)
	ev.Payload.Value = ev.Payload.Symbol
	h.searchSubmit(src, ev)
}

func (h *handlers) keyDown(src Source, ev protocol.Event) {
	p := ev.Payload
	switch {
	case (p.Ctrl || p.Meta) && strings.EqualFold(p.Key, "k"):
		h.app.FocusSearch()
		send(src, ev.ID, protocol.TypeFocus, protocol.FocusDirective{Target: SearchInput})
	case p.Key == "Escape":
		h.app.SetSearchValue("")
		send(src, ev.ID, protocol.TypeSearchValue, map[string]string{"value": ""})
	default:
		sendAck(src, ev.ID, protocol.StatusIgnored, "")
	}
}

func (h *handlers) heroStart(src Source, ev protocol.Event) {
	send(src, ev.ID, protocol.TypeScroll, scrollTo(SearchSection, "center"))
	send(src, ev.ID, protocol.TypeFocus, protocol.FocusDirective{Target: SearchInput, DelayMS: heroFocusDelayMS})
}

func (h *handlers) heroLearnMore(src Source, ev protocol.Event) {
	send(src, ev.ID, protocol.TypeScroll, scrollTo(StocksSection, "start"))
}

func (h *handlers) linkClick(src Source, ev protocol.Event) {
	href := ev.Payload.Href
	if !strings.HasPrefix(href, "#") || len(href) < 2 {
		sendError(src, ev.ID, "Not an in-page link: "+href)
		return
	}
	send(src, ev.ID, protocol.TypeScroll, scrollTo(href[1:], "start"))
}

func (h *handlers) cardAnalyze(src Source, ev protocol.Event) {
	symbol := strings.ToUpper(strings.TrimSpace(ev.Payload.Symbol))
	out, err := h.app.Analyze(symbol)
	if errors.Is(err, app.ErrAnalysisUnavailable) {
		sendAck(src, ev.ID, protocol.StatusSuccess, "Analyzing stock: "+symbol)
		return
	}
	if err != nil {
		sendError(src, ev.ID, err.Error())
		return
	}
	send(src, ev.ID, protocol.TypeAnalysis, out)
}

func (h *handlers) gridLoadMore(src Source, ev protocol.Event) {
	h.logger.Info("Loading more stocks")
	send(src, ev.ID, protocol.TypeLoadMore, []protocol.LoadMoreStep{
		{Label: "Loading...", Disabled: true, AfterMS: 0},
		{Label: "Load More Stocks", Disabled: false, AfterMS: loadMoreDelayMS},
	})
}

func (h *handlers) stocksRender(src Source, ev protocol.Event) {
	data, err := h.renderData()
	if err != nil {
		sendError(src, ev.ID, "render failed")
		return
	}
	send(src, ev.ID, protocol.TypeRender, data)
}

func (h *handlers) renderData() (protocol.RenderData, error) {
	grid, err := h.renderer.Grid(h.app.GetStocks())
	if err != nil {
		return protocol.RenderData{}, err
	}
	return protocol.RenderData{Grid: grid, Summary: h.app.Summary()}, nil
}

func scrollTo(target, block string) protocol.ScrollDirective {
	return protocol.ScrollDirective{Target: target, Behavior: "smooth", Block: block}
}
