package protocol

// Inbound UI events.
const (
	EventSearchSubmit    = "search.submit"
	EventSearchFocus     = "search.focus"
	EventSearchBlur      = "search.blur"
	EventSuggestionClick = "suggestion.click"
	EventKeyDown         = "key.down"
	EventHeroStart       = "hero.start"
	EventHeroLearnMore   = "hero.learn_more"
	EventLinkClick       = "link.click"
	EventCardAnalyze     = "card.analyze"
	EventGridLoadMore    = "grid.load_more"
	EventStocksRender    = "stocks.render"
)

// Outbound message types.
const (
	TypeAck           = "ack"
	TypeError         = "error"
	TypeRender        = "render"
	TypeScroll        = "scroll"
	TypeFocus         = "focus"
	TypeSearchValue   = "search_value"
	TypeNotification  = "notification"
	TypeSearchResults = "search_results"
	TypeAnalysis      = "analysis"
	TypeLoadMore      = "load_more"
)

const (
	StatusSuccess = "success"
	StatusIgnored = "ignored"
)

type Event struct {
	Type    string       `json:"type"`
	Payload EventPayload `json:"payload"`
	ID      string       `json:"id,omitempty"`
}

type EventPayload struct {
	Value  string `json:"value,omitempty"`
	Symbol string `json:"symbol,omitempty"`
	Key    string `json:"key,omitempty"`
	Href   string `json:"href,omitempty"`
	Ctrl   bool   `json:"ctrl,omitempty"`
	Meta   bool   `json:"meta,omitempty"`
}

type Response struct {
	Type    string      `json:"type"`
	ID      string      `json:"id,omitempty"`     // Matches event ID
	Status  string      `json:"status,omitempty"` // "success", "ignored"
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ScrollDirective asks the page to scroll an element into view.
type ScrollDirective struct {
	Target   string `json:"target"`
	Behavior string `json:"behavior"`
	Block    string `json:"block"`
}

// FocusDirective asks the page to focus an element, optionally after a delay.
type FocusDirective struct {
	Target  string `json:"target"`
	DelayMS int    `json:"delay_ms,omitempty"`
}

type LoadMoreStep struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
	AfterMS  int    `json:"after_ms"`
}

type RenderData struct {
	Grid    string      `json:"grid"`
	Summary interface{} `json:"summary"`
}
