package models

const (
	QuoteKeyPrefix     = "quote:"
	QuoteChannelPrefix = "quotes."
)

// QuoteKey is the cache key holding the latest quote for symbol.
func QuoteKey(symbol string) string { return QuoteKeyPrefix + symbol }

// QuoteChannel is the pub/sub channel quote ticks for symbol are published on.
func QuoteChannel(symbol string) string { return QuoteChannelPrefix + symbol }
