package analysis

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Service answers analysis queries over a fixed history, memoizing results
// per ticker.
type Service struct {
	bars  []Bar
	cache *cache.Cache
}

func NewService(bars []Bar, ttl time.Duration) *Service {
	return &Service{
		bars:  bars,
		cache: cache.New(ttl, 2*ttl),
	}
}

// LoadService reads the CSV history at path.
func LoadService(path string, ttl time.Duration) (*Service, error) {
	bars, err := LoadHistoryFile(path)
	if err != nil {
		return nil, err
	}
	return NewService(bars, ttl), nil
}

func (s *Service) Tickers() []string {
	return Tickers(s.bars)
}

func (s *Service) Outlook(ticker string) (Outlook, error) {
	key := "outlook:" + ticker
	if v, ok := s.cache.Get(key); ok {
		return v.(Outlook), nil
	}

	out, err := ComputeOutlook(ticker, s.bars)
	if err != nil {
		return Outlook{}, err
	}
	s.cache.SetDefault(key, out)
	return out, nil
}

func (s *Service) Trend(ticker string) ([]TrendPoint, error) {
	key := "trend:" + ticker
	if v, ok := s.cache.Get(key); ok {
		return v.([]TrendPoint), nil
	}

	points, err := Trend(ticker, s.bars)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, points)
	return points, nil
}
