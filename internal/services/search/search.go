package search

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/pkg/logger"
)

// Result is the option list accumulated for Query so far.
type Result struct {
	Query   string
	Options []models.CitySelection
	HasMore bool
}

// Searcher serves the typeahead city search of one session. New queries are
// debounced; paging through the same query extends the option list.
type Searcher struct {
	repo       repositories.CityRepository
	countryIDs string
	debouncer  *Debouncer
	l          *logger.Logger

	mu      sync.Mutex
	seq     uint64
	query   string
	options []models.CitySelection
	hasMore bool
}

func NewSearcher(repo repositories.CityRepository, countryIDs string, debounce time.Duration, l *logger.Logger) *Searcher {
	return &Searcher{
		repo:       repo,
		countryIDs: countryIDs,
		debouncer:  NewDebouncer(debounce),
		l:          l,
	}
}

// Search loads the first page for query after the debounce window, or, with
// more set and the same query as before, the next page.
func (s *Searcher) Search(ctx context.Context, query string, more bool) (Result, error) {
	s.mu.Lock()
	paging := more && query == s.query && s.query != ""
	offset := 0
	if paging {
		if !s.hasMore {
			res := s.resultLocked()
			s.mu.Unlock()
			return res, nil
		}
		offset = len(s.options)
	}
	s.mu.Unlock()

	var seq uint64
	if !paging {
		if err := s.debouncer.Wait(ctx); err != nil {
			return Result{Query: query}, err
		}
		s.mu.Lock()
		s.seq++
		seq = s.seq
		s.mu.Unlock()
	}

	s.l.Debug("searching cities", map[string]any{
		"query":  query,
		"offset": offset,
	})

	page, err := s.repo.FindCities(ctx, models.CityQuery{
		NamePrefix: query,
		CountryIDs: s.countryIDs,
		Offset:     offset,
	})
	if err != nil {
		return Result{Query: query}, errors.Wrap(err, "city search failed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if paging {
		if s.query != query || len(s.options) != offset {
			// the list moved on while this page was loading
			return s.resultLocked(), nil
		}
		s.options = append(s.options, page.Cities...)
	} else {
		if seq != s.seq {
			return Result{Query: query}, ErrSuperseded
		}
		s.query = query
		s.options = append([]models.CitySelection(nil), page.Cities...)
	}
	s.hasMore = page.HasMore()

	return s.resultLocked(), nil
}

func (s *Searcher) resultLocked() Result {
	return Result{
		Query:   s.query,
		Options: append([]models.CitySelection(nil), s.options...),
		HasMore: s.hasMore,
	}
}

// Close cancels a pending debounced query.
func (s *Searcher) Close() {
	s.debouncer.Stop()
}

func IsSuperseded(err error) bool {
	return errors.Is(err, ErrSuperseded)
}
