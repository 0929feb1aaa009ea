package search_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/services/search"
	"weather-dashboard/pkg/logger"
)

const testWindow = 50 * time.Millisecond

// MockCityRepository serves a fixed directory of cities matching by prefix.
type MockCityRepository struct {
	mu       sync.Mutex
	total    int
	pageSize int
	err      error
	queries  []models.CityQuery
}

func (m *MockCityRepository) FindCities(ctx context.Context, q models.CityQuery) (models.CityPage, error) {
	m.mu.Lock()
	m.queries = append(m.queries, q)
	m.mu.Unlock()

	if m.err != nil {
		return models.CityPage{}, m.err
	}

	page := models.CityPage{Offset: q.Offset, TotalCount: m.total}
	for i := q.Offset; i < m.total && i < q.Offset+m.pageSize; i++ {
		page.Cities = append(page.Cities, models.NewCitySelection(
			fmt.Sprintf("%s%d", q.NamePrefix, i), "IN",
			models.Coordinate{Latitude: float64(i), Longitude: float64(i)},
		))
	}
	return page, nil
}

func (m *MockCityRepository) calls() []models.CityQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.CityQuery(nil), m.queries...)
}

func newSearcher(repo *MockCityRepository) *search.Searcher {
	return search.NewSearcher(repo, "IN", testWindow, logger.NewZapLogger("test-app", io.Discard))
}

func TestSearcher_DebounceKeepsOnlyLastQuery(t *testing.T) {
	repo := &MockCityRepository{total: 3, pageSize: 5}
	s := newSearcher(repo)
	defer s.Close()

	keystrokes := []string{"D", "De", "Del"}
	errs := make([]error, len(keystrokes))
	results := make([]search.Result, len(keystrokes))

	var wg sync.WaitGroup
	for i, q := range keystrokes {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			results[i], errs[i] = s.Search(context.Background(), q, false)
		}(i, q)
		time.Sleep(testWindow / 5)
	}
	wg.Wait()

	assert.ErrorIs(t, errs[0], search.ErrSuperseded)
	assert.ErrorIs(t, errs[1], search.ErrSuperseded)
	assert.True(t, search.IsSuperseded(errs[0]))
	require.NoError(t, errs[2])

	calls := repo.calls()
	require.Len(t, calls, 1, "only the query after the quiet window reaches the network")
	assert.Equal(t, "Del", calls[0].NamePrefix)
	assert.Equal(t, "IN", calls[0].CountryIDs)

	assert.Equal(t, "Del", results[2].Query)
	assert.Len(t, results[2].Options, 3)
	assert.Equal(t, "Del0, IN", results[2].Options[0].Label)
}

func TestSearcher_SpacedQueriesEachHitNetwork(t *testing.T) {
	repo := &MockCityRepository{total: 1, pageSize: 5}
	s := newSearcher(repo)
	defer s.Close()

	_, err := s.Search(context.Background(), "Pu", false)
	require.NoError(t, err)
	_, err = s.Search(context.Background(), "Pu", false)
	require.NoError(t, err)

	assert.Len(t, repo.calls(), 2, "no caching of repeated queries")
}

func TestSearcher_PaginationExtendsOptions(t *testing.T) {
	repo := &MockCityRepository{total: 7, pageSize: 5}
	s := newSearcher(repo)
	defer s.Close()

	first, err := s.Search(context.Background(), "Mum", false)
	require.NoError(t, err)
	assert.Len(t, first.Options, 5)
	assert.True(t, first.HasMore)

	start := time.Now()
	second, err := s.Search(context.Background(), "Mum", true)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), testWindow, "paging is not debounced")

	assert.Len(t, second.Options, 7)
	assert.False(t, second.HasMore)
	assert.Equal(t, first.Options, second.Options[:5])

	calls := repo.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, 5, calls[1].Offset)

	// nothing left to load
	third, err := s.Search(context.Background(), "Mum", true)
	require.NoError(t, err)
	assert.Len(t, third.Options, 7)
	assert.Len(t, repo.calls(), 2)
}

func TestSearcher_MoreWithNewQueryStartsOver(t *testing.T) {
	repo := &MockCityRepository{total: 7, pageSize: 5}
	s := newSearcher(repo)
	defer s.Close()

	_, err := s.Search(context.Background(), "Mum", false)
	require.NoError(t, err)

	res, err := s.Search(context.Background(), "Pun", true)
	require.NoError(t, err)

	assert.Equal(t, "Pun", res.Query)
	assert.Len(t, res.Options, 5)
	assert.Equal(t, 0, repo.calls()[1].Offset)
}

func TestSearcher_ProviderFailurePropagates(t *testing.T) {
	providerErr := errors.New("status 403")
	repo := &MockCityRepository{err: providerErr}
	s := newSearcher(repo)
	defer s.Close()

	res, err := s.Search(context.Background(), "Del", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, providerErr)
	assert.Empty(t, res.Options)
}

func TestSearcher_CloseCancelsPendingQuery(t *testing.T) {
	repo := &MockCityRepository{total: 3, pageSize: 5}
	s := newSearcher(repo)

	errCh := make(chan error, 1)
	go func() {
		_, err := s.Search(context.Background(), "Che", false)
		errCh <- err
	}()

	time.Sleep(testWindow / 5)
	s.Close()

	assert.ErrorIs(t, <-errCh, search.ErrStopped)
	assert.Empty(t, repo.calls())

	_, err := s.Search(context.Background(), "Chennai", false)
	assert.ErrorIs(t, err, search.ErrStopped)
}

func TestDebouncer_ContextCancellation(t *testing.T) {
	d := search.NewDebouncer(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, d.Wait(ctx), context.DeadlineExceeded)

	// a cancelled waiter does not block later calls
	d2 := search.NewDebouncer(time.Millisecond)
	assert.NoError(t, d2.Wait(context.Background()))
	assert.NoError(t, d2.Wait(context.Background()))
}
