package catalog

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relove-market/storefront/internal/errors"
	"github.com/relove-market/storefront/pkg/response"
)

type fakeLister struct {
	handler func(q Query) (response.ProductPage, error)
	mu      sync.Mutex
	queries []Query
}

func (f *fakeLister) ListProducts(_ context.Context, q Query) (response.ProductPage, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	handler := f.handler
	f.mu.Unlock()
	return handler(q)
}

func (f *fakeLister) recorded() []Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Query(nil), f.queries...)
}

func product(id int64, name string) response.Product {
	return response.Product{ID: id, Name: name}
}

func pageOf(last bool, products ...response.Product) (response.ProductPage, error) {
	return response.ProductPage{Content: products, Last: last}, nil
}

func TestRefreshLoadsPageZero(t *testing.T) {
	lister := &fakeLister{handler: func(q Query) (response.ProductPage, error) {
		return pageOf(false, product(1, "Denim Jacket"), product(2, "Silk Scarf"))
	}}
	controller := NewController(lister, 8, "id,desc")

	err := controller.Refresh(context.Background())

	require.NoError(t, err)
	queries := lister.recorded()
	require.Len(t, queries, 1)
	assert.Equal(t, 0, queries[0].Page)
	assert.Equal(t, 8, queries[0].Size)
	assert.Equal(t, "id,desc", queries[0].Sort)
	assert.Len(t, controller.Items(), 2)
	assert.Equal(t, 0, controller.PageIndex())
	assert.True(t, controller.HasMore())
	assert.False(t, controller.IsLoading())
}

func TestLoadMoreAppendsInOrder(t *testing.T) {
	lister := &fakeLister{handler: func(q Query) (response.ProductPage, error) {
		switch q.Page {
		case 0:
			return pageOf(false, product(1, "Denim Jacket"))
		case 1:
			return pageOf(true, product(2, "Silk Scarf"))
		default:
			return response.ProductPage{}, fmt.Errorf("unexpected page=%d", q.Page)
		}
	}}
	controller := NewController(lister, 1, "id,desc")
	require.NoError(t, controller.Refresh(context.Background()))

	err := controller.LoadMore(context.Background())

	require.NoError(t, err)
	items := controller.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(2), items[1].ID)
	assert.Equal(t, 1, controller.PageIndex())
	assert.False(t, controller.HasMore())
}

func TestLoadMoreAfterLastPage(t *testing.T) {
	lister := &fakeLister{handler: func(q Query) (response.ProductPage, error) {
		return pageOf(true, product(1, "Denim Jacket"))
	}}
	controller := NewController(lister, 8, "id,desc")
	require.NoError(t, controller.Refresh(context.Background()))

	err := controller.LoadMore(context.Background())

	assert.ErrorIs(t, err, errors.ErrNoMorePages)
	assert.Len(t, lister.recorded(), 1)
}

func TestLoadMoreWhileFetchInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	lister := &fakeLister{handler: func(q Query) (response.ProductPage, error) {
		if q.Page == 1 {
			close(started)
			<-release
		}
		return pageOf(false, product(int64(q.Page+1), "Denim Jacket"))
	}}
	controller := NewController(lister, 8, "id,desc")
	require.NoError(t, controller.Refresh(context.Background()))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, controller.LoadMore(context.Background()))
	}()
	<-started

	err := controller.LoadMore(context.Background())

	assert.ErrorIs(t, err, errors.ErrFetchInFlight)
	close(release)
	wg.Wait()
}

func TestSetFiltersReplacesAccumulatedItems(t *testing.T) {
	lister := &fakeLister{handler: func(q Query) (response.ProductPage, error) {
		if q.SearchText == "" {
			return pageOf(false, product(1, "Denim Jacket"), product(2, "Silk Scarf"))
		}
		return pageOf(true, product(3, "Wool Coat"))
	}}
	controller := NewController(lister, 8, "id,desc")
	require.NoError(t, controller.Refresh(context.Background()))
	require.NoError(t, controller.LoadMore(context.Background()))
	require.Len(t, controller.Items(), 4)

	search := "coat"
	err := controller.SetFilters(context.Background(), Update{SearchText: &search})

	require.NoError(t, err)
	items := controller.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].ID)
	assert.Equal(t, 0, controller.PageIndex())
	assert.False(t, controller.HasMore())
	assert.Equal(t, "coat", controller.Filters().SearchText)
}

func TestSetFiltersWithoutChangeFetchesNothing(t *testing.T) {
	lister := &fakeLister{handler: func(q Query) (response.ProductPage, error) {
		return pageOf(true, product(1, "Denim Jacket"))
	}}
	controller := NewController(lister, 8, "id,desc")
	require.NoError(t, controller.Refresh(context.Background()))

	search := ""
	err := controller.SetFilters(context.Background(), Update{SearchText: &search})

	assert.NoError(t, err)
	assert.Len(t, lister.recorded(), 1)
}

func TestSetFiltersClearFlags(t *testing.T) {
	lister := &fakeLister{handler: func(q Query) (response.ProductPage, error) {
		return pageOf(true, product(1, "Denim Jacket"))
	}}
	controller := NewController(lister, 8, "id,desc")
	categoryId := int64(4)
	minPrice := decimal.NewFromInt(10)
	maxPrice := decimal.NewFromInt(50)
	require.NoError(t, controller.SetFilters(context.Background(), Update{
		CategoryID: &categoryId,
		MinPrice:   &minPrice,
		MaxPrice:   &maxPrice,
	}))

	require.NoError(t, controller.SetFilters(context.Background(), Update{
		ClearCategory: true,
		ClearPrice:    true,
	}))

	filters := controller.Filters()
	assert.Nil(t, filters.CategoryID)
	assert.Nil(t, filters.MinPrice)
	assert.Nil(t, filters.MaxPrice)
	queries := lister.recorded()
	require.Len(t, queries, 2)
	assert.Equal(t, &categoryId, queries[0].CategoryID)
	assert.Nil(t, queries[1].CategoryID)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	jacketStarted := make(chan struct{})
	jacketRelease := make(chan struct{})
	lister := &fakeLister{handler: func(q Query) (response.ProductPage, error) {
		switch q.SearchText {
		case "jacket":
			close(jacketStarted)
			<-jacketRelease
			return pageOf(true, product(1, "Denim Jacket"))
		case "coat":
			return pageOf(true, product(3, "Wool Coat"))
		default:
			return response.ProductPage{}, fmt.Errorf("unexpected search=%q", q.SearchText)
		}
	}}
	controller := NewController(lister, 8, "id,desc")

	staleErr := make(chan error, 1)
	go func() {
		jacket := "jacket"
		staleErr <- controller.SetFilters(context.Background(), Update{SearchText: &jacket})
	}()
	<-jacketStarted

	coat := "coat"
	require.NoError(t, controller.SetFilters(context.Background(), Update{SearchText: &coat}))
	close(jacketRelease)

	select {
	case err := <-staleErr:
		assert.ErrorIs(t, err, errors.ErrStaleResponse)
	case <-time.After(time.Second):
		t.Fatal("superseded fetch never returned")
	}
	items := controller.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].ID)
	assert.Equal(t, "coat", controller.Filters().SearchText)
	assert.False(t, controller.IsLoading())
}

func TestFetchFailureKeepsItems(t *testing.T) {
	var fail bool
	lister := &fakeLister{handler: func(q Query) (response.ProductPage, error) {
		if fail {
			return response.ProductPage{}, fmt.Errorf("listing unavailable")
		}
		return pageOf(false, product(1, "Denim Jacket"))
	}}
	controller := NewController(lister, 8, "id,desc")
	require.NoError(t, controller.Refresh(context.Background()))

	fail = true
	err := controller.LoadMore(context.Background())

	assert.Error(t, err)
	assert.Len(t, controller.Items(), 1)
	assert.False(t, controller.IsLoading())
	assert.Equal(t, 0, controller.PageIndex())
}

func TestUpdateApply(t *testing.T) {
	search := "jacket"
	categoryId := int64(4)
	minPrice := decimal.NewFromInt(10)
	maxPrice := decimal.NewFromInt(50)
	tests := []struct {
		name     string
		initial  Filters
		update   Update
		expected Filters
	}{
		{
			name:     "empty update changes nothing",
			initial:  Filters{SearchText: "jacket", CategoryID: &categoryId},
			update:   Update{},
			expected: Filters{SearchText: "jacket", CategoryID: &categoryId},
		},
		{
			name:     "sets every field",
			initial:  Filters{},
			update:   Update{SearchText: &search, CategoryID: &categoryId, MinPrice: &minPrice, MaxPrice: &maxPrice},
			expected: Filters{SearchText: "jacket", CategoryID: &categoryId, MinPrice: &minPrice, MaxPrice: &maxPrice},
		},
		{
			name:     "clear wins over set",
			initial:  Filters{CategoryID: &categoryId, MinPrice: &minPrice},
			update:   Update{CategoryID: &categoryId, ClearCategory: true, ClearPrice: true},
			expected: Filters{},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual := test.update.apply(test.initial)
			assert.True(t, actual.equal(test.expected))
		})
	}
}
