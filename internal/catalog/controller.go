// Package catalog owns the product-listing view state: search text,
// category, price bounds and page accumulation. It translates that state
// into paginated requests against the product listing and guards against
// out-of-order responses.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/relove-market/storefront/internal/errors"
	"github.com/relove-market/storefront/internal/log"
	"github.com/relove-market/storefront/internal/otel"
	"github.com/relove-market/storefront/pkg/response"
)

// Filters is the complete filter tuple for the listing view. Nil optional
// fields are omitted from the query.
type Filters struct {
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	CategoryID *int64
	SearchText string
}

// Query is one paginated request against the product listing.
type Query struct {
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	CategoryID *int64
	SearchText string
	Sort       string
	Page       int
	Size       int
}

// ProductLister is the external product catalog collaborator.
type ProductLister interface {
	ListProducts(c context.Context, q Query) (response.ProductPage, error)
}

// Controller assembles a flat, order-preserving product list from
// paginated fetches. Responses are committed only when they answer the
// most recently issued request: every issued request takes a generation
// number under the mutex, and a response whose generation is no longer
// current is discarded (ErrStaleResponse). Superseded requests are not
// cancelled, just ignored on arrival.
type Controller struct {
	lister ProductLister
	sort   string

	mu         sync.Mutex
	filters    Filters
	items      []response.Product
	generation uint64
	pageIndex  int
	pageSize   int
	hasMore    bool
	loading    bool
}

func NewController(lister ProductLister, pageSize int, sort string) *Controller {
	if pageSize < 1 {
		pageSize = 8
	}
	return &Controller{lister: lister, pageSize: pageSize, sort: sort}
}

// Refresh discards everything accumulated and fetches page 0 for the
// current filters. Used at startup.
func (ctl *Controller) Refresh(c context.Context) error {
	ctl.mu.Lock()
	gen, query := ctl.issueLocked(0)
	ctl.mu.Unlock()
	return ctl.fetchPage(c, gen, query, true)
}

// SetFilters merges a partial update into the filter tuple. Any actual
// change resets the page index to 0 and replaces the accumulated items
// with a fresh page-0 fetch; a no-change update fetches nothing.
func (ctl *Controller) SetFilters(c context.Context, update Update) error {
	ctl.mu.Lock()
	next := update.apply(ctl.filters)
	if next.equal(ctl.filters) {
		ctl.mu.Unlock()
		return nil
	}
	ctl.filters = next
	gen, query := ctl.issueLocked(0)
	ctl.mu.Unlock()
	return ctl.fetchPage(c, gen, query, true)
}

// LoadMore appends the next page. Valid only when more pages exist and no
// fetch is in flight.
func (ctl *Controller) LoadMore(c context.Context) error {
	ctl.mu.Lock()
	if ctl.loading {
		ctl.mu.Unlock()
		return errors.ErrFetchInFlight
	}
	if !ctl.hasMore {
		ctl.mu.Unlock()
		return errors.ErrNoMorePages
	}
	gen, query := ctl.issueLocked(ctl.pageIndex + 1)
	ctl.mu.Unlock()
	return ctl.fetchPage(c, gen, query, false)
}

// issueLocked registers a new request generation and snapshots the query
// for it. Caller holds the mutex.
func (ctl *Controller) issueLocked(pageIndex int) (uint64, Query) {
	ctl.generation++
	ctl.loading = true
	return ctl.generation, Query{
		MinPrice:   ctl.filters.MinPrice,
		MaxPrice:   ctl.filters.MaxPrice,
		CategoryID: ctl.filters.CategoryID,
		SearchText: ctl.filters.SearchText,
		Sort:       ctl.sort,
		Page:       pageIndex,
		Size:       ctl.pageSize,
	}
}

func (ctl *Controller) fetchPage(c context.Context, gen uint64, query Query, replace bool) error {
	c, span := otel.Tracer.Start(c, "Controller fetchPage")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Controller fetchPage").
		Int(log.KEY_PAGE_INDEX, query.Page).
		Int(log.KEY_PAGE_SIZE, query.Size).
		Uint64(log.KEY_GENERATION, gen).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "fetching page").Logger()
	logger.Trace().Msg("fetching page")
	c = logger.WithContext(c)
	page, err := ctl.lister.ListProducts(c, query)

	ctl.mu.Lock()
	defer ctl.mu.Unlock()

	if gen != ctl.generation {
		// A newer request owns the view now. Its issuance set loading, so
		// leave that flag alone and drop this response on the floor.
		logger.Debug().
			Uint64("currentGeneration", ctl.generation).
			Msg("discarding superseded response")
		span.AddEvent("discarding superseded response")
		return errors.ErrStaleResponse
	}
	ctl.loading = false

	if err != nil {
		err = fmt.Errorf("failed fetching page=%d with error=%w", query.Page, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	if replace {
		ctl.items = append([]response.Product(nil), page.Content...)
	} else {
		ctl.items = append(ctl.items, page.Content...)
	}
	ctl.pageIndex = query.Page
	ctl.hasMore = !page.Last
	logger.Info().
		Int("itemsAccumulated", len(ctl.items)).
		Bool("hasMore", ctl.hasMore).
		Msg("committed page")
	return nil
}

// Items returns a snapshot copy of the accumulated products.
func (ctl *Controller) Items() []response.Product {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	snapshot := make([]response.Product, len(ctl.items))
	copy(snapshot, ctl.items)
	return snapshot
}

func (ctl *Controller) HasMore() bool {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.hasMore
}

func (ctl *Controller) IsLoading() bool {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.loading
}

func (ctl *Controller) PageIndex() int {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.pageIndex
}

func (ctl *Controller) Filters() Filters {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.filters
}
