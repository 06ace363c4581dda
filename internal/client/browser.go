package client

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/tubevault/tubevault/internal/archive"
)

const (
	defaultPageSize = 40
	minSearchLength = 2
)

// fetchGate orders out-of-order responses: each fetch takes a monotonically
// increasing sequence number, and a response is admitted only if nothing
// newer has been applied. Rapid interactions therefore never overwrite the
// most recently intended query with a stale result.
type fetchGate struct {
	mu      sync.Mutex
	issued  uint64
	applied uint64
}

func (g *fetchGate) next() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued++
	return g.issued
}

func (g *fetchGate) admit(seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if seq < g.applied {
		return false
	}
	g.applied = seq
	return true
}

// PageFetcher loads one page of rows for a Browser.
type PageFetcher[T any] func(ctx context.Context, params ListParams) ([]T, error)

// Browser holds the pagination/search/sort state of one list view. It has
// two modes: browse (no active search term) and search (term of at least
// two characters); shorter input reverts to browse. A strict toggle pads
// the term with spaces to bias toward whole-word substring matches.
type Browser[T any] struct {
	fetch    PageFetcher[T]
	pageSize int
	gate     fetchGate

	mu        sync.Mutex
	page      int
	sort      SortState
	term      string
	strict    bool
	searching bool
	rows      []T
	inflight  int
}

// NewBrowser constructs a Browser over the given page fetcher. A
// non-positive page size uses the default of 40 rows per page.
func NewBrowser[T any](fetch PageFetcher[T], pageSize int) *Browser[T] {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Browser[T]{
		fetch:    fetch,
		pageSize: pageSize,
		sort:     SortState{OrderBy: "Date", Descending: true},
	}
}

// NewVideoBrowser constructs a Browser over the video listing.
func NewVideoBrowser(api *Client, pageSize int) *Browser[archive.Video] {
	return NewBrowser(func(ctx context.Context, params ListParams) ([]archive.Video, error) {
		return api.Videos(ctx, params)
	}, pageSize)
}

// NewCommentBrowser constructs a Browser over the comment listing under a
// fixed video or user scope (or unscoped, for the global comment page).
func NewCommentBrowser(api *Client, scope CommentScope, pageSize int) *Browser[archive.Comment] {
	return NewBrowser(func(ctx context.Context, params ListParams) ([]archive.Comment, error) {
		return api.Comments(ctx, scope, params)
	}, pageSize)
}

// Rows returns a copy of the currently displayed rows.
func (b *Browser[T]) Rows() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	rows := make([]T, len(b.rows))
	copy(rows, b.rows)
	return rows
}

// Page returns the zero-based page index of the displayed rows.
func (b *Browser[T]) Page() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

// Searching reports whether the browser is in search mode.
func (b *Browser[T]) Searching() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.searching
}

// Loading reports whether at least one fetch is in flight.
func (b *Browser[T]) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inflight > 0
}

// SetStrict toggles whole-word-ish matching for subsequent searches.
func (b *Browser[T]) SetStrict(strict bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.strict = strict
}

// Refresh re-fetches the current page in the current mode.
func (b *Browser[T]) Refresh(ctx context.Context) error {
	b.mu.Lock()
	page := b.page
	b.mu.Unlock()
	return b.load(ctx, page)
}

// Next fetches the following page; the page index advances only when the
// fetch yields rows, so paging past the end is a no-op.
func (b *Browser[T]) Next(ctx context.Context) error {
	b.mu.Lock()
	target := b.page + 1
	b.mu.Unlock()
	return b.load(ctx, target)
}

// Prev fetches the preceding page; a no-op at page zero.
func (b *Browser[T]) Prev(ctx context.Context) error {
	b.mu.Lock()
	if b.page == 0 {
		b.mu.Unlock()
		return nil
	}
	target := b.page - 1
	b.mu.Unlock()
	return b.load(ctx, target)
}

// SetSort changes the sort selection, resets to the first page, and
// re-fetches in the current mode.
func (b *Browser[T]) SetSort(ctx context.Context, sort SortState) error {
	b.mu.Lock()
	b.sort = sort
	b.page = 0
	b.mu.Unlock()
	return b.load(ctx, 0)
}

// Search updates the search term. Terms of at least two characters engage
// search mode from the first page; shorter input reverts to browse mode
// and re-fetches the current page.
func (b *Browser[T]) Search(ctx context.Context, term string) error {
	b.mu.Lock()
	if utf8.RuneCountInString(strings.TrimSpace(term)) < minSearchLength {
		b.searching = false
		b.term = ""
		page := b.page
		b.mu.Unlock()
		return b.load(ctx, page)
	}
	b.searching = true
	b.term = term
	b.page = 0
	b.mu.Unlock()
	return b.load(ctx, 0)
}

func (b *Browser[T]) load(ctx context.Context, page int) error {
	b.mu.Lock()
	params := ListParams{
		Start: page * b.pageSize,
		Limit: b.pageSize,
		Sort:  b.sort,
	}
	strictEmpty := false
	if b.searching {
		params.Search = b.term
		if b.strict {
			params.Search = " " + b.term + " "
			strictEmpty = true
		}
	}
	seq := b.gate.next()
	b.inflight++
	b.mu.Unlock()

	rows, err := b.fetch(ctx, params)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.inflight--

	if errors.Is(err, ErrNotFound) || (err == nil && len(rows) == 0) {
		// An empty page leaves the view untouched, except in strict
		// search mode, where the empty result itself is the answer.
		if strictEmpty && b.gate.admit(seq) {
			b.rows = nil
			b.page = 0
		}
		return nil
	}
	if err != nil {
		return err
	}
	if !b.gate.admit(seq) {
		return nil
	}
	b.rows = rows
	b.page = page
	return nil
}
