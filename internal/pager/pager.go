// Package pager loads the pending sales report one page at a time.
//
// A Loader owns the displayed rows and the page state. Every fetch is issued
// as a Request stamped with a token; only the result of the most recently
// issued request is applied, so a slow page-1 reload can never overwrite rows
// loaded by a newer request. Issuing a reload cancels the request in flight.
//
// The Loader is not safe for concurrent use. In the dashboard it is mutated
// only from the bubbletea update loop; Request.Run is the only part that runs
// on another goroutine.
package pager

import (
	"context"
	"errors"
	"log/slog"

	"github.com/marcus/tailor/internal/models"
)

// Fetcher performs a page fetch against the report API.
type Fetcher interface {
	FetchPendingSales(ctx context.Context, page, perPage int, search string) (*models.PendingPage, error)
}

// ErrNoMorePages is returned by LoadMore when the last page is already loaded.
var ErrNoMorePages = errors.New("no more pages")

// ErrBusy is returned by LoadMore while another request is in flight.
var ErrBusy = errors.New("a page fetch is already in flight")

// State is the paging position after the last successful fetch
type State struct {
	CurrentPage  int
	PerPage      int
	Total        int
	LastPage     int
	HasMorePages bool
}

// lastPage computes the last page number for total rows at perPage
func lastPage(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// Query is what one page fetch asks for
type Query struct {
	Page    int
	PerPage int
	Search  string
}

// Request is an issued page fetch. Run it (possibly on another goroutine),
// then hand the Result back to Loader.Complete.
type Request struct {
	Token  uint64
	Query  Query
	Append bool

	ctx     context.Context
	fetcher Fetcher
}

// Result is the outcome of a Request
type Result struct {
	Token  uint64
	Query  Query
	Append bool
	Page   *models.PendingPage
	Err    error
}

// Run performs the fetch.
func (r Request) Run() Result {
	page, err := r.fetcher.FetchPendingSales(r.ctx, r.Query.Page, r.Query.PerPage, r.Query.Search)
	if err == nil && page == nil {
		err = errors.New("empty response")
	}
	return Result{Token: r.Token, Query: r.Query, Append: r.Append, Page: page, Err: err}
}

// Loader holds the loaded rows and paging state.
type Loader struct {
	fetcher Fetcher
	perPage int
	search  string

	rows  []models.PendingItem
	state State

	token        uint64
	inflight     bool
	inflightMore bool
	cancel       context.CancelFunc
	loaded       bool
}

// New returns a Loader that fetches perPage rows at a time.
func New(f Fetcher, perPage int) *Loader {
	if perPage <= 0 {
		perPage = 10
	}
	return &Loader{
		fetcher: f,
		perPage: perPage,
		// Until the first fetch completes there may be more pages.
		state: State{PerPage: perPage, HasMorePages: true, LastPage: 1},
	}
}

// Rows returns the displayed rows. The slice must not be modified.
func (l *Loader) Rows() []models.PendingItem { return l.rows }

// State returns the current page state.
func (l *Loader) State() State { return l.state }

// Search returns the committed search term.
func (l *Loader) Search() string { return l.search }

// PerPage returns the page size.
func (l *Loader) PerPage() int { return l.perPage }

// Loading reports whether a replacing (page 1) fetch is in flight.
func (l *Loader) Loading() bool { return l.inflight && !l.inflightMore }

// FetchingMore reports whether an appending fetch is in flight.
func (l *Loader) FetchingMore() bool { return l.inflight && l.inflightMore }

// Busy reports whether any fetch is in flight.
func (l *Loader) Busy() bool { return l.inflight }

// Loaded reports whether at least one fetch has completed successfully.
func (l *Loader) Loaded() bool { return l.loaded }

// CanLoadMore reports whether a load-more request would be issued now.
func (l *Loader) CanLoadMore() bool {
	return l.loaded && l.state.HasMorePages && !l.inflight
}

// SetSearch changes the search term. It does not fetch; callers follow with
// Reload. Returns false when the term is unchanged.
func (l *Loader) SetSearch(term string) bool {
	if term == l.search {
		return false
	}
	l.search = term
	return true
}

// Begin issues a request for page. A replacing request (append=false)
// supersedes and cancels whatever is in flight. An appending request is
// refused (ok=false) while anything is in flight.
func (l *Loader) Begin(parent context.Context, page int, appendRows bool) (Request, bool) {
	if appendRows && l.inflight {
		return Request{}, false
	}
	if page < 1 {
		page = 1
	}
	if l.cancel != nil {
		l.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	l.cancel = cancel
	l.token++
	l.inflight = true
	l.inflightMore = appendRows

	return Request{
		Token:   l.token,
		Query:   Query{Page: page, PerPage: l.perPage, Search: l.search},
		Append:  appendRows,
		ctx:     ctx,
		fetcher: l.fetcher,
	}, true
}

// BeginReload issues a page-1 request replacing the rows.
func (l *Loader) BeginReload(parent context.Context) Request {
	req, _ := l.Begin(parent, 1, false)
	return req
}

// BeginLoadMore issues a request for the next page, appending its rows.
func (l *Loader) BeginLoadMore(parent context.Context) (Request, error) {
	if !l.state.HasMorePages {
		return Request{}, ErrNoMorePages
	}
	req, ok := l.Begin(parent, l.state.CurrentPage+1, true)
	if !ok {
		return Request{}, ErrBusy
	}
	return req, nil
}

// Complete applies res if it answers the latest request. It returns
// applied=false for stale results, and the fetch error (rows untouched) for
// failed ones.
func (l *Loader) Complete(res Result) (applied bool, err error) {
	if res.Token != l.token {
		slog.Debug("pager: dropping stale page", "token", res.Token, "latest", l.token, "page", res.Query.Page)
		return false, nil
	}

	l.inflight = false
	l.inflightMore = false
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}

	if res.Err != nil {
		return true, res.Err
	}

	incoming := res.Page.Data
	if res.Append {
		l.rows = appendUnique(l.rows, incoming)
	} else {
		l.rows = append([]models.PendingItem(nil), incoming...)
	}

	info := res.Page.PaginatorInfo
	perPage := info.PerPage
	if perPage <= 0 {
		perPage = res.Query.PerPage
	}
	current := info.CurrentPage
	if current <= 0 {
		current = res.Query.Page
	}
	last := lastPage(info.Total, perPage)
	l.state = State{
		CurrentPage:  current,
		PerPage:      perPage,
		Total:        info.Total,
		LastPage:     last,
		HasMorePages: current < last,
	}
	l.loaded = true
	return true, nil
}

// Cancel abandons the request in flight, if any. Its result will be
// dropped as stale.
func (l *Loader) Cancel() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if l.inflight {
		l.token++
		l.inflight = false
		l.inflightMore = false
	}
}

// Load fetches page synchronously: Begin, Run, Complete.
func (l *Loader) Load(ctx context.Context, page int, appendRows bool) error {
	req, ok := l.Begin(ctx, page, appendRows)
	if !ok {
		return ErrBusy
	}
	_, err := l.Complete(req.Run())
	return err
}

// LoadMore fetches the next page synchronously. It performs no fetch when
// there are no more pages.
func (l *Loader) LoadMore(ctx context.Context) error {
	req, err := l.BeginLoadMore(ctx)
	if err != nil {
		return err
	}
	_, err = l.Complete(req.Run())
	return err
}

// Reload fetches page 1 synchronously, replacing the rows.
func (l *Loader) Reload(ctx context.Context) error {
	return l.Load(ctx, 1, false)
}

// Find returns the loaded row with the given id.
func (l *Loader) Find(id string) (models.PendingItem, bool) {
	for _, r := range l.rows {
		if r.ID == id {
			return r, true
		}
	}
	return models.PendingItem{}, false
}

// appendUnique appends rows whose key is not already present. A status
// change between fetches can shift a row onto the next page.
func appendUnique(dst, src []models.PendingItem) []models.PendingItem {
	seen := make(map[string]struct{}, len(dst))
	for _, r := range dst {
		seen[r.Key()] = struct{}{}
	}
	for _, r := range src {
		if _, dup := seen[r.Key()]; dup {
			continue
		}
		seen[r.Key()] = struct{}{}
		dst = append(dst, r)
	}
	return dst
}
