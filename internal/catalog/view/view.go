// Package view owns the catalog browsing state: the loaded product set,
// the search-filtered subset, the pagination window, and the view mode.
package view

import (
	"context"
	"strings"
	"sync"

	"github.com/nexshop/storefront/internal/catalog"
)

// PageSize is the fixed number of products shown per page.
const PageSize = 6

// Phase is the coarse lifecycle state of the pipeline.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseError   Phase = "error"
)

// Mode selects how the product set is laid out.
type Mode string

const (
	ModeGrid Mode = "grid"
	ModeList Mode = "list"
)

// Events receives pipeline outcomes the presentation layer may surface.
// Delivery never blocks a transition; a nil Events is valid.
type Events interface {
	// SearchCompleted reports a finished search and its match count. A
	// zero count is a valid outcome, distinct from SearchFailed.
	SearchCompleted(query string, count int)
	// SearchFailed reports a search the data source could not serve.
	SearchFailed(query string)
	// LoadFailed reports a failed catalog load.
	LoadFailed(message string)
}

// Snapshot is a read-only view of the pipeline state for rendering.
type Snapshot struct {
	Phase      Phase
	Query      string
	Page       int
	TotalPages int
	Mode       Mode
	ErrMessage string
	// Visible is the current page window of the filtered set.
	Visible []catalog.Product
	// TotalCount is the size of the full filtered set.
	TotalCount int
}

// Pipeline is the catalog view state machine. All mutation happens through
// its methods; renderers only ever observe snapshots.
type Pipeline struct {
	source catalog.Source
	events Events

	mu       sync.Mutex
	all      []catalog.Product
	filtered []catalog.Product
	query    string
	page     int
	mode     Mode
	phase    Phase
	errMsg   string
	// gen orders in-flight source calls so only the most recently
	// dispatched request may apply its result (last-intent-wins).
	gen uint64

	listeners []func()
}

// New creates an idle pipeline reading from source. events may be nil.
func New(source catalog.Source, events Events) *Pipeline {
	return &Pipeline{
		source: source,
		events: events,
		page:   1,
		mode:   ModeGrid,
		phase:  PhaseIdle,
	}
}

// OnChange registers a listener invoked after each committed transition.
func (p *Pipeline) OnChange(fn func()) {
	if fn == nil {
		return
	}
	p.mu.Lock()
	p.listeners = append(p.listeners, fn)
	p.mu.Unlock()
}

// Load fetches the full product set. On failure the previous product set
// stays visible; only the phase and error message change.
func (p *Pipeline) Load(ctx context.Context) {
	p.mu.Lock()
	p.phase = PhaseLoading
	p.errMsg = ""
	p.gen++
	gen := p.gen
	p.mu.Unlock()
	p.notify()

	products, err := p.source.FetchAll(ctx)

	p.mu.Lock()
	if gen != p.gen {
		// A newer load or search was dispatched while this one was in
		// flight; its result owns the state now.
		p.mu.Unlock()
		return
	}
	if err != nil {
		p.phase = PhaseError
		p.errMsg = "Failed to load products. Please try again later."
		p.mu.Unlock()
		p.notify()
		if p.events != nil {
			p.events.LoadFailed(p.errMsg)
		}
		return
	}
	p.all = products
	p.filtered = products
	p.page = 1
	p.phase = PhaseLoaded
	p.mu.Unlock()
	p.notify()
}

// Search filters the product set by keyword. A blank query restores the
// full set without a network call. A failed search clears the result set
// but leaves the phase alone: the catalog itself is still loaded.
func (p *Pipeline) Search(ctx context.Context, query string) {
	p.mu.Lock()
	p.query = query
	if strings.TrimSpace(query) == "" {
		// The restore is itself the latest intent; claim the generation
		// so an earlier in-flight search cannot overwrite it on arrival.
		p.gen++
		p.query = ""
		p.filtered = p.all
		p.page = 1
		p.mu.Unlock()
		p.notify()
		return
	}
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	results, err := p.source.SearchByKeyword(ctx, query)

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return
	}
	if err != nil {
		p.filtered = nil
		p.page = 1
		p.mu.Unlock()
		p.notify()
		if p.events != nil {
			p.events.SearchFailed(query)
		}
		return
	}
	p.filtered = results
	p.page = 1
	p.mu.Unlock()
	p.notify()
	if p.events != nil {
		p.events.SearchCompleted(query, len(results))
	}
}

// SetPage moves to page n, clamped into [1, TotalPages()]. Out-of-range
// requests are clamped, never rejected.
func (p *Pipeline) SetPage(n int) {
	p.mu.Lock()
	p.page = clampPage(n, len(p.filtered))
	p.mu.Unlock()
	p.notify()
}

// SetMode switches between grid and list layout. It touches neither the
// filtered set nor the page.
func (p *Pipeline) SetMode(mode Mode) {
	if mode != ModeGrid && mode != ModeList {
		return
	}
	p.mu.Lock()
	p.mode = mode
	p.mu.Unlock()
	p.notify()
}

// VisibleSlice returns the current page window of the filtered set.
func (p *Pipeline) VisibleSlice() []catalog.Product {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visibleLocked()
}

// TotalPages reports the page count for the filtered set, at least 1.
func (p *Pipeline) TotalPages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return totalPages(len(p.filtered))
}

// Snapshot returns a consistent read-only copy of the pipeline state.
func (p *Pipeline) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		Phase:      p.phase,
		Query:      p.query,
		Page:       p.page,
		TotalPages: totalPages(len(p.filtered)),
		Mode:       p.mode,
		ErrMessage: p.errMsg,
		Visible:    p.visibleLocked(),
		TotalCount: len(p.filtered),
	}
}

func (p *Pipeline) visibleLocked() []catalog.Product {
	page := clampPage(p.page, len(p.filtered))
	start := (page - 1) * PageSize
	if start >= len(p.filtered) {
		return nil
	}
	end := start + PageSize
	if end > len(p.filtered) {
		end = len(p.filtered)
	}
	out := make([]catalog.Product, end-start)
	copy(out, p.filtered[start:end])
	return out
}

func (p *Pipeline) notify() {
	p.mu.Lock()
	listeners := make([]func(), len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

func totalPages(count int) int {
	pages := (count + PageSize - 1) / PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

func clampPage(n, count int) int {
	if n < 1 {
		return 1
	}
	if max := totalPages(count); n > max {
		return max
	}
	return n
}
