package commerce

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/nexshop/storefront/internal/cart"
	cartstorage "github.com/nexshop/storefront/internal/cart/storage"
	"github.com/nexshop/storefront/internal/catalog"
	"github.com/shopspring/decimal"
)

type memorySource struct {
	mu       sync.Mutex
	products []catalog.Product
	searches map[string][]catalog.Product
	err      error
}

func (m *memorySource) FetchAll(context.Context) ([]catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *memorySource) FetchOne(_ context.Context, id string) (catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return catalog.Product{}, m.err
	}
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Product{}, catalog.ErrNotFound
}

func (m *memorySource) SearchByKeyword(_ context.Context, query string) ([]catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.searches[query], nil
}

type memoryCartStore struct {
	mu    sync.Mutex
	carts map[string]cart.Snapshot
}

func newMemoryCartStore() *memoryCartStore {
	return &memoryCartStore{carts: make(map[string]cart.Snapshot)}
}

func (m *memoryCartStore) Save(_ context.Context, cartID string, snap cart.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[cartID] = snap
	return nil
}

func (m *memoryCartStore) Load(_ context.Context, cartID string) (cart.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.carts[cartID]
	if !ok {
		return cart.Snapshot{}, cartstorage.ErrNotFound
	}
	return snap, nil
}

func (m *memoryCartStore) Delete(_ context.Context, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, cartID)
	return nil
}

func testSource() *memorySource {
	return &memorySource{
		products: []catalog.Product{
			{ID: "1", Title: "Backpack", Price: decimal.NewFromFloat(10.00)},
			{ID: "2", Title: "T-Shirt", Price: decimal.NewFromFloat(20.00)},
		},
		searches: map[string][]catalog.Product{
			"shirt": {{ID: "2", Title: "T-Shirt", Price: decimal.NewFromFloat(20.00)}},
		},
	}
}

func TestAddToCartQueuesNoticeAndPersists(t *testing.T) {
	t.Parallel()

	store := newMemoryCartStore()
	registry := NewRegistry(testSource(), store)
	ctx := context.Background()
	shop := registry.Shop(ctx, "cart-1")

	if err := shop.AddToCart(ctx, "1"); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}

	snap := shop.CartView()
	if snap.TotalItems != 1 {
		t.Fatalf("TotalItems = %d, want 1", snap.TotalItems)
	}

	notices := shop.Notices()
	if len(notices) != 1 || notices[0].Kind != NoticeSuccess {
		t.Fatalf("notices = %#v, want one success notice", notices)
	}

	persisted, err := store.Load(ctx, "cart-1")
	if err != nil {
		t.Fatalf("store.Load() error = %v", err)
	}
	if persisted.TotalItems != 1 {
		t.Fatalf("persisted TotalItems = %d, want 1", persisted.TotalItems)
	}
}

func TestAddToCartUnknownProductIsNoticeNotError(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(testSource(), nil)
	ctx := context.Background()
	shop := registry.Shop(ctx, "cart-1")

	if err := shop.AddToCart(ctx, "404"); err != nil {
		t.Fatalf("AddToCart(unknown) error = %v, want nil", err)
	}
	if snap := shop.CartView(); snap.TotalItems != 0 {
		t.Fatalf("TotalItems = %d, want 0", snap.TotalItems)
	}
	notices := shop.Notices()
	if len(notices) != 1 || notices[0].Kind != NoticeError {
		t.Fatalf("notices = %#v, want one error notice", notices)
	}
}

func TestAddToCartSourceFailureIsError(t *testing.T) {
	t.Parallel()

	source := testSource()
	source.err = errors.New("upstream down")
	registry := NewRegistry(source, nil)
	ctx := context.Background()
	shop := registry.Shop(ctx, "cart-1")

	if err := shop.AddToCart(ctx, "1"); err == nil {
		t.Fatal("AddToCart() error = nil, want error")
	}
}

func TestShopRestoresPersistedCart(t *testing.T) {
	t.Parallel()

	store := newMemoryCartStore()
	ctx := context.Background()
	_ = store.Save(ctx, "cart-1", cart.Snapshot{
		Entries: []cart.Entry{
			{ProductID: "1", Title: "Backpack", Price: decimal.NewFromFloat(10.00), Quantity: 3},
		},
	})

	registry := NewRegistry(testSource(), store)
	shop := registry.Shop(ctx, "cart-1")

	snap := shop.CartView()
	if snap.TotalItems != 3 {
		t.Fatalf("TotalItems = %d, want 3 from persisted cart", snap.TotalItems)
	}
	if got := snap.Total.StringFixed(2); got != "30.00" {
		t.Fatalf("Total = %s, want 30.00 (recomputed on restore)", got)
	}
}

func TestShopStartsEmptyWhenNothingPersisted(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(testSource(), newMemoryCartStore())
	shop := registry.Shop(context.Background(), "fresh")

	if snap := shop.CartView(); len(snap.Entries) != 0 {
		t.Fatalf("entries = %d, want 0", len(snap.Entries))
	}
}

// gatedCartStore blocks Load until released so tests can race a second
// request against an in-progress restore.
type gatedCartStore struct {
	*memoryCartStore
	loadStarted chan struct{}
	loadGate    chan struct{}
	once        sync.Once
}

func (g *gatedCartStore) Load(ctx context.Context, cartID string) (cart.Snapshot, error) {
	g.once.Do(func() { close(g.loadStarted) })
	<-g.loadGate
	return g.memoryCartStore.Load(ctx, cartID)
}

func TestShopNotVisibleUntilRestoreCompletes(t *testing.T) {
	t.Parallel()

	store := &gatedCartStore{
		memoryCartStore: newMemoryCartStore(),
		loadStarted:     make(chan struct{}),
		loadGate:        make(chan struct{}),
	}
	ctx := context.Background()
	_ = store.memoryCartStore.Save(ctx, "cart-1", cart.Snapshot{
		Entries: []cart.Entry{
			{ProductID: "1", Title: "Backpack", Price: decimal.NewFromFloat(10.00), Quantity: 2},
		},
	})

	registry := NewRegistry(testSource(), store)

	shops := make(chan *Shop, 2)
	go func() {
		shops <- registry.Shop(ctx, "cart-1")
	}()
	<-store.loadStarted

	// A second request for the same cart arrives while the restore is
	// still in flight. It must observe the restored cart, and its
	// mutation must not be wiped by the restore.
	added := make(chan struct{})
	go func() {
		defer close(added)
		shop := registry.Shop(ctx, "cart-1")
		if err := shop.AddToCart(ctx, "2"); err != nil {
			t.Errorf("AddToCart() error = %v", err)
		}
		shops <- shop
	}()

	close(store.loadGate)
	<-added

	first, second := <-shops, <-shops
	if first != second {
		t.Fatal("same cart id resolved to different shops")
	}
	snap := first.CartView()
	if snap.TotalItems != 3 {
		t.Fatalf("TotalItems = %d, want 3 (restored 2 plus added 1)", snap.TotalItems)
	}
	if len(snap.Entries) != 2 {
		t.Fatalf("entries = %d, want both the restored and the added product", len(snap.Entries))
	}
}

func TestRegistryReturnsSameShopPerCartID(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(testSource(), nil)
	ctx := context.Background()

	first := registry.Shop(ctx, "cart-1")
	second := registry.Shop(ctx, "cart-1")
	other := registry.Shop(ctx, "cart-2")

	if first != second {
		t.Fatal("same cart id resolved to different shops")
	}
	if first == other {
		t.Fatal("different cart ids resolved to the same shop")
	}
}

func TestSearchNoticesDistinguishOutcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    string
		fail     bool
		wantKind NoticeKind
		wantMsg  string
	}{
		{name: "matches found", query: "shirt", wantKind: NoticeSuccess, wantMsg: "Found 1 product"},
		{name: "no matches", query: "submarine", wantKind: NoticeError, wantMsg: "No products found matching your search"},
		{name: "search failure", query: "shirt", fail: true, wantKind: NoticeError, wantMsg: "Search failed"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			source := testSource()
			if tc.fail {
				source.err = errors.New("upstream down")
			}
			registry := NewRegistry(source, nil)
			ctx := context.Background()
			shop := registry.Shop(ctx, "cart-1")
			if !tc.fail {
				shop.LoadCatalog(ctx)
				shop.Notices()
			}

			shop.SearchCatalog(ctx, tc.query)

			notices := shop.Notices()
			if len(notices) != 1 {
				t.Fatalf("notices = %#v, want exactly one", notices)
			}
			if notices[0].Kind != tc.wantKind {
				t.Fatalf("kind = %q, want %q", notices[0].Kind, tc.wantKind)
			}
			if notices[0].Message != tc.wantMsg {
				t.Fatalf("message = %q, want %q", notices[0].Message, tc.wantMsg)
			}
		})
	}
}

func TestOrderSummary(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(testSource(), nil)
	ctx := context.Background()
	shop := registry.Shop(ctx, "cart-1")
	if err := shop.AddToCart(ctx, "1"); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	if err := shop.AddToCart(ctx, "2"); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}

	summary := shop.OrderSummary()
	if got := summary.Subtotal.StringFixed(2); got != "30.00" {
		t.Fatalf("Subtotal = %s, want 30.00", got)
	}
	if got := summary.Tax.StringFixed(2); got != "3.00" {
		t.Fatalf("Tax = %s, want 3.00", got)
	}
	if got := summary.GrandTotal.StringFixed(2); got != "33.00" {
		t.Fatalf("GrandTotal = %s, want 33.00", got)
	}
	if got := summary.AwayFromFreeShipping.StringFixed(2); got != "20.00" {
		t.Fatalf("AwayFromFreeShipping = %s, want 20.00", got)
	}
}

func TestOrderSummaryPastFreeShippingThreshold(t *testing.T) {
	t.Parallel()

	summary := Summarize(cart.Snapshot{
		Total: decimal.NewFromInt(75),
	})
	if !summary.AwayFromFreeShipping.IsZero() {
		t.Fatalf("AwayFromFreeShipping = %s, want 0", summary.AwayFromFreeShipping)
	}
}

func TestDropForgetsShopAndPersistedCart(t *testing.T) {
	t.Parallel()

	store := newMemoryCartStore()
	registry := NewRegistry(testSource(), store)
	ctx := context.Background()

	shop := registry.Shop(ctx, "cart-1")
	if err := shop.AddToCart(ctx, "1"); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	if err := registry.Drop(ctx, "cart-1"); err != nil {
		t.Fatalf("Drop() error = %v", err)
	}

	if _, err := store.Load(ctx, "cart-1"); !errors.Is(err, cartstorage.ErrNotFound) {
		t.Fatalf("store.Load() error = %v, want ErrNotFound", err)
	}
	fresh := registry.Shop(ctx, "cart-1")
	if fresh == shop {
		t.Fatal("Drop did not forget the shop instance")
	}
}
