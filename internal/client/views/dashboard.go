package views

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/warrantyreminder/internal/client/models"
)

var (
	ErrUnknownSortKey    = errors.New("unknown sort key")
	ErrNoDeleteCandidate = errors.New("no record selected for deletion")
	ErrBusy              = errors.New("another delete is in progress")
	ErrNotListed         = errors.New("record is not in the list")
	ErrStale             = errors.New("superseded by a newer request")
)

// ExpiringSoonWindow is how far ahead "expiring soon" looks.
const ExpiringSoonWindow = 7 * 24 * time.Hour

const SortByExpiry = "expiry"

var stringSortKeys = map[string]func(w *models.Warranty) string{
	"productName":   func(w *models.Warranty) string { return w.ProductName },
	"brandAndModel": func(w *models.Warranty) string { return w.BrandAndModel },
	"serialNumber":  func(w *models.Warranty) string { return w.SerialNumber },
	"invoiceNumber": func(w *models.Warranty) string { return w.InvoiceNumber },
	"userEmail":     func(w *models.Warranty) string { return w.UserEmail },
}

// SortKeys lists the accepted Sort keys.
func SortKeys() []string {
	keys := []string{SortByExpiry}
	for k := range stringSortKeys {
		keys = append(keys, k)
	}
	slices.Sort(keys[1:])
	return keys
}

type Summary struct {
	Total        int
	Active       int
	Expired      int
	ExpiringSoon int
}

// Dashboard is the warranty list screen. Only the most recently issued
// fetch or search may replace the list.
type Dashboard struct {
	env Env

	mu        sync.Mutex
	items     []models.Warranty
	sortKey   string
	seq       uint64
	loading   bool
	candidate string
	deleting  bool
}

func NewDashboard(env Env) *Dashboard {
	return &Dashboard{env: env, items: []models.Warranty{}}
}

// FetchAll replaces the list with everything the backend returns. On error
// the list is left as it was.
func (d *Dashboard) FetchAll(ctx context.Context) error {
	seq := d.issue()
	items, err := d.env.Warranties.List(ctx)
	return d.settle(ctx, seq, items, err, "Failed to fetch warranties")
}

// Search replaces the list with the backend's matches for query. A blank
// query behaves exactly like FetchAll.
func (d *Dashboard) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return d.FetchAll(ctx)
	}

	seq := d.issue()
	items, err := d.env.Warranties.Search(ctx, query)
	return d.settle(ctx, seq, items, err, "Search failed")
}

func (d *Dashboard) issue() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	d.loading = true
	return d.seq
}

func (d *Dashboard) settle(ctx context.Context, seq uint64, items []models.Warranty, err error, fallback string) error {
	d.mu.Lock()
	latest := seq == d.seq
	if latest {
		d.loading = false
	}
	d.mu.Unlock()

	if !latest {
		return ErrStale
	}
	if err != nil {
		d.env.Fail(ctx, err, fallback)
		return err
	}

	d.mu.Lock()
	d.items = slices.Clone(items)
	d.sortKey = ""
	d.mu.Unlock()
	return nil
}

// Sort orders the list in place. It is stable and lasts until the next
// fetch. Records whose expiry cannot be parsed sort last.
func (d *Dashboard) Sort(key string) error {
	var cmpFn func(a, b models.Warranty) int

	if key == SortByExpiry {
		cmpFn = compareExpiry
	} else if get, ok := stringSortKeys[key]; ok {
		cmpFn = func(a, b models.Warranty) int { return strings.Compare(get(&a), get(&b)) }
	} else {
		return fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	slices.SortStableFunc(d.items, cmpFn)
	d.sortKey = key
	return nil
}

func compareExpiry(a, b models.Warranty) int {
	ea, okA := a.Expiry()
	eb, okB := b.Expiry()
	switch {
	case okA && okB:
		return ea.Compare(eb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}

// RequestDelete selects id as the delete candidate. Nothing is sent yet.
func (d *Dashboard) RequestDelete(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.indexOf(id) < 0 {
		return fmt.Errorf("%w: %s", ErrNotListed, id)
	}
	d.candidate = id
	return nil
}

func (d *Dashboard) CancelDelete() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.deleting {
		d.candidate = ""
	}
}

// Candidate returns the record awaiting confirmation, or "".
func (d *Dashboard) Candidate() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.candidate
}

// ConfirmDelete deletes the candidate on the backend and, on success, drops
// it from the list. The candidate is cleared either way.
func (d *Dashboard) ConfirmDelete(ctx context.Context) error {
	d.mu.Lock()
	if d.deleting {
		d.mu.Unlock()
		return ErrBusy
	}
	if d.candidate == "" {
		d.mu.Unlock()
		return ErrNoDeleteCandidate
	}
	id := d.candidate
	d.deleting = true
	d.mu.Unlock()

	err := d.env.Warranties.Delete(ctx, id)

	d.mu.Lock()
	d.deleting = false
	d.candidate = ""
	if err == nil {
		if i := d.indexOf(id); i >= 0 {
			d.items = slices.Delete(d.items, i, i+1)
		}
	}
	d.mu.Unlock()

	if err != nil {
		d.env.Fail(ctx, err, "Failed to delete warranty")
		return err
	}
	d.env.Succeed("Warranty deleted successfully")
	return nil
}

func (d *Dashboard) indexOf(id string) int {
	return slices.IndexFunc(d.items, func(w models.Warranty) bool { return w.ID == id })
}

// Items returns a copy of the list in display order.
func (d *Dashboard) Items() []models.Warranty {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.items)
}

func (d *Dashboard) SortKey() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sortKey
}

func (d *Dashboard) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

// Summary counts the list as of now. Unparseable expiry dates count as
// active.
func (d *Dashboard) Summary(now time.Time) Summary {
	d.mu.Lock()
	defer d.mu.Unlock()
	return summarize(d.items, now)
}

func summarize(items []models.Warranty, now time.Time) Summary {
	s := Summary{Total: len(items)}
	for i := range items {
		w := &items[i]
		if w.IsExpired(now) {
			s.Expired++
		}
		if w.ExpiresWithin(now, ExpiringSoonWindow) {
			s.ExpiringSoon++
		}
	}
	s.Active = s.Total - s.Expired
	return s
}
