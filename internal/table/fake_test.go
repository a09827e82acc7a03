package table

import (
	"context"
	"io"
	"sort"
	"strconv"
	"sync"

	"github.com/taxdesk/taxdesk/internal/document"
	"github.com/taxdesk/taxdesk/internal/store"
)

// fakeStore is an in-memory Store with scriptable failures.
type fakeStore struct {
	mu sync.Mutex

	docs map[string]document.Document

	updateErr error
	deleteErr map[string]error
	listErr   error
	opts      store.FilterOptions
	optsErr   error

	listCalls   int
	updateCalls int
	deleteCalls int
	optsCalls   int

	lastUpdate map[string]string

	// onList, if set, runs before each List returns. Used to interleave
	// concurrent refreshes in supersede tests.
	onList func()
}

func newFakeStore(docs ...document.Document) *fakeStore {
	f := &fakeStore{
		docs:      make(map[string]document.Document),
		deleteErr: make(map[string]error),
	}
	for _, d := range docs {
		f.docs[d.ID()] = d
	}
	return f
}

func (f *fakeStore) List(ctx context.Context, typ document.Type) ([]document.Document, error) {
	f.mu.Lock()
	f.listCalls++
	hook := f.onList
	err := f.listErr
	var out []document.Document
	for _, d := range f.docs {
		if typ == "" || d.Type() == typ {
			out = append(out, d)
		}
	}
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		a, _ := strconv.Atoi(out[i].ID())
		b, _ := strconv.Atoi(out[j].ID())
		return a < b
	})
	return out, nil
}

func (f *fakeStore) Update(ctx context.Context, id string, fields map[string]string) (document.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.lastUpdate = fields

	if f.updateErr != nil {
		return nil, f.updateErr
	}
	doc, ok := f.docs[id]
	if !ok {
		return nil, &store.RemoteError{Status: 404, Message: "document not found"}
	}

	// The wire carries strings; numeric columns are parsed server-side the
	// way the persistence service does, except expense amounts which stay
	// raw strings in storage.
	patch := make(map[string]any, len(fields))
	for fieldID, raw := range fields {
		col, ok := document.ColumnByID(doc.Type(), fieldID)
		if ok && col.Kind == document.KindAmount && doc.Type() != document.TypeExpense {
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &store.RemoteError{Status: 422, Message: "invalid amount: " + raw}
			}
			patch[fieldID] = n
			continue
		}
		patch[fieldID] = raw
	}

	patched, err := document.Patch(doc, patch)
	if err != nil {
		return nil, &store.RemoteError{Status: 422, Message: err.Error()}
	}
	f.docs[id] = patched
	return patched, nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++

	if err := f.deleteErr[id]; err != nil {
		return err
	}
	if _, ok := f.docs[id]; !ok {
		return &store.RemoteError{Status: 404, Message: "document not found"}
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeStore) Upload(ctx context.Context, filename string, content io.Reader, typ document.Type) (document.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := strconv.Itoa(len(f.docs) + 1000)
	doc := document.Expense{
		Base: document.Base{
			DocID:   id,
			DocType: document.TypeExpense,
			State:   document.StatusPending,
			Upload:  "2024-04-01",
			Image:   "uploads/" + filename,
		},
		Vendor:        document.Missing,
		Amount:        document.Missing,
		Date:          document.Missing,
		PaymentMethod: document.Missing,
		Category:      "Other Expenses",
	}
	f.docs[id] = doc
	return doc, nil
}

func (f *fakeStore) Options(ctx context.Context) (store.FilterOptions, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.optsCalls++

	if f.optsErr != nil {
		return store.FilterOptions{}, f.optsErr
	}
	return f.opts, nil
}

// Test document builders.

func expense(id, vendor, amount, date string) document.Expense {
	return document.Expense{
		Base: document.Base{
			DocID:   id,
			DocType: document.TypeExpense,
			State:   document.StatusPending,
			Upload:  "2024-03-15",
		},
		Vendor:        vendor,
		Amount:        amount,
		Date:          date,
		PaymentMethod: "Cash",
		Category:      "Supplies",
	}
}

func w2(id, employer string, wages float64) document.W2 {
	return document.W2{
		Base: document.Base{
			DocID:   id,
			DocType: document.TypeW2,
			State:   document.StatusPending,
			Upload:  "2024-02-01",
		},
		Employer: employer,
		Wages:    wages,
	}
}

func donation(id, charity string, amount float64, date string) document.Donation {
	return document.Donation{
		Base: document.Base{
			DocID:   id,
			DocType: document.TypeDonation,
			State:   document.StatusApproved,
			Upload:  "2024-01-20",
		},
		CharityName:  charity,
		DonationType: "Cash",
		Amount:       amount,
		Date:         date,
	}
}

func ids(docs []document.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID()
	}
	return out
}

func sameIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
