package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/taxdesk/taxdesk/internal/document"
)

func TestClientList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/documents" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("type"); got != "expenses" {
			t.Errorf("type query = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"type":"expenses","status":"Pending","uploadDate":"2024-01-01","vendor":"Acme","amount":"$10.00","date":"2024-01-01","payment_method":"Cash","category":"Supplies"},
			{"id":2,"type":"expenses","status":"Approved","uploadDate":"2024-01-02","vendor":"Globex","amount":"Missing","date":"Missing","payment_method":"Missing","category":"Other Expenses"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	docs, err := c.List(context.Background(), document.TypeExpense)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len = %d", len(docs))
	}
	e, ok := docs[1].(document.Expense)
	if !ok {
		t.Fatalf("variant = %T", docs[1])
	}
	if e.Amount != document.Missing {
		t.Errorf("amount = %q, want Missing placeholder", e.Amount)
	}
}

func TestClientUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/api/documents/7" {
			t.Errorf("path = %s", r.URL.Path)
		}
		// The PATCH body is string-valued regardless of column kind; the
		// service parses numeric columns itself.
		var fields map[string]string
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if fields["vendor"] != "Globex" || fields["amount"] != "1234.56" {
			t.Errorf("fields = %v", fields)
		}
		w.Write([]byte(`{"id":7,"type":"expenses","status":"Pending","uploadDate":"2024-01-01","vendor":"Globex","amount":"$10.00","date":"2024-01-01","payment_method":"Cash","category":"Supplies"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	doc, err := c.Update(context.Background(), "7", map[string]string{"vendor": "Globex", "amount": "1234.56"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if v, _ := doc.Field("vendor"); v != "Globex" {
		t.Errorf("vendor = %v", v)
	}
}

func TestClientDeleteNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"document not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	err := c.Delete(context.Background(), "99")

	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want RemoteError", err)
	}
	if re.Status != http.StatusNotFound || re.Message != "document not found" {
		t.Errorf("remote error = %+v", re)
	}
}

func TestClientServerMessageFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>gateway</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.List(context.Background(), document.TypeW2)

	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want RemoteError", err)
	}
	if re.Status != http.StatusBadGateway || re.Message != http.StatusText(http.StatusBadGateway) {
		t.Errorf("remote error = %+v", re)
	}
}

func TestClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, nil)
	_, err := c.List(context.Background(), document.TypeW2)

	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want RemoteError", err)
	}
	if re.Status != 0 {
		t.Errorf("transport failure carried status %d, want 0", re.Status)
	}
}

func TestClientUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/upload" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("type"); got != "expenses" {
			t.Errorf("type field = %q", got)
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		if header.Filename != "receipt.png" {
			t.Errorf("filename = %q", header.Filename)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":42,"type":"expenses","status":"Pending","uploadDate":"2024-04-01","vendor":"Missing","amount":"Missing","date":"Missing","payment_method":"Missing","category":"Other Expenses"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	doc, err := c.Upload(context.Background(), "receipt.png", strings.NewReader("png-bytes"), document.TypeExpense)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if doc.ID() != "42" || doc.Status() != document.StatusPending {
		t.Errorf("uploaded doc = %+v", doc)
	}
}

func TestClientOptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/options" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"categories":["Supplies"],"payment_methods":["Cash","Check"],"statuses":["Pending"],"vendors":["Acme"]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	opts, err := c.Options(context.Background())
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if len(opts.PaymentMethods) != 2 || opts.Vendors[0] != "Acme" {
		t.Errorf("options = %+v", opts)
	}
}
