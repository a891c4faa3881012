package resources

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kevgathuku/docue/internal/core/domain"
	"github.com/kevgathuku/docue/internal/core/ports"
	"github.com/kevgathuku/docue/internal/store"
)

const docJSON = `{"id":"d1","title":"Q3 Report","content":"numbers","ownerId":"u1","dateCreated":"2016-04-12T08:30:00Z","role":{"id":"r1","title":"viewer","accessLevel":0}}`

// fnGateway delegates to a per-test function.
type fnGateway struct {
	fn func(method, path string, body any, token string) ports.Response
}

func (g fnGateway) Request(_ context.Context, method, path string, body any, token string) ports.Response {
	return g.fn(method, path, body, token)
}

type fixture struct {
	store   *store.Store
	unauth  int
	respond func(method, path string, body any, token string) ports.Response
}

func newFixture() *fixture {
	return &fixture{store: store.New()}
}

func (f *fixture) documents() *Service[domain.Document] {
	return NewDocuments(Deps{
		Gateway:        fnGateway{fn: func(m, p string, b any, tok string) ports.Response { return f.respond(m, p, b, tok) }},
		Store:          f.store,
		Token:          func() string { return f.store.Session().Token },
		OnUnauthorized: func() { f.unauth++ },
		Logger:         zerolog.Nop(),
	})
}

func TestFetchAll(t *testing.T) {
	f := newFixture()
	var gotPath, gotToken string
	f.respond = func(method, path string, _ any, token string) ports.Response {
		gotPath = method + " " + path
		gotToken = token
		return ports.Response{OK: true, Status: 200, Body: []byte(`[` + docJSON + `]`)}
	}
	f.store.SetSession(domain.Session{State: domain.StateAuthenticated, Token: "jwt"})
	svc := f.documents()

	docs, err := svc.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "d1" {
		t.Fatalf("FetchAll() = %+v", docs)
	}
	if gotPath != "GET /api/documents" || gotToken != "jwt" {
		t.Errorf("request = %q token = %q", gotPath, gotToken)
	}
	if all := svc.Slice().All(); len(all) != 1 {
		t.Errorf("store list = %+v", all)
	}
}

func TestFetchOneSelectsAndUpserts(t *testing.T) {
	f := newFixture()
	f.respond = func(_, _ string, _ any, _ string) ports.Response {
		return ports.Response{OK: true, Status: 200, Body: []byte(docJSON)}
	}
	svc := f.documents()

	doc, err := svc.FetchOne(context.Background(), "d1")
	if err != nil {
		t.Fatalf("FetchOne() error = %v", err)
	}
	sel, ok := svc.Slice().Selected()
	if !ok || sel.ID != doc.ID {
		t.Errorf("Selected() = %+v %v", sel, ok)
	}
}

func TestCreateValidatesPayload(t *testing.T) {
	f := newFixture()
	called := false
	f.respond = func(_, _ string, _ any, _ string) ports.Response {
		called = true
		return ports.Response{OK: true, Status: 201, Body: []byte(docJSON)}
	}
	svc := f.documents()

	_, err := svc.Create(context.Background(), ports.DocumentPayload{Content: "no title"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("Create() error = %v, want ErrValidation", err)
	}
	if called {
		t.Error("gateway called for invalid payload")
	}
	if st := svc.Slice().OpState(store.OpCreate); st.Status != store.StatusIdle {
		t.Errorf("create op touched for invalid payload: %+v", st)
	}
}

func TestCreateAppends(t *testing.T) {
	f := newFixture()
	f.respond = func(_, _ string, _ any, _ string) ports.Response {
		return ports.Response{OK: true, Status: 201, Body: []byte(docJSON)}
	}
	svc := f.documents()

	payload := ports.DocumentPayload{Title: "Q3 Report", Role: domain.Role{ID: "r1", Title: "viewer"}}
	doc, err := svc.Create(context.Background(), payload)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got, ok := svc.Slice().ByID(doc.ID); !ok || got.Title != "Q3 Report" {
		t.Errorf("ByID = %+v %v", got, ok)
	}
}

func TestUpdateForbiddenKeepsList(t *testing.T) {
	f := newFixture()
	f.respond = func(method, _ string, _ any, _ string) ports.Response {
		if method == "GET" {
			return ports.Response{OK: true, Status: 200, Body: []byte(`[` + docJSON + `]`)}
		}
		return ports.Response{Status: 403, Err: "access forbidden"}
	}
	svc := f.documents()
	if _, err := svc.FetchAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	payload := ports.DocumentPayload{Title: "hack", Role: domain.Role{ID: "r1"}}
	_, err := svc.Update(context.Background(), "d1", payload)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Update() error = %v, want ErrForbidden", err)
	}
	got, _ := svc.Slice().ByID("d1")
	if got.Title != "Q3 Report" {
		t.Errorf("list mutated on rejected update: %+v", got)
	}
	if msg := svc.Slice().LastError(); msg != "access forbidden" {
		t.Errorf("LastError() = %q", msg)
	}
}

func TestDeleteRemoves(t *testing.T) {
	f := newFixture()
	f.respond = func(method, _ string, _ any, _ string) ports.Response {
		if method == "GET" {
			return ports.Response{OK: true, Status: 200, Body: []byte(`[` + docJSON + `]`)}
		}
		return ports.Response{OK: true, Status: 200, Body: []byte(`{"message":"document deleted"}`)}
	}
	svc := f.documents()
	if _, err := svc.FetchAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(context.Background(), "d1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if all := svc.Slice().All(); len(all) != 0 {
		t.Errorf("All() = %+v after delete", all)
	}
}

func TestUnauthorizedEscalates(t *testing.T) {
	f := newFixture()
	f.respond = func(_, _ string, _ any, _ string) ports.Response {
		return ports.Response{Status: 401, Err: "authentication required"}
	}
	svc := f.documents()

	_, err := svc.FetchAll(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("FetchAll() error = %v, want ErrUnauthorized", err)
	}
	if f.unauth != 1 {
		t.Errorf("OnUnauthorized called %d times, want 1", f.unauth)
	}
}

func TestNotFoundDropsSelection(t *testing.T) {
	f := newFixture()
	gone := false
	f.respond = func(_, _ string, _ any, _ string) ports.Response {
		if gone {
			return ports.Response{Status: 404, Err: "not found"}
		}
		return ports.Response{OK: true, Status: 200, Body: []byte(docJSON)}
	}
	svc := f.documents()
	if _, err := svc.FetchOne(context.Background(), "d1"); err != nil {
		t.Fatal(err)
	}

	gone = true
	_, err := svc.FetchOne(context.Background(), "d1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("FetchOne() error = %v, want ErrNotFound", err)
	}
	if _, ok := svc.Slice().Selected(); ok {
		t.Error("selection survived 404")
	}
}

func TestDecodeFailureRejects(t *testing.T) {
	f := newFixture()
	f.respond = func(_, _ string, _ any, _ string) ports.Response {
		return ports.Response{OK: true, Status: 200, Body: []byte(`[{"id":"d1"}]`)}
	}
	svc := f.documents()

	_, err := svc.FetchAll(context.Background())
	if !errors.Is(err, domain.ErrDecode) {
		t.Fatalf("FetchAll() error = %v, want ErrDecode", err)
	}
	if st := svc.Slice().OpState(store.OpFetchAll); st.Status != store.StatusRejected {
		t.Errorf("OpState = %+v, want rejected", st)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	f := newFixture()
	entered := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	call := 0
	f.respond = func(_, _ string, _ any, _ string) ports.Response {
		mu.Lock()
		call++
		n := call
		mu.Unlock()
		if n == 1 {
			close(entered)
			<-release
			return ports.Response{OK: true, Status: 200, Body: []byte(`[` + docJSON + `]`)}
		}
		return ports.Response{OK: true, Status: 200, Body: []byte(`[]`)}
	}
	svc := f.documents()

	done := make(chan error, 1)
	go func() {
		_, err := svc.FetchAll(context.Background())
		done <- err
	}()
	<-entered

	// A second fetch is dispatched and completes while the first hangs.
	if _, err := svc.FetchAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	// The first fetch finished last; its stale payload must not win.
	if all := svc.Slice().All(); len(all) != 0 {
		t.Errorf("All() = %+v, want the newer empty result", all)
	}
}
