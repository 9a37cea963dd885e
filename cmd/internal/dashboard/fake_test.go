package dashboard

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"webnotas/cmd/internal/domain/entity"
	"webnotas/cmd/internal/infrastructure/webnotas"
)

// fakeAPI is an in-memory upstream recording the calls it receives.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	companies    []entity.Company
	companiesErr error
	createErr    error
	jobs         []entity.Job
	jobsErr      error
	syncErr      error
	docs         map[entity.ID][]entity.Document
	docsErr      error

	listJobs func(ctx context.Context) ([]entity.Job, error)
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) ListCompanies(ctx context.Context) ([]entity.Company, error) {
	f.record("ListCompanies")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.companies, f.companiesErr
}

func (f *fakeAPI) CreateCompany(ctx context.Context, fields map[string]string) (*entity.Company, error) {
	f.record("CreateCompany")
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &entity.Company{ID: "99", Name: fields["name"]}, nil
}

func (f *fakeAPI) ListJobs(ctx context.Context) ([]entity.Job, error) {
	f.record("ListJobs")
	if f.listJobs != nil {
		return f.listJobs(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs, f.jobsErr
}

func (f *fakeAPI) RequestSync(ctx context.Context, companyID entity.ID) error {
	f.record("RequestSync " + companyID.String())
	return f.syncErr
}

func (f *fakeAPI) ListDocuments(ctx context.Context, companyID entity.ID) ([]entity.Document, error) {
	f.record("ListDocuments " + companyID.String())
	return f.docs[companyID], f.docsErr
}

// upstream is an HTTP fake of the WEBNOTAS API for tests that go through
// the real client.
type upstream struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []string
	bodies   map[string]string
	routes   map[string]http.HandlerFunc
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{
		bodies: map[string]string{},
		routes: map[string]http.HandlerFunc{},
	}
	u.server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.server.Close)
	return u
}

func (u *upstream) handle(route string, h http.HandlerFunc) {
	u.mu.Lock()
	u.routes[route] = h
	u.mu.Unlock()
}

func (u *upstream) reply(route string, status int, payload any) {
	u.handle(route, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(payload)
	})
}

func (u *upstream) serve(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + r.URL.Path
	body, _ := io.ReadAll(r.Body)

	u.mu.Lock()
	u.requests = append(u.requests, route)
	u.bodies[route] = string(body)
	h, ok := u.routes[route]
	u.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

func (u *upstream) Requests() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.requests...)
}

func (u *upstream) Body(route string) string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.bodies[route]
}

func (u *upstream) Client() *webnotas.Client {
	return webnotas.NewClient(u.server.URL)
}
