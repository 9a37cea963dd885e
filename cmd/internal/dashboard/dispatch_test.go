package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webnotas/cmd/internal/domain/entity"
)

func TestDispatcher_RoutesRoles(t *testing.T) {
	api := &fakeAPI{docs: map[entity.ID][]entity.Document{"7": {{Chave: "1"}}}}
	store := loadedStore()
	jobs := NewJobMonitor(api, store)
	docs := NewDocumentView(api, store)
	d := NewDispatcher(jobs, docs)

	require.NoError(t, d.Dispatch(context.Background(), RoleSync, "7"))
	require.NoError(t, d.Dispatch(context.Background(), RoleDocuments, "7"))

	assert.Equal(t, []string{"RequestSync 7", "ListJobs", "ListDocuments 7"}, api.Calls())
	assert.Equal(t, 1, docs.Table().Len())
}

func TestDispatcher_RejectsUnknownInput(t *testing.T) {
	api := &fakeAPI{}
	store := NewCompanyStore()
	d := NewDispatcher(NewJobMonitor(api, store), NewDocumentView(api, store))

	assert.ErrorIs(t, d.Dispatch(context.Background(), Role("delete"), "7"), ErrUnknownAction)
	assert.ErrorIs(t, d.Dispatch(context.Background(), RoleSync, ""), ErrMissingCompany)
	assert.Empty(t, api.Calls())
}

// The id is read from the row action at click time, so an action taken from
// a table rendered before a reload still targets its company.
func TestDispatcher_ActionFromStaleRender(t *testing.T) {
	api := &fakeAPI{companies: []entity.Company{{ID: "1", Name: "A"}}}
	store := NewCompanyStore()
	registry := NewCompanyRegistry(api, store, nil, NewAlertBox())
	jobs := NewJobMonitor(api, store)
	d := NewDispatcher(jobs, NewDocumentView(api, store))

	require.NoError(t, registry.Refresh(context.Background()))
	action := registry.Table().Rows()[0].Actions[0]

	api.companies = []entity.Company{{ID: "2", Name: "B"}}
	require.NoError(t, registry.Refresh(context.Background()))

	require.NoError(t, d.Dispatch(context.Background(), action.Role, action.CompanyID))
	assert.Contains(t, api.Calls(), "RequestSync 1")
}
