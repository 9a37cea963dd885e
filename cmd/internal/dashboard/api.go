package dashboard

import (
	"context"

	"webnotas/cmd/internal/domain/entity"
)

type CompanyAPI interface {
	ListCompanies(ctx context.Context) ([]entity.Company, error)
	CreateCompany(ctx context.Context, fields map[string]string) (*entity.Company, error)
}

type JobAPI interface {
	ListJobs(ctx context.Context) ([]entity.Job, error)
	RequestSync(ctx context.Context, companyID entity.ID) error
}

type DocumentAPI interface {
	ListDocuments(ctx context.Context, companyID entity.ID) ([]entity.Document, error)
}

// API is everything the dashboard needs from the upstream.
type API interface {
	CompanyAPI
	JobAPI
	DocumentAPI
}

// Refresher reloads one view.
type Refresher interface {
	Refresh(ctx context.Context) error
}
