package entity

// JobStatus is defined by the upstream. The values below are the ones it is
// known to emit, anything else is still displayed verbatim.
type JobStatus string

const (
	JobQueued  JobStatus = "queued"
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobError   JobStatus = "error"
)

// Job is one synchronization attempt tracked by the upstream.
type Job struct {
	ID             ID        `json:"id"`
	CompanyID      ID        `json:"company_id"`
	Status         JobStatus `json:"status"`
	TotalDocuments int       `json:"total_documents"`
	Message        string    `json:"message"`
}
