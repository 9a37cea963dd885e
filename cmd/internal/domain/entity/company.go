package entity

// Company is a tax-registered entity on whose behalf documents are synced.
type Company struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	CNPJ     string `json:"cnpj"`
	Strategy string `json:"strategy"`

	// Informational fields, passed through as the upstream sends them.
	State     string `json:"state,omitempty"`
	CertAlias string `json:"cert_alias,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}
