package entity

import "github.com/shopspring/decimal"

type Direction string

const (
	DirectionInbound  Direction = "entrada"
	DirectionOutbound Direction = "saida"
)

// Document is a fiscal record retrieved during a sync.
type Document struct {
	Model     string          `json:"model"`
	Direction Direction       `json:"direction"`
	Chave     string          `json:"chave"`
	IssueDate string          `json:"issue_date"`
	Amount    decimal.Decimal `json:"amount"`
	XMLPath   string          `json:"xml_path"`
}

// FormattedAmount renders the amount in BRL with exactly two decimals,
// whatever precision the upstream returned.
func (d *Document) FormattedAmount() string {
	return "R$ " + d.Amount.StringFixed(2)
}
