package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/money"
	"github.com/mmynk/billsplit/internal/session"
)

// CalculateRequest carries a snapshot of the bill.
type CalculateRequest struct {
	session.Snapshot
}

// CalculateResponse is the settlement for the bill.
type CalculateResponse struct {
	Records []calculator.SettlementRecord `json:"records"`

	// Debts frames records as "X owes payer"; empty when the payer is unresolved.
	Debts         []calculator.DebtEdge `json:"debts"`
	PayerResolved bool                  `json:"payer_resolved"`

	Totals     calculator.Totals `json:"totals"`
	ItemTotal  decimal.Decimal   `json:"item_total"` // every item, assigned or not
	Unassigned decimal.Decimal   `json:"unassigned"`
	Tax        decimal.Decimal   `json:"tax"`
	Tip        decimal.Decimal   `json:"tip"`
	Currency   money.Currency    `json:"currency"`
}

// ExportSummaryRequest carries a snapshot of the bill.
type ExportSummaryRequest struct {
	session.Snapshot
}

// ExportSummaryResponse holds the shareable text summary.
type ExportSummaryResponse struct {
	Text          string `json:"text"`
	PayerResolved bool   `json:"payer_resolved"`
}
