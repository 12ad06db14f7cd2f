package calculator

import "github.com/shopspring/decimal"

// DebtEdge represents a debt from one participant to the payer.
type DebtEdge struct {
	From     string          `json:"from"` // Participant who owes
	FromName string          `json:"from_name"`
	To       string          `json:"to"` // Payer who fronted the bill
	ToName   string          `json:"to_name"`
	Amount   decimal.Decimal `json:"amount"`
}

// Totals is the sum of a set of settlement records.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Tip      decimal.Decimal `json:"tip"`
	Total    decimal.Decimal `json:"total"`
}

// OwedTo frames the records as debts to a single payer.
//
// Every participant other than the payer whose total is positive owes the
// payer their full total. The payer's own record produces no edge. When
// payerID is empty or matches no record the payer is unresolved and nil is
// returned; callers then present the records without "owes" framing.
func OwedTo(records []SettlementRecord, payerID string) []DebtEdge {
	if payerID == "" {
		return nil
	}

	var payer *SettlementRecord
	for i := range records {
		if records[i].ParticipantID == payerID {
			payer = &records[i]
			break
		}
	}
	if payer == nil {
		return nil
	}

	var edges []DebtEdge
	for _, r := range records {
		if r.ParticipantID == payerID || !r.Total.IsPositive() {
			continue
		}
		edges = append(edges, DebtEdge{
			From:     r.ParticipantID,
			FromName: r.Name,
			To:       payer.ParticipantID,
			ToName:   payer.Name,
			Amount:   r.Total,
		})
	}
	return edges
}

// Sum adds up subtotals, tax shares, tip shares and totals across records.
// The resulting Total is the grand total actually charged to participants;
// it excludes unassigned items.
func Sum(records []SettlementRecord) Totals {
	t := Totals{
		Subtotal: decimal.Zero,
		Tax:      decimal.Zero,
		Tip:      decimal.Zero,
		Total:    decimal.Zero,
	}
	for _, r := range records {
		t.Subtotal = t.Subtotal.Add(r.Subtotal)
		t.Tax = t.Tax.Add(r.TaxShare)
		t.Tip = t.Tip.Add(r.TipShare)
		t.Total = t.Total.Add(r.Total)
	}
	return t
}
