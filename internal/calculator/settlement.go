// Package calculator turns a bill snapshot into per-person settlements.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplit/internal/models"
)

// SettlementRecord is the calculated share of the bill for one participant.
type SettlementRecord struct {
	ParticipantID string          `json:"participant_id"`
	Name          string          `json:"name"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxShare      decimal.Decimal `json:"tax_share"`
	TipShare      decimal.Decimal `json:"tip_share"`
	Total         decimal.Decimal `json:"total"`

	// AssignedItems are the items this participant shares, in bill order.
	AssignedItems []models.LineItem `json:"assigned_items"`
}

// Calculate computes how much each participant owes, including a share of
// tax and tip proportional to their item subtotal.
//
// Algorithm:
//   - share of an item = price / number of assignees
//   - proportion = person_subtotal / sum of all item prices
//   - tax_share = tax × proportion, tip_share = tip × proportion
//
// Items nobody is assigned to still count toward the bill subtotal, so their
// cost (and the matching slice of tax and tip) is not charged to anyone.
// Assignees that are not in participants are ignored. There is no rounding
// and no error case; tax and tip are taken as given, negative or not.
//
// One record is returned per participant, in input order. The records share
// no memory with the arguments.
func Calculate(participants []models.Participant, items []models.LineItem, tax, tip decimal.Decimal) []SettlementRecord {
	subtotals := make(map[string]decimal.Decimal, len(participants))
	consumed := make(map[string][]models.LineItem, len(participants))
	for _, p := range participants {
		subtotals[p.ID] = decimal.Zero
		consumed[p.ID] = []models.LineItem{}
	}

	totalItemCost := TotalItemCost(items)

	for _, item := range items {
		if len(item.AssignedTo) == 0 {
			continue
		}

		share := item.Price.Div(decimal.NewFromInt(int64(len(item.AssignedTo))))
		for _, pid := range item.AssignedTo {
			subtotal, known := subtotals[pid]
			if !known {
				continue
			}
			subtotals[pid] = subtotal.Add(share)
			consumed[pid] = append(consumed[pid], item)
		}
	}

	records := make([]SettlementRecord, len(participants))
	for i, p := range participants {
		records[i] = SettlementRecord{
			ParticipantID: p.ID,
			Name:          p.Name,
			Subtotal:      subtotals[p.ID],
			AssignedItems: cloneItems(consumed[p.ID]),
		}
	}

	for i := range records {
		r := &records[i]
		if totalItemCost.IsPositive() {
			// tax × (subtotal / total), multiplied first to keep precision.
			r.TaxShare = tax.Mul(r.Subtotal).Div(totalItemCost)
			r.TipShare = tip.Mul(r.Subtotal).Div(totalItemCost)
		}
		r.Total = r.Subtotal.Add(r.TaxShare).Add(r.TipShare)
	}

	return records
}

// TotalItemCost is the bill subtotal: every item's price, assigned or not.
func TotalItemCost(items []models.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	return total
}

// UnassignedCost sums the prices of items with no assignees.
func UnassignedCost(items []models.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if len(item.AssignedTo) == 0 {
			total = total.Add(item.Price)
		}
	}
	return total
}

func cloneItems(items []models.LineItem) []models.LineItem {
	out := make([]models.LineItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
