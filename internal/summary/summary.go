// Package summary renders settlement results as plain text for sharing.
package summary

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/money"
	"github.com/mmynk/billsplit/internal/session"
)

// Bill is everything the summary needs. Records are expected to come from
// calculator.Calculate over Items.
type Bill struct {
	Name     string
	Currency money.Currency
	Payer    *models.Participant // nil when unresolved
	Items    []models.LineItem
	Records  []calculator.SettlementRecord
}

// Text renders the bill summary.
//
// Each non-payer gets a block with the amount they owe the payer, rounded
// to whole units, followed by their items and an unrounded breakdown. When
// the payer is unresolved the payer framing is left out and every
// participant is listed. The grand total is the sum of all participant
// totals; cost of unassigned items is reported on its own line.
func Text(b Bill) string {
	var sb strings.Builder
	c := b.Currency
	if c.Code == "" {
		c = money.DefaultCurrency
	}

	fmt.Fprintf(&sb, "BILL SPLIT: %s\n", strings.ToUpper(b.Name))
	if b.Payer != nil {
		fmt.Fprintf(&sb, "PAYER: %s\n", strings.ToUpper(b.Payer.Name))
	}
	sb.WriteString("\n")

	for _, r := range b.Records {
		if b.Payer != nil && r.ParticipantID == b.Payer.ID {
			continue
		}

		fmt.Fprintf(&sb, "%s\n", strings.ToUpper(r.Name))
		if b.Payer != nil {
			fmt.Fprintf(&sb, "Owes %s: %s\n", strings.ToUpper(b.Payer.Name), c.FormatWhole(r.Total))
		} else {
			fmt.Fprintf(&sb, "Owes: %s\n", c.FormatWhole(r.Total))
		}
		fmt.Fprintf(&sb, "Items: %s\n", itemNames(r.AssignedItems))
		fmt.Fprintf(&sb, "Breakdown: Sub %s | Tax %s | Tip %s\n\n",
			c.Format(r.Subtotal), c.Format(r.TaxShare), c.Format(r.TipShare))
	}

	if unassigned := calculator.UnassignedCost(b.Items); !unassigned.IsZero() {
		fmt.Fprintf(&sb, "UNASSIGNED: %s\n", c.Format(unassigned))
	}
	fmt.Fprintf(&sb, "TOTAL BILL: %s", c.Format(GrandTotal(b.Records)))

	return sb.String()
}

// GrandTotal sums the participant totals.
func GrandTotal(records []calculator.SettlementRecord) decimal.Decimal {
	return calculator.Sum(records).Total
}

func itemNames(items []models.LineItem) string {
	if len(items) == 0 {
		return "None"
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return strings.Join(names, ", ")
}

// ForSession collects a Bill from the current state of s. The payer is left
// nil when s has none.
func ForSession(s *session.Session) Bill {
	b := Bill{
		Name:     s.Name(),
		Currency: s.Currency(),
		Items:    s.Items(),
		Records:  s.Results(),
	}
	if p, err := s.Payer(); err == nil {
		b.Payer = &p
	}
	return b
}
