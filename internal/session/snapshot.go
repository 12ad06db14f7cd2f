package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/money"
)

// ErrDuplicateID is returned when a snapshot reuses a participant or item ID.
var ErrDuplicateID = errors.New("duplicate id")

// Snapshot is a detached copy of a session's state.
type Snapshot struct {
	ID           string               `json:"id,omitempty"`
	Name         string               `json:"name"`
	Currency     string               `json:"currency,omitempty"`
	Participants []models.Participant `json:"participants"`
	Items        []models.LineItem    `json:"items"`
	PayerID      string               `json:"payer_id,omitempty"`
	Tax          decimal.Decimal      `json:"tax"`
	Tip          decimal.Decimal      `json:"tip"`
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:           s.id,
		Name:         s.name,
		Currency:     s.currency.Code,
		Participants: s.Participants(),
		Items:        s.Items(),
		PayerID:      s.payerID,
		Tax:          s.tax,
		Tip:          s.tip,
	}
}

// FromSnapshot rebuilds a session from a snapshot, applying the same rules
// as the individual mutations. Missing IDs are generated. Assignments to
// participants that are not in the snapshot are dropped, and repeated
// assignments collapse into one. The payer is taken as given: an empty payer
// stays unresolved.
func FromSnapshot(snap Snapshot, opts ...Option) (*Session, error) {
	s := New(snap.Name, opts...)
	if snap.ID != "" {
		s.id = snap.ID
	}

	if snap.Currency != "" {
		if err := s.SetCurrency(snap.Currency); err != nil {
			return nil, err
		}
	}

	known := make(map[string]bool, len(snap.Participants))
	for _, p := range snap.Participants {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, fmt.Errorf("participant %q: %w", p.ID, ErrEmptyName)
		}
		id := p.ID
		if id == "" {
			id = s.newID()
		}
		if known[id] {
			return nil, fmt.Errorf("participant %s: %w", id, ErrDuplicateID)
		}
		known[id] = true
		s.participants = append(s.participants, models.Participant{ID: id, Name: name})
	}

	seenItems := make(map[string]bool, len(snap.Items))
	for _, item := range snap.Items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("item %q: %w", item.ID, ErrEmptyName)
		}
		if err := money.Validate(item.Price); err != nil {
			return nil, fmt.Errorf("item %q price: %w", name, err)
		}
		id := item.ID
		if id == "" {
			id = s.newID()
		}
		if seenItems[id] {
			return nil, fmt.Errorf("item %s: %w", id, ErrDuplicateID)
		}
		seenItems[id] = true

		assigned := make([]string, 0, len(item.AssignedTo))
		seen := make(map[string]bool, len(item.AssignedTo))
		for _, pid := range item.AssignedTo {
			if !known[pid] || seen[pid] {
				continue
			}
			seen[pid] = true
			assigned = append(assigned, pid)
		}

		s.items = append(s.items, models.LineItem{
			ID:         id,
			Name:       name,
			Price:      item.Price,
			AssignedTo: assigned,
		})
	}

	if err := s.SetTax(snap.Tax); err != nil {
		return nil, err
	}
	if err := s.SetTip(snap.Tip); err != nil {
		return nil, err
	}
	if err := s.SetPayer(snap.PayerID); err != nil {
		return nil, fmt.Errorf("payer: %w", err)
	}

	return s, nil
}
