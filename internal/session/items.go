package session

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/money"
)

// Items returns a copy of the item list in entry order.
func (s *Session) Items() []models.LineItem {
	out := make([]models.LineItem, len(s.items))
	for i, item := range s.items {
		out[i] = item.Clone()
	}
	return out
}

// Item looks up an item by ID.
func (s *Session) Item(id string) (models.LineItem, error) {
	if i := s.itemIndex(id); i >= 0 {
		return s.items[i].Clone(), nil
	}
	return models.LineItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// AddItem appends a new item assigned to everyone currently in the session.
// Participants added later are not attached to it.
func (s *Session) AddItem(name string, price decimal.Decimal) (models.LineItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.LineItem{}, ErrEmptyName
	}
	if err := money.Validate(price); err != nil {
		return models.LineItem{}, fmt.Errorf("item %q price: %w", name, err)
	}

	assigned := make([]string, len(s.participants))
	for i, p := range s.participants {
		assigned[i] = p.ID
	}

	item := models.LineItem{
		ID:         s.newID(),
		Name:       name,
		Price:      price,
		AssignedTo: assigned,
	}
	s.items = append(s.items, item)
	return item.Clone(), nil
}

// RemoveItem deletes an item.
func (s *Session) RemoveItem(id string) error {
	i := s.itemIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	return nil
}

// ToggleAssignment adds the participant to the item if absent, or removes
// them if present.
func (s *Session) ToggleAssignment(itemID, participantID string) error {
	i := s.itemIndex(itemID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	if s.participantIndex(participantID) < 0 {
		return fmt.Errorf("%w: %s", ErrParticipantNotFound, participantID)
	}

	item := &s.items[i]
	if item.IsAssignedTo(participantID) {
		item.AssignedTo = without(item.AssignedTo, participantID)
	} else {
		item.AssignedTo = append(item.AssignedTo, participantID)
	}
	return nil
}

// Assign replaces the item's assignees. Duplicate IDs collapse into one.
// An empty list leaves the item unassigned.
func (s *Session) Assign(itemID string, participantIDs []string) error {
	i := s.itemIndex(itemID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	assigned := make([]string, 0, len(participantIDs))
	seen := make(map[string]bool, len(participantIDs))
	for _, pid := range participantIDs {
		if s.participantIndex(pid) < 0 {
			return fmt.Errorf("%w: %s", ErrParticipantNotFound, pid)
		}
		if seen[pid] {
			continue
		}
		seen[pid] = true
		assigned = append(assigned, pid)
	}
	s.items[i].AssignedTo = assigned
	return nil
}

func (s *Session) itemIndex(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
