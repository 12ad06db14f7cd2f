package models

import "github.com/shopspring/decimal"

// Participant represents one person splitting the bill.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string `json:"id"`

	// Name is the display name. Names are not required to be unique.
	Name string `json:"name"`
}

// LineItem represents a single line item on a bill.
// Items can be shared among multiple participants.
type LineItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Name is the description of the item (e.g., "Pizza", "Beer").
	Name string `json:"name"`

	// Price is the pre-tax price of this item. Never negative.
	Price decimal.Decimal `json:"price"`

	// AssignedTo is the set of participant IDs who split this item equally.
	// Order is not significant. An empty set is valid: the item counts toward
	// the bill subtotal but toward nobody's share.
	AssignedTo []string `json:"assigned_to"`
}

// Clone returns a copy of the item that shares no memory with the original.
func (i LineItem) Clone() LineItem {
	c := i
	if i.AssignedTo != nil {
		c.AssignedTo = append([]string(nil), i.AssignedTo...)
	}
	return c
}

// IsAssignedTo reports whether participantID is one of the item's assignees.
func (i LineItem) IsAssignedTo(participantID string) bool {
	for _, id := range i.AssignedTo {
		if id == participantID {
			return true
		}
	}
	return false
}
