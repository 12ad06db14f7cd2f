// Package session owns the mutable state of one bill split.
//
// A Session is the single writer for participants, items, payer, tax, tip and
// currency. Every mutation validates its input and leaves the previous state
// untouched on error. Results are recomputed from scratch on demand.
//
// A Session is not safe for concurrent use.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/money"
)

var (
	// ErrEmptyName is returned when a participant or item name is blank.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrParticipantNotFound is returned for an unknown participant ID.
	ErrParticipantNotFound = errors.New("participant not found")

	// ErrItemNotFound is returned for an unknown item ID.
	ErrItemNotFound = errors.New("item not found")

	// ErrUnresolvedPayer is returned when no participant is designated as payer.
	ErrUnresolvedPayer = errors.New("no payer designated")
)

// DefaultName is used for a session created without a name.
const DefaultName = "New Split"

// Session holds the state of one bill split.
type Session struct {
	id           string
	name         string
	currency     money.Currency
	participants []models.Participant
	items        []models.LineItem
	payerID      string
	tax          decimal.Decimal
	tip          decimal.Decimal
	newID        func() string
}

// Option configures a Session.
type Option func(*Session)

// WithIDGenerator replaces the UUID generator used for new entities.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) {
		s.newID = fn
	}
}

// WithCurrency sets the initial display currency.
func WithCurrency(c money.Currency) Option {
	return func(s *Session) {
		s.currency = c
	}
}

// New creates an empty session.
func New(name string, opts ...Option) *Session {
	s := &Session{
		name:     strings.TrimSpace(name),
		currency: money.DefaultCurrency,
		tax:      decimal.Zero,
		tip:      decimal.Zero,
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.name == "" {
		s.name = DefaultName
	}
	s.id = s.newID()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Name returns the display name of the split.
func (s *Session) Name() string { return s.name }

// SetName renames the split. A blank name resets it to DefaultName.
func (s *Session) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	s.name = name
}

// Currency returns the display currency.
func (s *Session) Currency() money.Currency { return s.currency }

// SetCurrency selects a supported display currency by ISO 4217 code.
func (s *Session) SetCurrency(code string) error {
	c, err := money.LookupCurrency(code)
	if err != nil {
		return err
	}
	s.currency = c
	return nil
}

// Tax returns the aggregate tax.
func (s *Session) Tax() decimal.Decimal { return s.tax }

// Tip returns the aggregate tip.
func (s *Session) Tip() decimal.Decimal { return s.tip }

// SetTax sets the aggregate tax. A negative amount is rejected and the
// previous value is kept.
func (s *Session) SetTax(tax decimal.Decimal) error {
	if err := money.Validate(tax); err != nil {
		return fmt.Errorf("tax: %w", err)
	}
	s.tax = tax
	return nil
}

// SetTip sets the aggregate tip. A negative amount is rejected and the
// previous value is kept.
func (s *Session) SetTip(tip decimal.Decimal) error {
	if err := money.Validate(tip); err != nil {
		return fmt.Errorf("tip: %w", err)
	}
	s.tip = tip
	return nil
}

// Results runs the settlement calculation over the current state.
func (s *Session) Results() []calculator.SettlementRecord {
	return calculator.Calculate(s.participants, s.items, s.tax, s.tip)
}

// Debts frames the current results as debts to the payer.
// It returns ErrUnresolvedPayer together with a nil slice when no payer is set.
func (s *Session) Debts() ([]calculator.DebtEdge, error) {
	if _, err := s.Payer(); err != nil {
		return nil, err
	}
	return calculator.OwedTo(s.Results(), s.payerID), nil
}
