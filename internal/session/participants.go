package session

import (
	"fmt"
	"strings"

	"github.com/mmynk/billsplit/internal/models"
)

// Participants returns a copy of the participant list in entry order.
func (s *Session) Participants() []models.Participant {
	return append([]models.Participant{}, s.participants...)
}

// Participant looks up a participant by ID.
func (s *Session) Participant(id string) (models.Participant, error) {
	if i := s.participantIndex(id); i >= 0 {
		return s.participants[i], nil
	}
	return models.Participant{}, fmt.Errorf("%w: %s", ErrParticipantNotFound, id)
}

// AddParticipant appends a new participant. The first participant added
// while no payer is set becomes the payer.
func (s *Session) AddParticipant(name string) (models.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Participant{}, ErrEmptyName
	}

	p := models.Participant{ID: s.newID(), Name: name}
	s.participants = append(s.participants, p)
	if s.payerID == "" {
		s.payerID = p.ID
	}
	return p, nil
}

// RemoveParticipant deletes a participant and unassigns them from every
// item. Nothing is moved onto other items or participants: a shared item is
// split among whoever is still assigned to it, and an item left with no
// assignees stays on the bill as unassigned cost. If the participant was the
// payer, the first remaining participant becomes payer, or the payer is
// cleared.
func (s *Session) RemoveParticipant(id string) error {
	i := s.participantIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrParticipantNotFound, id)
	}

	s.participants = append(s.participants[:i:i], s.participants[i+1:]...)

	for j := range s.items {
		s.items[j].AssignedTo = without(s.items[j].AssignedTo, id)
	}

	if s.payerID == id {
		s.payerID = ""
		if len(s.participants) > 0 {
			s.payerID = s.participants[0].ID
		}
	}
	return nil
}

// PayerID returns the designated payer's ID, or "" when unset.
func (s *Session) PayerID() string { return s.payerID }

// Payer returns the designated payer.
func (s *Session) Payer() (models.Participant, error) {
	if s.payerID == "" {
		return models.Participant{}, ErrUnresolvedPayer
	}
	p, err := s.Participant(s.payerID)
	if err != nil {
		return models.Participant{}, fmt.Errorf("%w: %v", ErrUnresolvedPayer, err)
	}
	return p, nil
}

// SetPayer designates the participant who fronted the bill.
// An empty id clears the designation.
func (s *Session) SetPayer(id string) error {
	if id == "" {
		s.payerID = ""
		return nil
	}
	if s.participantIndex(id) < 0 {
		return fmt.Errorf("%w: %s", ErrParticipantNotFound, id)
	}
	s.payerID = id
	return nil
}

func (s *Session) participantIndex(id string) int {
	for i, p := range s.participants {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// without returns ids minus every occurrence of id, in a new slice.
func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
