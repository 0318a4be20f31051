package availability

import (
	"github.com/google/uuid"
)

// Slot is a materialized (therapist, date, start) row carrying the booked flag.
type Slot struct {
	id          uuid.UUID
	therapistID uuid.UUID
	date        Date
	start       ClockTime
	end         ClockTime
	booked      bool
}

func ReconstructSlot(id, therapistID uuid.UUID, date Date, start, end ClockTime, booked bool) *Slot {
	return &Slot{
		id:          id,
		therapistID: therapistID,
		date:        date,
		start:       start,
		end:         end,
		booked:      booked,
	}
}

func (s *Slot) ID() uuid.UUID          { return s.id }
func (s *Slot) TherapistID() uuid.UUID { return s.therapistID }
func (s *Slot) Date() Date             { return s.date }
func (s *Slot) Start() ClockTime       { return s.start }
func (s *Slot) End() ClockTime         { return s.end }
func (s *Slot) IsBooked() bool         { return s.booked }
