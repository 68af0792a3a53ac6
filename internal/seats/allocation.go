package seats

import (
	"errors"
	"fmt"
	"sort"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
	StatusSelected  Status = "selected"
	StatusDriver    Status = "driver"
)

type State string

const (
	StateClosed    State = "closed"
	StateOpen      State = "open"
	StateConfirmed State = "confirmed"
)

const DriverSeat = 0

type Seat struct {
	Number int    `json:"number"`
	Status Status `json:"status"`
}

var (
	ErrNotOpen           = errors.New("seat selection is not open")
	ErrUnknownSeat       = errors.New("seat does not exist")
	ErrNotSelectable     = errors.New("seat is not selectable")
	ErrLimitReached      = errors.New("seat limit reached")
	ErrSeatCountMismatch = errors.New("seat count does not match passengers")
	ErrInvalidPassengers = errors.New("passenger count must be positive")
	ErrCorruptAllocation = errors.New("seat allocation is inconsistent")
)

// LimitError is returned when a tap would select more seats than passengers.
type LimitError struct {
	Passengers int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("You can only select %d seat(s) for %d passenger(s)", e.Passengers, e.Passengers)
}

func (e *LimitError) Is(target error) bool {
	return target == ErrLimitReached
}

// CountError is returned when confirming with the wrong number of seats.
type CountError struct {
	Passengers int
	Selected   int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("Please select exactly %d seat(s) for %d passenger(s)", e.Passengers, e.Passengers)
}

func (e *CountError) Is(target error) bool {
	return target == ErrSeatCountMismatch
}

// Allocation is the seat selection sub-flow for one booking. It is stored in
// the session between requests, so all state lives in exported fields.
type Allocation struct {
	State      State  `json:"state"`
	Passengers int    `json:"passengers"`
	Seats      []Seat `json:"seats"`
	Confirmed  []int  `json:"confirmed,omitempty"`
}

func NewAllocation() *Allocation {
	return &Allocation{State: StateClosed}
}

// Open shows the seat map for passengers travellers. Seats confirmed in an
// earlier pass are preselected when they still fit. The earlier confirmation
// is kept until a new one replaces it, so dismissing the map and opening it
// again shows the same preselection.
func (a *Allocation) Open(passengers int, layout []Seat) error {
	if passengers < 1 {
		return ErrInvalidPassengers
	}

	seats := make([]Seat, len(layout))
	copy(seats, layout)

	if len(a.Confirmed) > 0 && len(a.Confirmed) <= passengers {
		keep := make(map[int]bool, len(a.Confirmed))
		for _, n := range a.Confirmed {
			keep[n] = true
		}
		for i := range seats {
			if keep[seats[i].Number] && seats[i].Status == StatusAvailable {
				seats[i].Status = StatusSelected
			}
		}
	}

	a.State = StateOpen
	a.Passengers = passengers
	a.Seats = seats
	return nil
}

// Toggle applies a tap on seat number n.
func (a *Allocation) Toggle(n int) error {
	if a.State != StateOpen {
		return ErrNotOpen
	}

	idx := a.indexOf(n)
	if idx < 0 {
		return ErrUnknownSeat
	}

	switch a.Seats[idx].Status {
	case StatusSelected:
		a.Seats[idx].Status = StatusAvailable
		return nil
	case StatusAvailable:
		if a.selectedCount() >= a.Passengers {
			return &LimitError{Passengers: a.Passengers}
		}
		a.Seats[idx].Status = StatusSelected
		return nil
	default:
		return ErrNotSelectable
	}
}

// Confirm closes the sub-flow and returns the chosen seats in ascending order.
// On a count mismatch the allocation stays open and unchanged.
func (a *Allocation) Confirm() ([]int, error) {
	if a.State != StateOpen {
		return nil, ErrNotOpen
	}

	selected := a.Selected()
	if len(selected) != a.Passengers {
		return nil, &CountError{Passengers: a.Passengers, Selected: len(selected)}
	}

	a.State = StateConfirmed
	a.Confirmed = selected
	return selected, nil
}

// Close dismisses the seat map without confirming.
func (a *Allocation) Close() {
	if a.State == StateOpen {
		a.State = StateClosed
		a.Seats = nil
	}
}

func (a *Allocation) Selected() []int {
	var out []int
	for _, s := range a.Seats {
		if s.Status == StatusSelected {
			out = append(out, s.Number)
		}
	}
	sort.Ints(out)
	return out
}

func (a *Allocation) Validate() error {
	switch a.State {
	case StateClosed:
		return nil
	case StateOpen:
		if a.Passengers < 1 || a.selectedCount() > a.Passengers {
			return ErrCorruptAllocation
		}
		return nil
	case StateConfirmed:
		if len(a.Confirmed) != a.Passengers {
			return ErrCorruptAllocation
		}
		return nil
	default:
		return ErrCorruptAllocation
	}
}

func (a *Allocation) indexOf(n int) int {
	for i, s := range a.Seats {
		if s.Number == n {
			return i
		}
	}
	return -1
}

func (a *Allocation) selectedCount() int {
	count := 0
	for _, s := range a.Seats {
		if s.Status == StatusSelected {
			count++
		}
	}
	return count
}
