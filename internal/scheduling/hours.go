package scheduling

import (
	"errors"
	"fmt"
	"slices"
)

// Hours is the clinic opening window and room set. The slot grid runs from
// Open to Close inclusive, every Step minutes.
type Hours struct {
	Open  Minute
	Close Minute
	Step  int
	Rooms []string
}

func DefaultHours() Hours {
	return Hours{
		Open:  8 * 60,
		Close: 18 * 60,
		Step:  30,
		Rooms: []string{"1", "2"},
	}
}

func (h Hours) Validate() error {
	if h.Step <= 0 {
		return fmt.Errorf("slot step must be positive, got %d", h.Step)
	}
	if h.Open < 0 || h.Close < h.Open || h.Close >= 24*60 {
		return fmt.Errorf("invalid opening window %s-%s", h.Open, h.Close)
	}
	if len(h.Rooms) == 0 {
		return errors.New("at least one room is required")
	}
	return nil
}

func (h Hours) HasRoom(room string) bool {
	return room != "" && slices.Contains(h.Rooms, room)
}

// OnGrid reports whether m is one of the candidate start times.
func (h Hours) OnGrid(m Minute) bool {
	if h.Step <= 0 || m < h.Open || m > h.Close {
		return false
	}
	return int(m-h.Open)%h.Step == 0
}

func (h Hours) grid() []Minute {
	if h.Step <= 0 || h.Close < h.Open {
		return nil
	}
	out := make([]Minute, 0, int(h.Close-h.Open)/h.Step+1)
	for m := h.Open; m <= h.Close; m = m.Add(h.Step) {
		out = append(out, m)
	}
	return out
}
