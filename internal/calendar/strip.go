package calendar

const (
	// DefaultRadius is the number of days shown on each side of the selection.
	DefaultRadius = 30
	// RecenterRadius is used when a selection drifts close to the strip edge.
	RecenterRadius = 15
	edgeMargin     = 3
)

// Strip is a horizontal run of days around a selected day.
type Strip struct {
	Selected string
	Days     []string
}

// NewStrip builds a strip of radius days on each side of selected.
func NewStrip(selected string, radius int) (*Strip, error) {
	days, err := Window(selected, radius)
	if err != nil {
		return nil, err
	}
	return &Strip{Selected: selected, Days: days}, nil
}

// Index returns the position of the selected day, or -1.
func (s *Strip) Index() int {
	for i, day := range s.Days {
		if day == s.Selected {
			return i
		}
	}
	return -1
}

// Select moves the selection to day. When day is outside the strip or within
// three slots of either edge the strip is rebuilt around it with
// RecenterRadius days per side.
func (s *Strip) Select(day string) error {
	if _, err := Parse(day); err != nil {
		return err
	}
	s.Selected = day

	idx := s.Index()
	if idx >= edgeMargin && idx <= len(s.Days)-1-edgeMargin {
		return nil
	}
	days, err := Window(day, RecenterRadius)
	if err != nil {
		return err
	}
	s.Days = days
	return nil
}
