package holiday

import "time"

const DateKeyLayout = "02-01-2006"

type Holiday struct {
	Date  time.Time
	Label string
}

// Key returns the DD-MM-YYYY key the holiday is stored under.
func (h Holiday) Key() string {
	return h.Date.Format(DateKeyLayout)
}

// Set is the membership view of the holiday list used by attendance grids.
type Set map[string]string

func NewSet(holidays []Holiday) Set {
	s := make(Set, len(holidays))
	for _, h := range holidays {
		s[h.Key()] = h.Label
	}
	return s
}

func (s Set) Contains(dateKey string) bool {
	_, ok := s[dateKey]
	return ok
}
