package view

import (
	"errors"
	"fmt"
)

// Kind identifies a user intent delivered by a surface.
type Kind int

const (
	DayClicked Kind = iota + 1
	PrevYear
	NextYear
	PrevMonth
	NextMonth
	Today
	CloseModal
	SaveEvent
	OutsideModalClicked
)

// ErrUnknownIntent is returned by ParseKind for names it does not know.
var ErrUnknownIntent = errors.New("unknown intent")

var kindNames = map[Kind]string{
	DayClicked:          "day",
	PrevYear:            "prev-year",
	NextYear:            "next-year",
	PrevMonth:           "prev-month",
	NextMonth:           "next-month",
	Today:               "today",
	CloseModal:          "close",
	SaveEvent:           "save",
	OutsideModalClicked: "outside",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a wire name ("next-month", "save", ...) to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownIntent, s)
}

// Intent is one user action. Day is used by DayClicked; Title and
// Description by SaveEvent.
type Intent struct {
	Kind        Kind
	Day         int
	Title       string
	Description string
}
