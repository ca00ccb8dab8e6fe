package fmstats

import (
	"time"

	"github.com/araddon/dateparse"
)

// DateParser turns the free-form timestamps found in the ledger into absolute times.
type DateParser interface {
	Parse(s string) (time.Time, error)
}

// DateParserFunc adapts a function to the DateParser interface.
type DateParserFunc func(s string) (time.Time, error)

func (f DateParserFunc) Parse(s string) (time.Time, error) { return f(s) }

// FuzzyDates is the default DateParser. It accepts most of the common timestamp
// layouts and reads timestamps without zone as UTC.
var FuzzyDates DateParser = DateParserFunc(func(s string) (time.Time, error) {
	return dateparse.ParseIn(s, time.UTC)
})

// TimestampFormat is the layout used to display manifest timestamps.
const TimestampFormat = "Mon, 2 Jan 2006 15:04:05 MST"
