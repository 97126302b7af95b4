package core

import (
	"errors"
	"fmt"
	"strings"
)

// MonthKey identifies one of the twelve fiscal months. The fiscal year
// runs June through May.
type MonthKey string

const (
	June      MonthKey = "june"
	July      MonthKey = "july"
	August    MonthKey = "august"
	September MonthKey = "september"
	October   MonthKey = "october"
	November  MonthKey = "november"
	December  MonthKey = "december"
	January   MonthKey = "january"
	February  MonthKey = "february"
	March     MonthKey = "march"
	April     MonthKey = "april"
	May       MonthKey = "may"
)

// FiscalMonths is the fixed display and pro-ration order. It never changes
// at runtime; every component that iterates months takes it from here.
var FiscalMonths = []MonthKey{
	June, July, August, September, October, November,
	December, January, February, March, April, May,
}

var monthByAbbrev = map[string]MonthKey{
	"JUN": June,
	"JUL": July,
	"AUG": August,
	"SEP": September,
	"OCT": October,
	"NOV": November,
	"DEC": December,
	"JAN": January,
	"FEB": February,
	"MAR": March,
	"APR": April,
	"MAY": May,
}

var ErrUnknownMonth = errors.New("unknown fiscal month abbreviation")

// MonthFromAbbrev maps a three-letter abbreviation (JUN..MAY, any case)
// to its MonthKey.
func MonthFromAbbrev(abbrev string) (MonthKey, bool) {
	m, ok := monthByAbbrev[strings.ToUpper(strings.TrimSpace(abbrev))]
	return m, ok
}

// ParseFiscalMonth extracts the month from a fiscal month label such as
// "FY25-JUN". The trailing abbreviation after the last dash is what counts;
// the fiscal year prefix is ignored.
func ParseFiscalMonth(label string) (MonthKey, error) {
	label = strings.TrimSpace(label)
	abbrev := label
	if i := strings.LastIndex(label, "-"); i >= 0 {
		abbrev = label[i+1:]
	}
	m, ok := MonthFromAbbrev(abbrev)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMonth, label)
	}
	return m, nil
}

// Valid reports whether m is one of the twelve fiscal months.
func (m MonthKey) Valid() bool {
	for _, k := range FiscalMonths {
		if k == m {
			return true
		}
	}
	return false
}
