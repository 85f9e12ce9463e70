package normalize

import (
	"strconv"
	"time"

	"github.com/jimezsa/jobclip/internal/patterns"
)

// DateLayout is the tracker's date format.
const DateLayout = "01/02/2006"

// RelativeDate turns "<N> <unit> ago" into the MM/DD/YYYY date that far
// before now. It returns "" when phrase has no recognizable duration.
func RelativeDate(phrase string, now time.Time) string {
	return RelativeDateWith(patterns.Default(), phrase, now)
}

// RelativeDateWith is RelativeDate against an explicit library.
func RelativeDateWith(lib *patterns.Library, phrase string, now time.Time) string {
	m := lib.RelativeDate().FindStringSubmatch(phrase)
	if m == nil {
		return ""
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return ""
	}
	unit, ok := lib.Unit(m[2])
	if !ok {
		return ""
	}
	return Ago(now, n, unit).Format(DateLayout)
}

// Ago subtracts n units from now. Whole-day units move by calendar days so a
// DST shift never changes the resulting date.
func Ago(now time.Time, n int, unit time.Duration) time.Time {
	const day = 24 * time.Hour
	if unit >= day && unit%day == 0 {
		return now.AddDate(0, 0, -n*int(unit/day))
	}
	return now.Add(-time.Duration(n) * unit)
}

// IsDate reports whether s is a MM/DD/YYYY date.
func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
