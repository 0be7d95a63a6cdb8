package doc

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ParseCardDate parses the authored "YYYY/MM/DD" or "YYYY/MM/DD HH:MM"
// value. The month is one-based. The returned flag reports whether a time
// component was present.
func ParseCardDate(value string) (t time.Time, withTime bool, err error) {
	datePart, timePart, hasTime := strings.Cut(value, " ")
	d := strings.Split(datePart, "/")
	if len(d) != 3 {
		return time.Time{}, false, fmt.Errorf("malformed date %q", value)
	}
	year, err1 := strconv.Atoi(d[0])
	month, err2 := strconv.Atoi(d[1])
	day, err3 := strconv.Atoi(d[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false, fmt.Errorf("malformed date %q", value)
	}
	var hour, minute int
	if hasTime {
		hh, mm, ok := strings.Cut(timePart, ":")
		if !ok {
			return time.Time{}, false, fmt.Errorf("malformed time in %q", value)
		}
		hour, err1 = strconv.Atoi(hh)
		minute, err2 = strconv.Atoi(mm)
		if err1 != nil || err2 != nil {
			return time.Time{}, false, fmt.Errorf("malformed time in %q", value)
		}
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local), hasTime, nil
}

// formatCardDate localizes an authored date value for display. Unparsable
// input is shown as authored rather than dropped.
func (n *Normalizer) formatCardDate(value string) string {
	t, withTime, err := ParseCardDate(value)
	if err != nil {
		n.Log.Debug("Keeping unparsable card date as authored", zap.String("value", value), zap.Error(err))
		return value
	}
	if n.Localizer == nil {
		if withTime {
			return t.Format("January 2, 2006 15:04")
		}
		return t.Format("January 2, 2006")
	}
	return n.Localizer.FormatDate(t, withTime)
}
