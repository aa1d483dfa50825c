package common

import "time"

// ISO8601Format keeps nanoseconds, so `Created` of transactions made in
// the same second still differ.
const ISO8601Format string = "2006-01-02T15:04:05.000000000Z07:00"

func FormatISO8601(t time.Time) string {
	return t.Format(ISO8601Format)
}

func NowISO8601() string {
	return FormatISO8601(time.Now())
}

func ParseISO8601(s string) (time.Time, error) {
	return time.Parse(ISO8601Format, s)
}

// UnixToISO8601 formats ledger time, seconds since epoch, in UTC.
func UnixToISO8601(sec uint64) string {
	return FormatISO8601(time.Unix(int64(sec), 0).UTC())
}
