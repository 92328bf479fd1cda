package timehelper

import "time"

func GetTodaysDateString() string {
	// Format the date to 'YYYY-MM-DD'
	return time.Now().Format("2006-01-02")
}

// MonthKey formats a time as the 'YYYY-MM' key used by payment status maps.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// Timestamp formats a time the way the shared document stores timestamps.
// Millisecond precision is fixed-width so the encoded strings sort in
// chronological order.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
