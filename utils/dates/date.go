package dates

import "time"

const (
	DateFormat = "2006-01-02"

	// Format of V1 tweet created_at strings.
	TwitterV1Format = "Mon Jan 02 15:04:05 -0700 2006"
)

func StringToDate(from string, dateFormat string) (time.Time, error) {
	return time.Parse(dateFormat, from)
}

func DateToString(from time.Time, dateFormat string) string {
	return from.Format(dateFormat)
}

// ParseTwitterDate converts a V1 created_at string to UTC.
func ParseTwitterDate(created string) (time.Time, error) {
	t, err := time.Parse(TwitterV1Format, created)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
