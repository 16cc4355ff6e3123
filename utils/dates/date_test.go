package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStringToDateRoundTrip(t *testing.T) {
	parsed, err := StringToDate("2020-03-01", DateFormat)
	require.NoError(t, err)
	require.Equal(t, "2020-03-01", DateToString(parsed, DateFormat))

	_, err = StringToDate("03/01/2020", DateFormat)
	require.Error(t, err)
}

func TestParseTwitterDate(t *testing.T) {
	parsed, err := ParseTwitterDate("Wed Oct 10 20:19:24 +0000 2018")
	require.NoError(t, err)
	require.Equal(t, 2018, parsed.Year())
	require.Equal(t, time.October, parsed.Month())
	require.Equal(t, time.UTC, parsed.Location())

	_, err = ParseTwitterDate("not a date")
	require.Error(t, err)
}
