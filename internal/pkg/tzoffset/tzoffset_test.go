package tzoffset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveKnownZones(t *testing.T) {
	cases := []struct {
		name  string
		zone  string
		date  string
		clock string
		want  float64
	}{
		{name: "kolkata", zone: "Asia/Kolkata", date: "1990-05-17", clock: "06:45", want: 5.5},
		{name: "kolkata other date", zone: "Asia/Kolkata", date: "2024-12-31", clock: "23:59", want: 5.5},
		{name: "kathmandu", zone: "Asia/Kathmandu", date: "2020-01-01", clock: "12:00", want: 5.75},
		{name: "new york winter", zone: "America/New_York", date: "2023-01-15", clock: "10:00", want: -5},
		{name: "new york summer", zone: "America/New_York", date: "2023-07-15", clock: "10:00", want: -4},
		{name: "utc", zone: "UTC", date: "2023-07-15", clock: "10:00", want: 0},
		{name: "gmt string", zone: "GMT+5:30", date: "2020-01-01", clock: "10:00", want: 5.5},
		{name: "gmt string negative", zone: "GMT-3", date: "2020-01-01", clock: "10:00", want: -3},
		{name: "seconds in clock", zone: "Asia/Tokyo", date: "2001-02-03", clock: "04:05:06", want: 9},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(tc.zone, tc.date, tc.clock)
			require.NoError(t, err)
			require.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestResolveErrors(t *testing.T) {
	_, err := Resolve("  ", "2020-01-01", "10:00")
	require.ErrorIs(t, err, ErrEmptyZone)

	_, err = Resolve("Mars/Olympus_Mons", "2020-01-01", "10:00")
	require.ErrorIs(t, err, ErrUnknownZone)

	_, err = Resolve("Asia/Kolkata", "01/02/2020", "10:00")
	require.ErrorIs(t, err, ErrBadDateTime)

	_, err = Resolve("GMT+abc", "2020-01-01", "10:00")
	require.ErrorIs(t, err, ErrBadOffsetString)

	_, err = Resolve("GMT+3", "not-a-date", "10:00")
	require.ErrorIs(t, err, ErrBadDateTime)
}

func TestResolveOrDefaultFallsBackToIST(t *testing.T) {
	inputs := [][3]string{
		{"", "2020-01-01", "10:00"},
		{"Asia/Kolkata", "not-a-date", "10:00"},
		{"Asia/Kolkata", "2020-01-01", "25:61"},
		{"GMT", "2020-01-01", "10:00"},
		{"GMT+", "2020-01-01", "10:00"},
		{"GMT+3", "not-a-date", "10:00"},
		{"GMT+3", "not-a-date", "99:99"},
		{"GMT+5:30", "2020-01-01", "25:61"},
		{"Nowhere/Zone", "2020-01-01", "10:00"},
	}

	for _, in := range inputs {
		got, ok := ResolveOrDefault(in[0], in[1], in[2])
		require.False(t, ok, "input %v", in)
		require.Equal(t, 5.5, got, "input %v", in)
	}
}

func TestParseGMTOffset(t *testing.T) {
	cases := map[string]float64{
		"GMT+5":     5,
		"GMT+5:30":  5.5,
		"GMT-3:30":  -3.5,
		"GMT+05:45": 5.75,
		"GMT+0530":  5.5,
		"GMT-10":    -10,
	}
	for in, want := range cases {
		got, err := ParseGMTOffset(in)
		require.NoError(t, err, in)
		require.InDelta(t, want, got, 1e-9, in)
	}

	for _, bad := range []string{"", "UTC+5", "GMT+5:75", "GMT+15", "+05:30", "GMT 5"} {
		_, err := ParseGMTOffset(bad)
		require.ErrorIs(t, err, ErrBadOffsetString, bad)
	}
}

func TestValid(t *testing.T) {
	require.True(t, Valid(5.5))
	require.True(t, Valid(-12))
	require.False(t, Valid(math.NaN()))
	require.False(t, Valid(math.Inf(1)))
	require.False(t, Valid(15))
}
