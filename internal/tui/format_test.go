package tui

import "testing"

func TestFormatClock(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{seconds: 0, want: "00:00"},
		{seconds: 59, want: "00:59"},
		{seconds: 60, want: "01:00"},
		{seconds: 1500, want: "25:00"},
		{seconds: 3599, want: "59:59"},
		{seconds: 3600, want: "1:00:00"},
		{seconds: 7322, want: "2:02:02"},
		{seconds: -5, want: "00:00"},
	}
	for _, tc := range cases {
		if got := formatClock(tc.seconds); got != tc.want {
			t.Errorf("formatClock(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
