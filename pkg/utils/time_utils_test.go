package utils

import (
	"testing"
	"time"
)

func TestDayKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 2024-03-10 02:00 in UTC+9 is still 2024-03-09 in UTC
	local := time.Date(2024, 3, 10, 2, 0, 0, 0, loc)
	if got := DayKey(local); got != "2024-03-09" {
		t.Errorf("Expected 2024-03-09, got %s", got)
	}
}

func TestStartOfUTCDay(t *testing.T) {
	in := time.Date(2024, 3, 9, 23, 59, 59, 0, time.UTC)
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	if got := StartOfUTCDay(in); !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestParseTimeParam(t *testing.T) {
	testCases := []struct {
		in      string
		want    *time.Time
		wantErr bool
	}{
		{in: ""},
		{in: "2024-03-09", want: ptr(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC))},
		{in: "2024-03-09T10:00:00+02:00", want: ptr(time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC))},
		{in: "yesterday", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTimeParam(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatal("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if (got == nil) != (tc.want == nil) || (got != nil && !got.Equal(*tc.want)) {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }
