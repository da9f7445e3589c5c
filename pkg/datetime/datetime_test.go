package datetime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDate_JSON(t *testing.T) {
	t.Parallel()

	d := NewDate(2025, time.March, 1)
	data, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, `"2025-03-01"`, string(data))

	var parsed Date
	assert.NoError(t, json.Unmarshal([]byte(`"2025-03-01"`), &parsed))
	assert.Equal(t, d, parsed)

	var zero Date
	data, err = json.Marshal(zero)
	assert.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestDate_UnmarshalJSON_RFC3339Fallback(t *testing.T) {
	t.Parallel()

	var d Date
	assert.NoError(t, json.Unmarshal([]byte(`"2025-03-01T15:04:05Z"`), &d))
	assert.Equal(t, "2025-03-01", d.String())
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2024-02-29")
	assert.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.February, 29), d)

	_, err = ParseDate("29.02.2024")
	assert.Error(t, err)
}

func TestStartOfMonth(t *testing.T) {
	t.Parallel()

	got := StartOfMonth(time.Date(2025, time.March, 17, 13, 45, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestLastOfMonth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "thirty-one days",
			in:   time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "leap february",
			in:   time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "plain february",
			in:   time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, LastOfMonth(tt.in))
		})
	}
}

func TestMinDate(t *testing.T) {
	t.Parallel()

	early := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, early, MinDate(early, late))
	assert.Equal(t, early, MinDate(late, early))
	assert.Equal(t, early, MinDate(early, early))
}

func TestDaysBetween(t *testing.T) {
	t.Parallel()

	a := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, time.April, 11, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 10, DaysBetween(a, b))
	assert.Equal(t, -10, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))

	// Time-of-day is discarded before the subtraction.
	noon := time.Date(2024, time.April, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, 10, DaysBetween(noon, b))
}
