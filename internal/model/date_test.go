package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.March, Day: 1}, d)
	assert.Equal(t, "2024-03-01", d.String())
}

func TestParseDate_Invalid(t *testing.T) {
	tests := []string{"", "2024-02-30", "2024/03/01", "yesterday", "2024-3-1", "2024-03-01T00:00:00Z"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDate(input)
			assert.Error(t, err)
		})
	}
}

func TestDate_DaysUntil(t *testing.T) {
	a := MustParseDate("2024-02-01")
	b := MustParseDate("2024-03-01")

	assert.Equal(t, 29, a.DaysUntil(b), "2024 is a leap year")
	assert.Equal(t, -29, b.DaysUntil(a))
	assert.Equal(t, 0, a.DaysUntil(a))
}

func TestDate_DaysUntil_LongSpans(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"1700-01-01", "2024-01-01", 118338},
		{"0001-01-01", "9999-12-31", 3652058},
		{"1724-01-01", "2024-01-01", 109573},
	}
	for _, tt := range tests {
		a, b := MustParseDate(tt.from), MustParseDate(tt.to)
		assert.Equal(t, tt.want, a.DaysUntil(b), "%s..%s", tt.from, tt.to)
		assert.Equal(t, -tt.want, b.DaysUntil(a), "%s..%s", tt.to, tt.from)
		assert.Equal(t, b, a.AddDays(tt.want))
	}
}

func TestDate_DaysUntil_AcrossDST(t *testing.T) {
	// Arithmetic is done in UTC, so a spring-forward weekend is still 1 day.
	a := MustParseDate("2024-03-30")
	b := MustParseDate("2024-03-31")
	assert.Equal(t, 1, a.DaysUntil(b))
}

func TestDate_AddDays(t *testing.T) {
	assert.Equal(t, MustParseDate("2024-03-30"), MustParseDate("2024-03-01").AddDays(29))
	assert.Equal(t, MustParseDate("2023-12-31"), MustParseDate("2024-01-01").AddDays(-1))
}

func TestDate_Compare(t *testing.T) {
	a := MustParseDate("2024-01-01")
	b := MustParseDate("2024-01-02")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(a))
}

func TestDate_DateOfUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	ts := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC).In(loc)
	assert.Equal(t, MustParseDate("2024-03-02"), DateOf(ts))
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		D Date `json:"d"`
	}

	data, err := json.Marshal(wrapper{D: MustParseDate("2024-03-30")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-03-30"}`, string(data))

	var back wrapper
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, MustParseDate("2024-03-30"), back.D)
}

func TestDate_JSONZero(t *testing.T) {
	type wrapper struct {
		D Date `json:"d"`
	}

	data, err := json.Marshal(wrapper{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":""}`, string(data))

	var back wrapper
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.D.IsZero())
}

func TestDate_JSONRejectsGarbage(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`"not-a-date"`), &d)
	assert.Error(t, err)
}
