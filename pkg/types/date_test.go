package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-07-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-07-01", d.String())

	_, err = ParseDate("01.07.2026")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestNewDate_TruncatesTime(t *testing.T) {
	// Компонент времени отбрасывается
	d := NewDate(time.Date(2026, 7, 1, 23, 59, 58, 0, time.UTC))
	assert.Equal(t, "2026-07-01", d.String())
}

func TestDate_Comparisons(t *testing.T) {
	a, _ := ParseDate("2026-07-01")
	b, _ := ParseDate("2026-07-05")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a))
}

func TestDate_AddDaysAndDaysUntil(t *testing.T) {
	a, _ := ParseDate("2026-07-01")

	assert.Equal(t, "2026-07-05", a.AddDays(4).String())
	assert.Equal(t, 4, a.DaysUntil(a.AddDays(4)))
	assert.Equal(t, -4, a.AddDays(4).DaysUntil(a))

	// Переход через границу месяца
	assert.Equal(t, "2026-08-01", a.AddDays(31).String())
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d, _ := ParseDate("2026-07-01")

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-07-01"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, d.Equal(parsed))
}

func TestDate_UnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"tomorrow"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`42`), &d))
}

func TestDate_SQLValueAndScan(t *testing.T) {
	d, _ := ParseDate("2026-07-01")

	value, err := d.Value()
	require.NoError(t, err)

	var scanned Date
	require.NoError(t, scanned.Scan(value))
	assert.True(t, d.Equal(scanned))
}
