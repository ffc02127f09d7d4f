package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeStringValidate(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59", "24:00"}
	for _, s := range valid {
		assert.NoError(t, TimeString(s).Validate(), s)
	}

	invalid := []string{"", "9:00", "09:60", "24:01", "25:00", "0900", "09:0", "ab:cd", "09:00:00"}
	for _, s := range invalid {
		assert.ErrorIs(t, TimeString(s).Validate(), ErrInvalidTimeString, s)
	}
}

func TestTimeStringMinutes(t *testing.T) {
	m, err := TimeString("09:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	m, err = TimeString("24:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 1440, m)
}

func TestTimeStringComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("17:00"))
	assert.False(t, TimeString("17:00").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("17:00").IsAfter("09:00"))
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts, err := TimeString("09:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), ts)

	ts, err = TimeString("23:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), ts)

	_, err = TimeString("23:30").AddMinutes(45)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeStringOnDate(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	got, err := TimeString("10:15").OnDate(date, loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 2, 10, 15, 0, 0, loc), got)
}

func TestTimeStringScan(t *testing.T) {
	t.Run("text column", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("09:30"))
		assert.Equal(t, TimeString("09:30"), ts)
	})

	t.Run("postgres time column", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("09:30:00"))
		assert.Equal(t, TimeString("09:30"), ts)
	})

	t.Run("bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("17:00")))
		assert.Equal(t, TimeString("17:00"), ts)
	})

	t.Run("nil resets value", func(t *testing.T) {
		ts := TimeString("09:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("garbage rejected", func(t *testing.T) {
		var ts TimeString
		assert.Error(t, ts.Scan("later"))
	})
}

func TestTimeStringValue(t *testing.T) {
	v, err := TimeString("09:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30", v)

	_, err = TimeString("9am").Value()
	assert.Error(t, err)
}
