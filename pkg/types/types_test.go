package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "09:00", want: "09:00"},
		{in: "9:30", want: "09:30"},
		{in: "14:00:00", want: "14:00"},
		{in: " 23:59 ", want: "23:59"},
		{in: "24:00", wantErr: true},
		{in: "10:60", wantErr: true},
		{in: "10:5", wantErr: true},
		{in: "10:00:30", wantErr: true},
		{in: "ten", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := NewTimeStringFromString(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	nine := MustTimeString("09:00")
	ten := MustTimeString("10:00")

	assert.True(t, nine.IsBefore(ten))
	assert.True(t, ten.IsAfter(nine))
	assert.False(t, nine.IsBefore(nine))

	next, err := nine.AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, ten, next)

	_, err = MustTimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_JSON(t *testing.T) {
	var payload struct {
		Slot TimeString `json:"slot"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"slot":"9:15"}`), &payload))
	assert.Equal(t, "09:15", payload.Slot.String())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"slot":"09:15"}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"slot":null}`), &payload))
	assert.True(t, payload.Slot.IsZero())
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	at := MustTimeString("10:00").On(MustDate("2025-03-10"), loc)

	assert.Equal(t, time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC), at.UTC())
}

func TestParseDateIn(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	cases := []struct {
		name string
		in   string
		loc  *time.Location
		want string
	}{
		{name: "literal", in: "2025-03-10", loc: berlin, want: "2025-03-10"},
		{name: "utc midnight stays in berlin", in: "2025-03-10T00:00:00Z", loc: berlin, want: "2025-03-10"},
		{name: "utc late evening moves forward", in: "2025-03-09T23:30:00.000Z", loc: berlin, want: "2025-03-10"},
		{name: "offset", in: "2025-03-10T00:00:00-05:00", loc: time.UTC, want: "2025-03-10"},
		{name: "local timestamp", in: "2025-03-10T08:00:00", loc: berlin, want: "2025-03-10"},
		{name: "space separated", in: "2025-03-10 08:00:00", loc: berlin, want: "2025-03-10"},
		{name: "slashes", in: "2025/03/10", loc: berlin, want: "2025-03-10"},
		{name: "browser toString", in: "Mon Mar 10 2025 00:00:00 GMT+0100 (Central European Standard Time)", loc: berlin, want: "2025-03-10"},
		{name: "rfc1123", in: "Mon, 10 Mar 2025 00:00:00 GMT", loc: time.UTC, want: "2025-03-10"},
		{name: "nil location", in: "2025-03-10T12:00:00Z", loc: nil, want: "2025-03-10"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDateIn(tc.in, tc.loc)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}

	_, err = ParseDateIn("not a date", berlin)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDateIn("   ", berlin)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDate_Compare(t *testing.T) {
	a := MustDate("2025-03-05")
	b := MustDate("2025-03-10")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(DateOf(2025, time.March, 5)))
	assert.Equal(t, MustDate("2025-04-01"), MustDate("2025-03-31").AddDays(1))
	assert.True(t, Date{}.IsZero())
	assert.Equal(t, "", Date{}.String())
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		Date Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-03-10"}`), &payload))
	assert.Equal(t, MustDate("2025-03-10"), payload.Date)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-03-10"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"date":"10.03.2025"}`), &payload))
}
