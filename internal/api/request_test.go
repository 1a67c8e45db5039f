package api

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokyabdulrahman/prayertime/internal/prayer"
)

var queryNow = time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

func TestParseTimesQuery_Defaults(t *testing.T) {
	req, err := ParseTimesQuery(url.Values{"latitude": {"51.5"}, "longitude": {"-0.12"}}, queryNow)
	require.NoError(t, err)

	assert.Equal(t, 51.5, req.Latitude)
	assert.Equal(t, -0.12, req.Longitude)
	assert.Equal(t, "2024-05-10", req.Date.Format("2006-01-02"))
	assert.Equal(t, prayer.DefaultSettings(), req.Settings)
	assert.Nil(t, req.UTCOffset)
	assert.Empty(t, req.Timezone)
}

func TestParseTimesQuery_DefaultDateInTargetZone(t *testing.T) {
	// queryNow is 15:00 UTC, already tomorrow from +9 eastwards.
	tests := []struct {
		name  string
		query url.Values
		want  string
	}{
		{"offset ahead", url.Values{"utc_offset": {"12"}}, "2024-05-11"},
		{"named zone ahead", url.Values{"timezone": {"Pacific/Auckland"}}, "2024-05-11"},
		{"guessed from longitude", url.Values{"longitude": {"151.2"}}, "2024-05-11"},
		{"zone behind", url.Values{"utc_offset": {"-5"}}, "2024-05-10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := url.Values{"latitude": {"0"}, "longitude": {"0"}}
			for k, v := range tt.query {
				q[k] = v
			}
			req, err := ParseTimesQuery(q, queryNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Date.Format("2006-01-02"))
		})
	}

	_, err := ParseTimesQuery(url.Values{"latitude": {"0"}, "longitude": {"0"}, "timezone": {"Mars/Olympus"}}, queryNow)
	assert.ErrorIs(t, err, prayer.ErrInvalidInput)
}

func TestParseTimesQuery_RoundTrip(t *testing.T) {
	fajr, isha, offset := -18.0, -17.0, 5.5
	want := TimesRequest{
		Date:      time.Date(2023, 12, 21, 0, 0, 0, 0, time.UTC),
		Latitude:  28.6139,
		Longitude: 77.209,
		Timezone:  "Asia/Kolkata",
		UTCOffset: &offset,
		Settings: prayer.Settings{
			MethodID:  1,
			School:    prayer.Hanafi,
			FajrAngle: &fajr,
			IshaAngle: &isha,
		},
	}

	got, err := ParseTimesQuery(want.Values(), queryNow)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParseTimesQuery_Errors(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr error
	}{
		{"missing latitude", "longitude=1", prayer.ErrInvalidInput},
		{"missing longitude", "latitude=1", prayer.ErrInvalidInput},
		{"bad latitude", "latitude=north&longitude=1", prayer.ErrInvalidInput},
		{"bad offset", "latitude=1&longitude=1&utc_offset=three", prayer.ErrInvalidInput},
		{"bad method", "latitude=1&longitude=1&method=isna", prayer.ErrInvalidInput},
		{"bad school", "latitude=1&longitude=1&school=maliki", prayer.ErrInvalidInput},
		{"bad angle", "latitude=1&longitude=1&fajr_angle=deep", prayer.ErrInvalidInput},
		{"bad date format", "latitude=1&longitude=1&date=21-06-2023", prayer.ErrInvalidDate},
		{"impossible date", "latitude=1&longitude=1&date=2023-02-30", prayer.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			_, err = ParseTimesQuery(q, queryNow)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.February, d.Month())

	_, err = ParseDate("2023-02-29")
	assert.ErrorIs(t, err, prayer.ErrInvalidDate)
}
