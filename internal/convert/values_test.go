package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jscard/internal/jscontact"
)

func TestNormalizeTimeZone(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"-05:00", "Etc/GMT+5", true},
		{"+05:00", "Etc/GMT-5", true},
		{"+00:00", "Etc/GMT", true},
		{"-00:00", "Etc/GMT", true},
		{"+05:30", "Etc/GMT-5:30", true},
		{"Etc/GMT-5:30", "Etc/GMT-5:30", true},
		{"Etc/GMT+9:30", "Etc/GMT+9:30", true},
		{"Etc/GMT-25:00", "", false},
		{"-0800", "Etc/GMT+8", true},
		{"+01", "Etc/GMT-1", true},
		{"America/New_York", "America/New_York", true},
		{" Europe/Berlin ", "Europe/Berlin", true},
		{"+24:00", "", false},
		{"+05:75", "", false},
		{"Mars/Olympus_Mons", "", false},
		{"Local", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeTimeZone(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVCardTimeZone(t *testing.T) {
	assert.Equal(t, "+05:30", vcardTimeZone("Etc/GMT-5:30"))
	assert.Equal(t, "-09:30", vcardTimeZone("Etc/GMT+9:30"))
	assert.Equal(t, "Etc/GMT+5", vcardTimeZone("Etc/GMT+5"))
	assert.Equal(t, "Europe/Berlin", vcardTimeZone("Europe/Berlin"))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want *jscontact.Date
	}{
		{"19850412", &jscontact.Date{Partial: &jscontact.PartialDate{Year: 1985, Month: 4, Day: 12}}},
		{"1985-04-12", &jscontact.Date{Partial: &jscontact.PartialDate{Year: 1985, Month: 4, Day: 12}}},
		{"1985-04", &jscontact.Date{Partial: &jscontact.PartialDate{Year: 1985, Month: 4}}},
		{"1985", &jscontact.Date{Partial: &jscontact.PartialDate{Year: 1985}}},
		{"--0412", &jscontact.Date{Partial: &jscontact.PartialDate{Month: 4, Day: 12}}},
		{"--04", &jscontact.Date{Partial: &jscontact.PartialDate{Month: 4}}},
		{"---12", &jscontact.Date{Partial: &jscontact.PartialDate{Day: 12}}},
		{"19960415T231000Z", &jscontact.Date{UTC: "1996-04-15T23:10:00Z"}},
		{"19960415T231000-0600", &jscontact.Date{UTC: "1996-04-16T05:10:00Z"}},
		{"19851312", nil},
		{"--0432", nil},
		{"circa 1800", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseDate(tt.in, "")
			assert.Equal(t, tt.want != nil, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate_CalendarScale(t *testing.T) {
	got, ok := parseDate("--0412", "gregorian")
	assert.True(t, ok)
	assert.Equal(t, "gregorian", got.Partial.CalendarScale)
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		in   *jscontact.Date
		want string
	}{
		{"full", &jscontact.Date{Partial: &jscontact.PartialDate{Year: 1985, Month: 4, Day: 12}}, "19850412"},
		{"year and month", &jscontact.Date{Partial: &jscontact.PartialDate{Year: 1985, Month: 4}}, "1985-04"},
		{"year", &jscontact.Date{Partial: &jscontact.PartialDate{Year: 1985}}, "1985"},
		{"month and day", &jscontact.Date{Partial: &jscontact.PartialDate{Month: 4, Day: 12}}, "--0412"},
		{"month", &jscontact.Date{Partial: &jscontact.PartialDate{Month: 4}}, "--04"},
		{"day", &jscontact.Date{Partial: &jscontact.PartialDate{Day: 12}}, "---12"},
		{"timestamp", &jscontact.Date{UTC: "1996-04-15T23:10:00Z"}, "19960415T231000Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDate(tt.in))

			back, ok := parseDate(tt.want, "")
			assert.True(t, ok)
			assert.Equal(t, tt.in, back)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"20220101T101010Z", "2022-01-01T10:10:10Z", true},
		{"20220101T101010+0200", "2022-01-01T08:10:10Z", true},
		{"2022-01-01T10:10:10+01:00", "2022-01-01T09:10:10Z", true},
		{"2022-01-01", "", false},
		{"yesterday", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseTimestamp(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFullAddress(t *testing.T) {
	components := []jscontact.AddressComponent{
		{Kind: jscontact.AddrCountry, Value: "USA"},
		{Kind: jscontact.AddrName, Value: "54321 Oak St"},
		{Kind: jscontact.AddrPostcode, Value: "20190"},
		{Kind: jscontact.AddrLocality, Value: "Reston"},
		{Kind: jscontact.AddrRegion, Value: "VA"},
		{Kind: "landmark", Value: "near the lake"},
	}

	assert.Equal(t, "54321 Oak St\nReston\nVA\n20190\nUSA", FullAddress(components))
	assert.Empty(t, FullAddress(nil))
}
