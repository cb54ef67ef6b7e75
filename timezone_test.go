package nnclient

import (
	"encoding/xml"
	"testing"
	"time"
)

const timezonesDocXML = `<timezones>
<timezone>
<area>America/New_York</area>
<language>en</language>
<name>Eastern Time</name>
<utc_offset>-18000</utc_offset>
<order>1</order>
</timezone>
<timezone>
<area>America/Chicago</area>
<language>en</language>
<name>Central Time</name>
<utc_offset>-21600</utc_offset>
<order>2</order>
</timezone>
</timezones>`

func TestTimezonesUnmarshal(t *testing.T) {
	var timezones Timezones
	if err := xml.Unmarshal([]byte(timezonesDocXML), &timezones); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(timezones.Timezones) != 2 {
		t.Fatalf("len(Timezones) = %d, want 2", len(timezones.Timezones))
	}

	zone := timezones.Timezones[0]
	if zone.Area != "America/New_York" {
		t.Errorf("area = %q", zone.Area)
	}
	if zone.UTCOffset != -18000 {
		t.Errorf("utc offset = %d, want -18000", zone.UTCOffset)
	}
	if zone.Order != 1 {
		t.Errorf("order = %d, want 1", zone.Order)
	}
}

func TestTimezoneLocation(t *testing.T) {
	zone := Timezone{Area: "America/New_York", Name: "Eastern Time", UTCOffset: -18000}
	loc := zone.Location()

	at := time.Date(2014, 9, 29, 12, 0, 0, 0, time.UTC).In(loc)
	if at.Hour() != 7 {
		t.Errorf("noon UTC in the zone = %d o'clock, want 7", at.Hour())
	}
	_, offset := at.Zone()
	if offset != -18000 {
		t.Errorf("offset = %d, want -18000", offset)
	}
}
