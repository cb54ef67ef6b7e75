package nnclient

import (
	"encoding/xml"
	"time"
)

// Timezones is a decoded timezone document.
type Timezones struct {
	XMLName   xml.Name   `xml:"timezones"`
	Timezones []Timezone `xml:"timezone"`
}

// Timezone is one entry of the timezone list served for a country/language
// pair: the zoneinfo area name, the localized display name and the UTC
// offset in seconds, together with the entry's intended ordering.
type Timezone struct {
	Area      string `xml:"area,omitempty"`
	Language  string `xml:"language,omitempty"`
	Name      string `xml:"name,omitempty"`
	UTCOffset int    `xml:"utc_offset"`
	Order     uint8  `xml:"order,omitempty"`
}

// Location builds a fixed-offset time.Location from the entry.
func (t Timezone) Location() *time.Location {
	name := t.Area
	if name == "" {
		name = t.Name
	}
	return time.FixedZone(name, t.UTCOffset)
}
