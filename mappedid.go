package nnclient

import "encoding/xml"

// MappedIDs is a decoded id-mapping document, returned when converting
// between Nintendo Network ids and PIDs.
type MappedIDs struct {
	XMLName xml.Name   `xml:"mapped_ids"`
	Mapped  []MappedID `xml:"mapped_id"`
}

// MappedID is a single input/output pair of a mapping request. The server
// does not say which identifier kind either side is, so both stay strings.
type MappedID struct {
	In  string `xml:"in_id"`
	Out string `xml:"out_id"`
}

// Lookup returns the mapping result for the given input id.
func (m *MappedIDs) Lookup(in string) (string, bool) {
	for _, pair := range m.Mapped {
		if pair.In == in {
			return pair.Out, pair.Out != ""
		}
	}
	return "", false
}
