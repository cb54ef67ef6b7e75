package nnclient

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"time"
)

// AgreementKindEULA is the only agreement kind the account server is known
// to serve.
const AgreementKindEULA = "NINTENDO-NETWORK-EULA"

// Agreements is a decoded agreement document.
type Agreements struct {
	XMLName    xml.Name    `xml:"agreements"`
	Agreements []Agreement `xml:"agreement"`
}

// First returns the first agreement in the document, or nil if there are
// none.
func (a *Agreements) First() *Agreement {
	if len(a.Agreements) == 0 {
		return nil
	}
	return &a.Agreements[0]
}

// Agreement is a single agreement (EULA) served for one country/language
// pair.
type Agreement struct {
	Country      string          `xml:"country,omitempty"`
	Language     string          `xml:"language,omitempty"`
	LanguageName string          `xml:"language_name,omitempty"`
	PublishDate  *AgreementTime  `xml:"publish_date,omitempty"`
	Texts        *AgreementTexts `xml:"texts,omitempty"`
	Kind         string          `xml:"type"`
	Version      PaddedVersion   `xml:"version,omitempty"`
}

// AgreementTexts holds the display strings of an agreement. The server wraps
// each of them in CDATA.
type AgreementTexts struct {
	Agree     CData `xml:"agree_text,omitempty"`
	NonAgree  CData `xml:"non_agree_text,omitempty"`
	MainTitle CData `xml:"main_title,omitempty"`
	MainText  CData `xml:"main_text,omitempty"`
}

// CData is a text node written as a CDATA section.
type CData struct {
	Text string `xml:",cdata"`
}

// AgreementTime is the timestamp format agreements use
// (2012-04-05T11:47:26, no zone designator).
type AgreementTime struct {
	time.Time
}

const agreementTimeLayout = "2006-01-02T15:04:05"

func (t AgreementTime) MarshalXML(enc *xml.Encoder, start xml.StartElement) error {
	return enc.EncodeElement(t.UTC().Format(agreementTimeLayout), start)
}

func (t *AgreementTime) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	var raw string
	if err := dec.DecodeElement(&raw, &start); err != nil {
		return err
	}
	parsed, err := time.Parse(agreementTimeLayout, raw)
	if err != nil {
		return fmt.Errorf("bad agreement publish date %q: %w", raw, err)
	}
	t.Time = parsed
	return nil
}

// PaddedVersion is an agreement version, four digits right-aligned on the
// wire.
type PaddedVersion uint16

func (v PaddedVersion) MarshalXML(enc *xml.Encoder, start xml.StartElement) error {
	return enc.EncodeElement(fmt.Sprintf("%04d", uint16(v)), start)
}

func (v *PaddedVersion) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	var raw string
	if err := dec.DecodeElement(&raw, &start); err != nil {
		return err
	}
	parsed, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return fmt.Errorf("bad agreement version %q: %w", raw, err)
	}
	*v = PaddedVersion(parsed)
	return nil
}

// AgreementVersion selects which version of an agreement to request: either
// the latest one or a specific number.
type AgreementVersion struct {
	Latest  bool
	Version uint16
}

// LatestAgreement requests whatever version the server considers current.
var LatestAgreement = AgreementVersion{Latest: true}

func (v AgreementVersion) String() string {
	if v.Latest {
		return "@latest"
	}
	return strconv.Itoa(int(v.Version))
}
