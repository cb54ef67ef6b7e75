package nnclient

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
)

// Console3DS carries everything that can be used to mimic a 3DS family
// console. Zero-valued fields are omitted from the generated headers.
type Console3DS struct {
	DeviceType    DeviceType   // X-Nintendo-Device-Type
	DeviceID      uint32       // X-Nintendo-Device-ID
	Serial        string       // X-Nintendo-Serial-Number
	SystemVersion TitleVersion // X-Nintendo-System-Version
	Region        Region       // X-Nintendo-Region
	Country       string       // X-Nintendo-Country, ISO 3166-1 alpha-2
	ClientID      string       // X-Nintendo-Client-ID
	ClientSecret  string       // X-Nintendo-Client-Secret
	FPDVersion    uint16       // X-Nintendo-FPD-Version
	Environment   Environment  // X-Nintendo-Environment
	TitleID       TitleID      // X-Nintendo-Title-ID and X-Nintendo-Unique-ID
	TitleVersion  TitleVersion // X-Nintendo-Application-Version
	DeviceCert    *Certificate // X-Nintendo-Device-Cert
	Language      string       // Accept-Language, ISO 639-1
	APIVersion    uint16       // X-Nintendo-API-Version
	Model         Model        // X-Nintendo-Device-Model
}

// DeriveDeviceID fills DeviceID from the device certificate's subject name.
func (c *Console3DS) DeriveDeviceID() error {
	if c.DeviceCert == nil {
		return fmt.Errorf("no device certificate to derive the device id from")
	}
	id, ok := c.DeviceCert.Name.DeviceID()
	if !ok {
		return fmt.Errorf("certificate name %q does not embed a device id", c.DeviceCert.Name)
	}
	c.DeviceID = id
	return nil
}

func (c *Console3DS) Kind() Kind {
	return Kind3DS
}

// HTTPHeaders builds the header fingerprint a 3DS sends to the account
// server. The platform id of the 3DS family is 0.
func (c *Console3DS) HTTPHeaders(server Server) (http.Header, error) {
	if server.Kind != ServerAccount {
		return nil, &UnimplementedServerKindError{Server: server.Kind}
	}

	h := http.Header{}
	h.Set("X-Nintendo-Platform-ID", "0")

	if c.DeviceType != 0 {
		h.Set("X-Nintendo-Device-Type", strconv.Itoa(int(c.DeviceType)))
	}
	if c.DeviceID != 0 {
		h.Set("X-Nintendo-Device-ID", strconv.FormatUint(uint64(c.DeviceID), 10))
	}
	if c.Serial != "" {
		h.Set("X-Nintendo-Serial-Number", c.Serial)
	}
	if c.SystemVersion != 0 {
		h.Set("X-Nintendo-System-Version", fmt.Sprintf("%04X", uint16(c.SystemVersion)))
	}
	if c.Region != 0 {
		h.Set("X-Nintendo-Region", strconv.Itoa(int(c.Region)))
	}
	if c.Country != "" {
		h.Set("X-Nintendo-Country", c.Country)
	}
	if c.Language != "" {
		h.Set("Accept-Language", c.Language)
	}
	if c.ClientID != "" {
		h.Set("X-Nintendo-Client-ID", c.ClientID)
	}
	if c.ClientSecret != "" {
		h.Set("X-Nintendo-Client-Secret", c.ClientSecret)
	}
	h.Set("Accept", "*/*")
	if c.APIVersion != 0 {
		h.Set("X-Nintendo-API-Version", strconv.Itoa(int(c.APIVersion)))
	}
	if c.FPDVersion != 0 {
		h.Set("X-Nintendo-FPD-Version", strconv.Itoa(int(c.FPDVersion)))
	}
	if c.Environment.Class != 0 {
		h.Set("X-Nintendo-Environment", c.Environment.String())
	}
	if c.TitleID != 0 {
		h.Set("X-Nintendo-Title-ID", strconv.FormatUint(uint64(c.TitleID), 10))
		h.Set("X-Nintendo-Unique-ID", fmt.Sprintf("%05X", uint32(c.TitleID.UniqueID())))
	}
	if c.TitleVersion != 0 {
		h.Set("X-Nintendo-Application-Version", fmt.Sprintf("%04X", uint16(c.TitleVersion.Major())))
	}
	if c.Model != "" {
		h.Set("X-Nintendo-Device-Model", string(c.Model))
	}
	if c.DeviceCert != nil {
		cert, err := c.DeviceCert.Bytes()
		if err != nil {
			return nil, err
		}
		h.Set("X-Nintendo-Device-Cert", base64.StdEncoding.EncodeToString(cert))
	}

	return h, nil
}
