package nnclient

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Nintendo consoles exchange signed certificates in a fixed-layout binary
// container that predates (and ignores) ASN.1. The layout is:
//
//	u32 signature type | signature | padding | issuer (0x40) |
//	u32 key type | name (0x40) | u32 key id | public key | padding
//
// All integers are big-endian. The offset of everything past the signature
// block depends on which signature type is present.

type SignatureType uint32

const (
	SignatureRsa4096Sha1   SignatureType = 0x010000
	SignatureRsa2048Sha1   SignatureType = 0x010001
	SignatureEccSha1       SignatureType = 0x010002
	SignatureRsa4096Sha256 SignatureType = 0x010003
	SignatureRsa2048Sha256 SignatureType = 0x010004
	SignatureEcdsaSha256   SignatureType = 0x010005
)

// params returns the signature payload and trailing padding sizes for the
// type. Payload plus padding is constant across types with the same key
// width, so the issuer offset only depends on the returned pair.
func (t SignatureType) params() (payloadLen, padLen int, ok bool) {
	switch t {
	case SignatureRsa4096Sha1, SignatureRsa4096Sha256:
		return 0x200, 0x3C, true
	case SignatureRsa2048Sha1, SignatureRsa2048Sha256:
		return 0x100, 0x3C, true
	case SignatureEccSha1, SignatureEcdsaSha256:
		return 0x3C, 0x40, true
	}
	return 0, 0, false
}

func (t SignatureType) String() string {
	switch t {
	case SignatureRsa4096Sha1:
		return "rsa4096-sha1"
	case SignatureRsa2048Sha1:
		return "rsa2048-sha1"
	case SignatureEccSha1:
		return "ecc-sha1"
	case SignatureRsa4096Sha256:
		return "rsa4096-sha256"
	case SignatureRsa2048Sha256:
		return "rsa2048-sha256"
	case SignatureEcdsaSha256:
		return "ecdsa-sha256"
	}
	return fmt.Sprintf("signature type 0x%06X", uint32(t))
}

// Signature is one signature block variant together with its raw bytes.
type Signature struct {
	Type SignatureType
	Data []byte
}

// NewSignature copies data into a Signature, rejecting payloads whose length
// does not match the one mandated by the type.
func NewSignature(t SignatureType, data []byte) (Signature, error) {
	payloadLen, _, ok := t.params()
	if !ok {
		return Signature{}, &UnsupportedSignatureTypeError{Magic: uint32(t)}
	}
	if len(data) != payloadLen {
		return Signature{}, fmt.Errorf("%s payload must be 0x%X bytes, got 0x%X", t, payloadLen, len(data))
	}
	return Signature{Type: t, Data: bytes.Clone(data)}, nil
}

type KeyType uint32

const (
	KeyRsa4096 KeyType = iota
	KeyRsa2048
	KeyEcc
)

// params returns the key payload and trailing padding sizes for the type.
// RSA payloads carry the modulus plus a 4-byte public exponent, which is why
// they are 4 bytes longer than the matching signature payloads.
func (t KeyType) params() (payloadLen, padLen int, ok bool) {
	switch t {
	case KeyRsa4096:
		return 0x204, 0x34, true
	case KeyRsa2048:
		return 0x104, 0x34, true
	case KeyEcc:
		return 0x3C, 0x3C, true
	}
	return 0, 0, false
}

func (t KeyType) String() string {
	switch t {
	case KeyRsa4096:
		return "rsa4096"
	case KeyRsa2048:
		return "rsa2048"
	case KeyEcc:
		return "ecc"
	}
	return fmt.Sprintf("key type 0x%X", uint32(t))
}

// Key is one public key block variant together with its raw bytes.
type Key struct {
	Type KeyType
	Data []byte
}

// NewKey copies data into a Key, rejecting payloads whose length does not
// match the one mandated by the type.
func NewKey(t KeyType, data []byte) (Key, error) {
	payloadLen, _, ok := t.params()
	if !ok {
		return Key{}, &UnsupportedKeyTypeError{Magic: uint32(t)}
	}
	if len(data) != payloadLen {
		return Key{}, fmt.Errorf("%s payload must be 0x%X bytes, got 0x%X", t, payloadLen, len(data))
	}
	return Key{Type: t, Data: bytes.Clone(data)}, nil
}

// Issuer is the name of the certificate that signed this one. On the wire it
// occupies 0x40 bytes, NUL-padded.
type Issuer string

// KnownIssuer is one of the canonical issuer names used by Nintendo's
// certificate chains.
type KnownIssuer string

const (
	IssuerRootCA3MS12         KnownIssuer = "Root-CA00000003-MS00000012"
	IssuerNintendoCAG3CTRProd KnownIssuer = "Nintendo CA - G3_NintendoCTR2prod"
	IssuerNintendoCAG3CTRDev  KnownIssuer = "Nintendo CA - G3_NintendoCTR2dev"
)

// Known reports whether the issuer matches one of the canonical issuer names.
func (i Issuer) Known() (KnownIssuer, bool) {
	switch KnownIssuer(i) {
	case IssuerRootCA3MS12, IssuerNintendoCAG3CTRProd, IssuerNintendoCAG3CTRDev:
		return KnownIssuer(i), true
	}
	return "", false
}

// Name identifies the certificate's subject. Device certificates encode a
// console-type prefix and the device id here, e.g. "NG01234567".
type Name string

// DeviceID extracts the device id from a device certificate name: a known
// two-letter console prefix followed by eight hex digits.
func (n Name) DeviceID() (uint32, bool) {
	if _, ok := n.ConsoleKind(); !ok || len(n) < 10 {
		return 0, false
	}
	id, err := strconv.ParseUint(string(n[2:10]), 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(id), true
}

// ConsoleKind maps the name's prefix to the console family it belongs to.
func (n Name) ConsoleKind() (Kind, bool) {
	if len(n) < 2 {
		return 0, false
	}
	switch string(n[:2]) {
	case "NG":
		return KindWiiU, true
	case "CT":
		return Kind3DS, true
	}
	return 0, false
}

// KeyID identifies the certificate's key within its issuer's namespace.
type KeyID uint32

// Certificate is a decoded Nintendo certificate container.
type Certificate struct {
	Signature Signature
	Issuer    Issuer
	Key       Key
	Name      Name
	KeyID     KeyID
}

var (
	// ErrCertificateTooShort is returned when the input ends before a field
	// that the layout requires.
	ErrCertificateTooShort = errors.New("certificate data is too short")

	// ErrInvalidText is returned when an issuer or name field does not hold
	// valid UTF-8 after the NUL padding is stripped.
	ErrInvalidText = errors.New("certificate text field is not valid UTF-8")
)

// UnsupportedSignatureTypeError is returned when the signature type magic is
// not one of the six known values.
type UnsupportedSignatureTypeError struct {
	Magic uint32
}

func (e *UnsupportedSignatureTypeError) Error() string {
	return fmt.Sprintf("unsupported signature type 0x%06X", e.Magic)
}

// UnsupportedKeyTypeError is returned when the key type magic is not one of
// the three known values.
type UnsupportedKeyTypeError struct {
	Magic uint32
}

func (e *UnsupportedKeyTypeError) Error() string {
	return fmt.Sprintf("unsupported key type 0x%X", e.Magic)
}

const (
	certTextLen    = 0x40
	certKeyTypeOff = 0x40 // relative to the end of the signature block
	certNameOff    = 0x44
	certKeyIDOff   = 0x84
	certKeyOff     = 0x88
	certMagicLen   = 4
)

// certField returns the subslice [off, off+length) of data, or
// ErrCertificateTooShort if data ends before it. Reads never truncate.
func certField(data []byte, off, length int) ([]byte, error) {
	if off+length > len(data) {
		return nil, fmt.Errorf("%w: need 0x%X bytes, have 0x%X", ErrCertificateTooShort, off+length, len(data))
	}
	return data[off : off+length], nil
}

// certText decodes a NUL-padded fixed-width text span.
func certText(data []byte, off int, what string) (string, error) {
	raw, err := certField(data, off, certTextLen)
	if err != nil {
		return "", err
	}
	trimmed := bytes.TrimRight(raw, "\x00")
	if !utf8.Valid(trimmed) {
		return "", fmt.Errorf("%w: %s", ErrInvalidText, what)
	}
	return string(trimmed), nil
}

// ParseCertificate decodes a certificate container from data. The input is
// treated as untrusted: every read is bounds-checked and no partially
// decoded certificate is ever returned.
func ParseCertificate(data []byte) (*Certificate, error) {
	raw, err := certField(data, 0, certMagicLen)
	if err != nil {
		return nil, err
	}
	sigType := SignatureType(binary.BigEndian.Uint32(raw))
	sigLen, sigPad, ok := sigType.params()
	if !ok {
		return nil, &UnsupportedSignatureTypeError{Magic: uint32(sigType)}
	}

	sigData, err := certField(data, certMagicLen, sigLen)
	if err != nil {
		return nil, err
	}

	// everything past the signature block sits at a fixed distance from
	// its end
	offset := certMagicLen + sigLen + sigPad

	issuer, err := certText(data, offset, "issuer")
	if err != nil {
		return nil, err
	}

	raw, err = certField(data, offset+certKeyTypeOff, 4)
	if err != nil {
		return nil, err
	}
	keyType := KeyType(binary.BigEndian.Uint32(raw))
	keyLen, _, ok := keyType.params()
	if !ok {
		return nil, &UnsupportedKeyTypeError{Magic: uint32(keyType)}
	}

	name, err := certText(data, offset+certNameOff, "name")
	if err != nil {
		return nil, err
	}

	raw, err = certField(data, offset+certKeyIDOff, 4)
	if err != nil {
		return nil, err
	}
	keyID := binary.BigEndian.Uint32(raw)

	keyData, err := certField(data, offset+certKeyOff, keyLen)
	if err != nil {
		return nil, err
	}

	return &Certificate{
		Signature: Signature{Type: sigType, Data: bytes.Clone(sigData)},
		Issuer:    Issuer(issuer),
		Key:       Key{Type: keyType, Data: bytes.Clone(keyData)},
		Name:      Name(name),
		KeyID:     KeyID(keyID),
	}, nil
}

// Bytes serializes the certificate back into the container layout. The same
// certificate always serializes to the same bytes, and
// ParseCertificate(c.Bytes()) reproduces c for any certificate whose payload
// buffers match their type and whose text fields fit in 0x40 bytes.
func (c *Certificate) Bytes() ([]byte, error) {
	sigLen, sigPad, ok := c.Signature.Type.params()
	if !ok {
		return nil, &UnsupportedSignatureTypeError{Magic: uint32(c.Signature.Type)}
	}
	if len(c.Signature.Data) != sigLen {
		return nil, fmt.Errorf("%s signature payload must be 0x%X bytes, got 0x%X", c.Signature.Type, sigLen, len(c.Signature.Data))
	}
	keyLen, keyPad, ok := c.Key.Type.params()
	if !ok {
		return nil, &UnsupportedKeyTypeError{Magic: uint32(c.Key.Type)}
	}
	if len(c.Key.Data) != keyLen {
		return nil, fmt.Errorf("%s key payload must be 0x%X bytes, got 0x%X", c.Key.Type, keyLen, len(c.Key.Data))
	}
	if len(c.Issuer) > certTextLen {
		return nil, fmt.Errorf("issuer %q does not fit in 0x%X bytes", c.Issuer, certTextLen)
	}
	if len(c.Name) > certTextLen {
		return nil, fmt.Errorf("name %q does not fit in 0x%X bytes", c.Name, certTextLen)
	}

	total := certMagicLen + sigLen + sigPad + certKeyOff + keyLen + keyPad
	out := make([]byte, 0, total)

	out = binary.BigEndian.AppendUint32(out, uint32(c.Signature.Type))
	out = append(out, c.Signature.Data...)
	out = appendZeros(out, sigPad)

	out = appendPadded(out, string(c.Issuer))
	out = binary.BigEndian.AppendUint32(out, uint32(c.Key.Type))
	out = appendPadded(out, string(c.Name))
	out = binary.BigEndian.AppendUint32(out, uint32(c.KeyID))

	out = append(out, c.Key.Data...)
	out = appendZeros(out, keyPad)

	return out, nil
}

func appendZeros(b []byte, n int) []byte {
	return append(b, make([]byte, n)...)
}

func appendPadded(b []byte, s string) []byte {
	b = append(b, s...)
	return appendZeros(b, certTextLen-len(s))
}
