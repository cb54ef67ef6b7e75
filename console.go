package nnclient

import (
	"fmt"
	"net/http"
)

// Kind enumerates the console families this library can mimic.
type Kind int

const (
	Kind3DS Kind = iota
	KindWiiU
)

func (k Kind) String() string {
	switch k {
	case Kind3DS:
		return "3ds"
	case KindWiiU:
		return "wiiu"
	}
	return fmt.Sprintf("console kind %d", int(k))
}

// ServerKind enumerates the Nintendo Network server families a console can
// talk to. Only the account server is implemented.
type ServerKind int

const (
	ServerAccount ServerKind = iota
)

// Server identifies a concrete server a console builds request headers for.
type Server struct {
	Kind ServerKind
	Host string
}

// Console abstracts over the console-specific fingerprint data. It produces
// the HTTP headers a real console of that kind would send to the given
// server.
type Console interface {
	Kind() Kind
	HTTPHeaders(server Server) (http.Header, error)
}

// UnimplementedServerKindError is returned when a console has no headers to
// offer for the requested server kind.
type UnimplementedServerKindError struct {
	Server ServerKind
}

func (e *UnimplementedServerKindError) Error() string {
	return fmt.Sprintf("server kind %d is not implemented", int(e.Server))
}

// DeviceType distinguishes developer from retail units, with the numeric
// values the account server expects in X-Nintendo-Device-Type.
type DeviceType uint16

const (
	DeviceDeveloper DeviceType = 1
	DeviceRetail    DeviceType = 2
)

// Region is the console region bitfield as stored on the console itself.
// Australia is not a game region; it takes games from Europe.
type Region uint16

const (
	RegionJapan Region = 1 << iota
	RegionUnitedStates
	RegionEurope
	RegionAustralia
	RegionChina
	RegionKorea
	RegionTaiwan
)

// Environment is a console network environment tag, a class letter plus a
// single digit (L1, D1, S1, ...).
type Environment struct {
	Class  byte
	Number uint8
}

func (e Environment) String() string {
	return fmt.Sprintf("%c%d", e.Class, e.Number)
}

// Model enumerates the 3DS hardware models, with the short codes the console
// reports in X-Nintendo-Device-Model.
type Model string

const (
	Model3DS      Model = "CTR"
	Model3DSXL    Model = "SPR"
	ModelNew3DS   Model = "KTR"
	Model2DS      Model = "FTR"
	ModelNew3DSXL Model = "RED"
	ModelNew2DSXL Model = "JAN"
)
