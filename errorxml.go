package nnclient

import (
	"encoding/xml"
	"fmt"
)

// The account server reports failures as an XML document:
//
//	<errors><error><cause/><code>0004</code><message/></error></errors>
//
// In every observed response the document carries exactly one error, but the
// schema permits more.

// Errors is a decoded error document. It implements error so that it can be
// surfaced directly by the client.
type Errors struct {
	XMLName xml.Name      `xml:"errors"`
	Errors  []ServerError `xml:"error"`
}

// First returns the first error in the document, or nil if there are none.
func (e *Errors) First() *ServerError {
	if len(e.Errors) == 0 {
		return nil
	}
	return &e.Errors[0]
}

// FirstCode returns the first error's code, or 0 if the document is empty.
func (e *Errors) FirstCode() ErrorCode {
	if first := e.First(); first != nil {
		return first.Code
	}
	return 0
}

func (e *Errors) Error() string {
	if first := e.First(); first != nil {
		return first.Error()
	}
	return "an error document was parsed but no errors were in the body"
}

// ServerError is a single error entry in an error document.
type ServerError struct {
	Cause   string    `xml:"cause,omitempty"`
	Code    ErrorCode `xml:"code"`
	Message string    `xml:"message,omitempty"`
}

func (e *ServerError) Error() string {
	message := e.Message
	if message == "" {
		message = e.Code.Message()
	}
	if e.Cause != "" {
		return fmt.Sprintf("account server error %04d: %s (cause: %s)", uint16(e.Code), message, e.Cause)
	}
	return fmt.Sprintf("account server error %04d: %s", uint16(e.Code), message)
}

// ErrorCode is an account server error code. Codes outside the known table
// are preserved as-is. On the wire codes are four digits, right-aligned.
type ErrorCode uint16

func (c ErrorCode) MarshalXML(enc *xml.Encoder, start xml.StartElement) error {
	return enc.EncodeElement(fmt.Sprintf("%04d", uint16(c)), start)
}

func (c *ErrorCode) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	var raw uint16
	if err := dec.DecodeElement(&raw, &start); err != nil {
		return err
	}
	*c = ErrorCode(raw)
	return nil
}

// Known account server error codes.
const (
	ErrBadParameterFormat        ErrorCode = 1
	ErrBadRequestFormat          ErrorCode = 2
	ErrMissingRequestParameter   ErrorCode = 3
	ErrUnauthorizedClient        ErrorCode = 4
	ErrInvalidAccountToken       ErrorCode = 5
	ErrExpiredAccountToken       ErrorCode = 6
	ErrForbiddenRequest          ErrorCode = 7
	ErrRequestNotFound           ErrorCode = 8
	ErrWrongHTTPMethod           ErrorCode = 9
	ErrInvalidPlatformID         ErrorCode = 10
	ErrSystemUpdateRequired      ErrorCode = 11
	ErrBannedDevice              ErrorCode = 12
	ErrAccountIDExists           ErrorCode = 100
	ErrInvalidAccountID          ErrorCode = 101
	ErrInvalidMailAddress        ErrorCode = 103
	ErrUnauthorizedDevice        ErrorCode = 104
	ErrRegistrationLimit         ErrorCode = 105
	ErrWrongAccountPassword      ErrorCode = 106
	ErrCountryMismatch           ErrorCode = 107
	ErrBannedAccount             ErrorCode = 108
	ErrDeviceMismatch            ErrorCode = 110
	ErrAccountIDChanged          ErrorCode = 111
	ErrAccountDeleted            ErrorCode = 112
	ErrCoppaNotAccepted          ErrorCode = 114
	ErrAssociationLimit          ErrorCode = 115
	ErrWrongConfirmationCode     ErrorCode = 116
	ErrExpiredConfirmationCode   ErrorCode = 117
	ErrServiceClosed             ErrorCode = 123
	ErrApplicationUpdate         ErrorCode = 124
	ErrMailAddressNotValidated   ErrorCode = 128
	ErrPIDNotFound               ErrorCode = 130
	ErrEulaNotAccepted           ErrorCode = 1004
	ErrInvalidUniqueID           ErrorCode = 1006
	ErrTokenGenerationFailed     ErrorCode = 1018
	ErrInvalidGameServerID       ErrorCode = 1021
	ErrInvalidClientID           ErrorCode = 1022
	ErrDeviceEulaCountryMismatch ErrorCode = 1046
	ErrInvalidEulaCountry        ErrorCode = 1100
	ErrInvalidEulaVersion        ErrorCode = 1101
	ErrParentalControlsRequired  ErrorCode = 1103
	ErrUnprovidedCountry         ErrorCode = 1200
	ErrBadRequest                ErrorCode = 1600
	ErrInternalServerError       ErrorCode = 2001
	ErrUnderMaintenance          ErrorCode = 2002
	ErrNintendoNetworkClosed     ErrorCode = 2999
)

var errorCodeMessages = map[ErrorCode]string{
	ErrBadParameterFormat:        "the parameters provided are formatted incorrectly",
	ErrBadRequestFormat:          "this request is formatted incorrectly",
	ErrMissingRequestParameter:   "this request is missing a parameter",
	ErrUnauthorizedClient:        "this client is unauthorized",
	ErrInvalidAccountToken:       "the account token provided in this request is invalid",
	ErrExpiredAccountToken:       "the account token is expired",
	ErrForbiddenRequest:          "this request is forbidden",
	ErrRequestNotFound:           "this request points to a nonexistent endpoint",
	ErrWrongHTTPMethod:           "this request uses the wrong HTTP method",
	ErrInvalidPlatformID:         "the platform id provided in the request is invalid",
	ErrSystemUpdateRequired:      "a system update is required to access this service",
	ErrBannedDevice:              "the device in use has been banned from all services",
	ErrAccountIDExists:           "the account id provided in this request already exists",
	ErrInvalidAccountID:          "the account id provided in this request is invalid",
	ErrInvalidMailAddress:        "the email provided in this request is invalid",
	ErrUnauthorizedDevice:        "this device is unauthorized",
	ErrRegistrationLimit:         "this device is unable to register any more accounts",
	ErrWrongAccountPassword:      "the account id and/or password is incorrect",
	ErrCountryMismatch:           "the account country and device country do not match",
	ErrBannedAccount:             "the account in use has been banned from all services",
	ErrDeviceMismatch:            "this device is unlinked to the provided account",
	ErrAccountIDChanged:          "this account id has changed",
	ErrAccountDeleted:            "this account has been deleted",
	ErrCoppaNotAccepted:          "the COPPA agreement has not been accepted",
	ErrAssociationLimit:          "this device has reached its account association limit",
	ErrWrongConfirmationCode:     "the confirmation code provided is incorrect",
	ErrExpiredConfirmationCode:   "the confirmation code provided has expired",
	ErrServiceClosed:             "this service has closed its operations",
	ErrApplicationUpdate:         "an update of your application is required to use this service",
	ErrMailAddressNotValidated:   "the email in use has not been validated",
	ErrPIDNotFound:               "the requested PID was not found",
	ErrEulaNotAccepted:           "the EULA has not been accepted",
	ErrInvalidUniqueID:           "the provided unique id is invalid",
	ErrTokenGenerationFailed:     "the server was unable to generate a token",
	ErrInvalidGameServerID:       "the requested game server id is invalid",
	ErrInvalidClientID:           "the requested client id is invalid",
	ErrDeviceEulaCountryMismatch: "the device country and EULA country do not match",
	ErrInvalidEulaCountry:        "the requested EULA country is invalid",
	ErrInvalidEulaVersion:        "the requested EULA country and version pair are invalid",
	ErrParentalControlsRequired:  "the endpoint you are requesting requires parental controls",
	ErrUnprovidedCountry:         "no country was provided in the request",
	ErrBadRequest:                "unable to process request",
	ErrInternalServerError:       "an internal server error occurred",
	ErrUnderMaintenance:          "the servers are under maintenance",
	ErrNintendoNetworkClosed:     "the Nintendo Network service has ended",
}

// Known reports whether the code is in the known-code table.
func (c ErrorCode) Known() bool {
	_, ok := errorCodeMessages[c]
	return ok
}

// Message returns the descriptive message for a known code, or a generic
// one for codes outside the table.
func (c ErrorCode) Message() string {
	if message, ok := errorCodeMessages[c]; ok {
		return message
	}
	return fmt.Sprintf("an unknown error has occurred (%04d)", uint16(c))
}
