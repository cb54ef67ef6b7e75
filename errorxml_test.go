package nnclient

import (
	"encoding/xml"
	"strings"
	"testing"
)

const accountIDExistsXML = `<errors>
<error>
<cause>accountId</cause>
<code>0100</code>
<message>Account ID already exists</message>
</error>
</errors>`

func TestErrorsUnmarshal(t *testing.T) {
	var errs Errors
	if err := xml.Unmarshal([]byte(accountIDExistsXML), &errs); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(errs.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(errs.Errors))
	}
	if errs.FirstCode() != ErrAccountIDExists {
		t.Errorf("FirstCode() = %d, want %d", errs.FirstCode(), ErrAccountIDExists)
	}
	first := errs.First()
	if first.Cause != "accountId" {
		t.Errorf("cause = %q, want \"accountId\"", first.Cause)
	}
	if first.Message != "Account ID already exists" {
		t.Errorf("message = %q", first.Message)
	}

	msg := errs.Error()
	if !strings.Contains(msg, "0100") || !strings.Contains(msg, "accountId") {
		t.Errorf("Error() = %q, want the code and cause in it", msg)
	}
}

func TestErrorsEmptyDocument(t *testing.T) {
	var errs Errors
	if err := xml.Unmarshal([]byte("<errors></errors>"), &errs); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if errs.First() != nil {
		t.Error("First() non-nil for an empty document")
	}
	if errs.FirstCode() != 0 {
		t.Errorf("FirstCode() = %d, want 0", errs.FirstCode())
	}
	if errs.Error() == "" {
		t.Error("Error() empty for an empty document")
	}
}

func TestErrorCodePadding(t *testing.T) {
	out, err := xml.Marshal(ErrorCode(4))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(out), ">0004<") {
		t.Errorf("Marshal() = %s, want a zero-padded code", out)
	}

	out, err = xml.Marshal(ErrNintendoNetworkClosed)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(out), ">2999<") {
		t.Errorf("Marshal() = %s, want 2999", out)
	}
}

func TestErrorCodeMessages(t *testing.T) {
	if !ErrBannedDevice.Known() {
		t.Error("ErrBannedDevice not known")
	}
	if ErrorCode(9999).Known() {
		t.Error("code 9999 reported as known")
	}
	if msg := ErrorCode(9999).Message(); !strings.Contains(msg, "9999") {
		t.Errorf("Message() = %q, want the code in it", msg)
	}
	if msg := (&ServerError{Code: ErrUnderMaintenance}).Error(); !strings.Contains(msg, "maintenance") {
		t.Errorf("Error() = %q, want the table message", msg)
	}
}
