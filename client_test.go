package nnclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewTLSServer(handler)
	t.Cleanup(srv.Close)

	console := &Console3DS{
		DeviceType: DeviceRetail,
		Country:    "US",
		ClientID:   "ea25c66c26b403376b4c5ed94ab9cdea",
	}
	client, err := NewClient(console, nil, nil,
		WithHost(strings.TrimPrefix(srv.URL, "https://")),
		WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestClientSendsConsoleFingerprint(t *testing.T) {
	var got http.Header
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))

	if _, err := client.UserExists(context.Background(), "marcrasi"); err != nil {
		t.Fatalf("UserExists() error = %v", err)
	}

	if got.Get("X-Nintendo-Platform-ID") != "0" {
		t.Errorf("X-Nintendo-Platform-ID = %q, want \"0\"", got.Get("X-Nintendo-Platform-ID"))
	}
	if got.Get("X-Nintendo-Device-Type") != "2" {
		t.Errorf("X-Nintendo-Device-Type = %q, want \"2\"", got.Get("X-Nintendo-Device-Type"))
	}
	if got.Get("X-Nintendo-Client-ID") == "" {
		t.Error("X-Nintendo-Client-ID not sent")
	}
}

func TestUserExists(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/api/people/taken" && r.URL.Path != "/v1/api/people/free" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if strings.HasSuffix(r.URL.Path, "/taken") {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `<errors><error><code>0100</code><message>Account ID already exists</message></error></errors>`)
			return
		}
	}))

	exists, err := client.UserExists(context.Background(), "taken")
	if err != nil {
		t.Fatalf("UserExists(taken) error = %v", err)
	}
	if !exists {
		t.Error("UserExists(taken) = false")
	}

	exists, err = client.UserExists(context.Background(), "free")
	if err != nil {
		t.Fatalf("UserExists(free) error = %v", err)
	}
	if exists {
		t.Error("UserExists(free) = true")
	}
}

func TestUserExistsSurfacesOtherErrors(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `<errors><error><code>0004</code></error></errors>`)
	}))

	_, err := client.UserExists(context.Background(), "whoever")
	var errs *Errors
	if !errors.As(err, &errs) {
		t.Fatalf("UserExists() error = %v, want an error document", err)
	}
	if errs.FirstCode() != ErrUnauthorizedClient {
		t.Errorf("code = %d, want %d", errs.FirstCode(), ErrUnauthorizedClient)
	}
}

func TestAgreements(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/api/content/agreements/NINTENDO-NETWORK-EULA/US/@latest" {
			t.Errorf("path = %q", r.URL.Path)
		}
		fmt.Fprint(w, agreementsDocXML)
	}))

	agreements, err := client.Agreements(context.Background(), AgreementKindEULA, "US", LatestAgreement)
	if err != nil {
		t.Fatalf("Agreements() error = %v", err)
	}
	if first := agreements.First(); first == nil || first.Country != "US" {
		t.Errorf("First() = %+v", first)
	}
}

func TestAgreementsForCountries(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		country := parts[len(parts)-2]
		fmt.Fprintf(w, `<agreements><agreement><country>%s</country><type>NINTENDO-NETWORK-EULA</type><version>0001</version></agreement></agreements>`, country)
	}))

	countries := []string{"US", "DE", "JP", "GB", "FR", "IT"}
	results, err := client.AgreementsForCountries(context.Background(), AgreementKindEULA, countries, LatestAgreement)
	if err != nil {
		t.Fatalf("AgreementsForCountries() error = %v", err)
	}

	if len(results) != len(countries) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(countries))
	}
	for _, country := range countries {
		agreements, ok := results[country]
		if !ok || agreements.First() == nil || agreements.First().Country != country {
			t.Errorf("results[%s] = %+v", country, agreements)
		}
	}
}

func TestTimezones(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/api/content/time_zones/US/en" {
			t.Errorf("path = %q", r.URL.Path)
		}
		fmt.Fprint(w, timezonesDocXML)
	}))

	timezones, err := client.Timezones(context.Background(), "US", "en")
	if err != nil {
		t.Fatalf("Timezones() error = %v", err)
	}
	if len(timezones.Timezones) != 2 {
		t.Errorf("len(Timezones) = %d, want 2", len(timezones.Timezones))
	}
}

func TestTime(t *testing.T) {
	want := time.Date(2014, 9, 29, 20, 7, 35, 0, time.UTC)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/api/admin/time" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("X-Nintendo-Date", fmt.Sprint(want.UnixMilli()))
	}))

	got, err := client.Time(context.Background())
	if err != nil {
		t.Fatalf("Time() error = %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("Time() = %v, want %v", got, want)
	}
}

func TestTimeMissingHeader(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	_, err := client.Time(context.Background())
	var missing *MissingHeaderError
	if !errors.As(err, &missing) {
		t.Fatalf("Time() error = %v, want MissingHeaderError", err)
	}
	if missing.Header != "X-Nintendo-Date" {
		t.Errorf("header = %q", missing.Header)
	}
}

func TestMapIDs(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("input_type") != "user_id" || query.Get("output_type") != "pid" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		if len(query["input"]) != 2 {
			t.Errorf("inputs = %v, want 2 of them", query["input"])
		}
		fmt.Fprint(w, mappedIDsDocXML)
	}))

	mapped, err := client.MapIDs(context.Background(), "user_id", "pid", []string{"marcrasi", "nobody-here"})
	if err != nil {
		t.Fatalf("MapIDs() error = %v", err)
	}
	if out, ok := mapped.Lookup("marcrasi"); !ok || out != "1794841894" {
		t.Errorf("Lookup(marcrasi) = %q, %t", out, ok)
	}
}

func TestUnexpectedStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.Timezones(context.Background(), "US", "en")
	var status *UnexpectedStatusError
	if !errors.As(err, &status) {
		t.Fatalf("Timezones() error = %v, want UnexpectedStatusError", err)
	}
	if status.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status.Status)
	}
}

func TestRefreshHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	t.Cleanup(srv.Close)

	console := &Console3DS{Country: "US"}
	client, err := NewClient(console, nil, nil,
		WithHost(strings.TrimPrefix(srv.URL, "https://")),
		WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	console.Country = "DE"
	if _, err := client.UserExists(context.Background(), "whoever"); err != nil {
		t.Fatalf("UserExists() error = %v", err)
	}
	if got.Get("X-Nintendo-Country") != "US" {
		t.Errorf("country before refresh = %q, want the cached \"US\"", got.Get("X-Nintendo-Country"))
	}

	if err := client.RefreshHeaders(); err != nil {
		t.Fatalf("RefreshHeaders() error = %v", err)
	}
	if _, err := client.UserExists(context.Background(), "whoever"); err != nil {
		t.Fatalf("UserExists() error = %v", err)
	}
	if got.Get("X-Nintendo-Country") != "DE" {
		t.Errorf("country after refresh = %q, want \"DE\"", got.Get("X-Nintendo-Country"))
	}
}
