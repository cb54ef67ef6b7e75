package nnclient

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"golang.org/x/crypto/pkcs12"
)

// Consoles authenticate to Nintendo's HTTP services with per-platform TLS
// client certificates. The identities themselves are not shipped with this
// library; callers extract them from their own console and load them here.

// LoadIdentity decodes a PKCS#12 client identity (certificate plus private
// key) into a TLS certificate usable with NewClient.
func LoadIdentity(p12 []byte, password string) (tls.Certificate, error) {
	blocks, err := pkcs12.ToPEM(p12, password)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("decoding pkcs12 identity: %w", err)
	}

	var certPEM, keyPEM []byte
	for _, block := range blocks {
		switch block.Type {
		case "CERTIFICATE":
			certPEM = append(certPEM, pem.EncodeToMemory(block)...)
		case "PRIVATE KEY":
			keyPEM = append(keyPEM, pem.EncodeToMemory(block)...)
		}
	}

	identity, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("assembling identity key pair: %w", err)
	}
	return identity, nil
}

// CertPoolFromDER builds a certificate pool from raw DER certificates, e.g.
// a dump of the console's CA bundle.
func CertPoolFromDER(ders ...[]byte) (*x509.CertPool, error) {
	pool := x509.NewCertPool()
	for i, der := range ders {
		cert, err := x509.ParseCertificate(der)
		if err != nil {
			return nil, fmt.Errorf("parsing CA certificate %d: %w", i, err)
		}
		pool.AddCert(cert)
	}
	return pool, nil
}
