package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	nnclient "github.com/vestinel/nnclient"
)

var certCmd = &cobra.Command{
	Use:   "cert",
	Short: "Work with Nintendo certificate containers",
}

var certInspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Display the contents of a certificate container",
	Long: `Inspect a Nintendo certificate container and display its contents.

The file may hold the raw container or its base64 encoding, as sent in the
X-Nintendo-Device-Cert header.

Examples:
  # Inspect a raw device certificate
  nnctl cert inspect device.bin

  # Inspect a certificate captured from request headers
  nnctl cert inspect device-cert.b64`,
	Args: cobra.ExactArgs(1),
	RunE: runCertInspect,
}

func init() {
	certCmd.AddCommand(certInspectCmd)
	rootCmd.AddCommand(certCmd)
}

func runCertInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	cert, err := nnclient.ParseCertificate(data)
	if err != nil {
		// Device certificates travel base64-encoded in headers, so
		// give that a try before giving up.
		decoded, b64Err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
		if b64Err != nil {
			return fmt.Errorf("failed to parse certificate: %w", err)
		}
		cert, err = nnclient.ParseCertificate(decoded)
		if err != nil {
			return fmt.Errorf("failed to parse certificate: %w", err)
		}
	}

	encoded, err := cert.Bytes()
	if err != nil {
		return err
	}

	fmt.Println("Certificate:")
	fmt.Printf("  Size:           %s\n", humanize.Bytes(uint64(len(encoded))))
	fmt.Printf("  Signature:      %s (%s payload)\n", cert.Signature.Type, humanize.Bytes(uint64(len(cert.Signature.Data))))
	fmt.Printf("  Issuer:         %s", cert.Issuer)
	if _, ok := cert.Issuer.Known(); ok {
		fmt.Print(" (known)")
	}
	fmt.Println()
	fmt.Printf("  Name:           %s\n", cert.Name)
	if kind, ok := cert.Name.ConsoleKind(); ok {
		fmt.Printf("  Console:        %s\n", kind)
	}
	if id, ok := cert.Name.DeviceID(); ok {
		fmt.Printf("  Device ID:      %d (0x%08X)\n", id, id)
	}
	fmt.Printf("  Key:            %s (%s payload)\n", cert.Key.Type, humanize.Bytes(uint64(len(cert.Key.Data))))
	fmt.Printf("  Key ID:         0x%08X\n", uint32(cert.KeyID))

	return nil
}
