package main

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	nnclient "github.com/vestinel/nnclient"
)

type Config struct {
	Console           string   `koanf:"console"`
	Host              string   `koanf:"host"`
	DeviceType        string   `koanf:"deviceType"`
	DeviceCertPath    string   `koanf:"deviceCertPath"`
	Serial            string   `koanf:"serial"`
	SystemVersion     uint16   `koanf:"systemVersion"`
	Region            uint16   `koanf:"region"`
	Country           string   `koanf:"country"`
	Language          string   `koanf:"language"`
	ClientID          string   `koanf:"clientId"`
	ClientSecret      string   `koanf:"clientSecret"`
	FPDVersion        uint16   `koanf:"fpdVersion"`
	Environment       string   `koanf:"environment"`
	TitleID           uint64   `koanf:"titleId"`
	TitleVersion      uint16   `koanf:"titleVersion"`
	IdentityPath      string   `koanf:"identityPath"`
	IdentityPassword  string   `koanf:"identityPassword"`
	ServerCACertPaths []string `koanf:"serverCaCertPaths"`
	LogFile           string   `koanf:"logFile"`
	saveMutex         *sync.Mutex
}

const (
	nnctlConfigDir = "nnctl"
	configFilename = "config.json"
)

var globalConfig *Config
var k = koanf.NewWithConf(koanf.Conf{
	Delim: ".",
})

func getDefaultConfig() *Config {
	return &Config{
		Console:     "3ds",
		Host:        nnclient.DefaultAccountServerHost,
		DeviceType:  "retail",
		Country:     "US",
		Language:    "en",
		Environment: "L1",
		saveMutex:   &sync.Mutex{},
	}
}

func configFilePath() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userConfigDir, nnctlConfigDir, configFilename), nil
}

func createDefaultConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	configFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer configFile.Close()

	if _, err := configFile.WriteString("{}"); err != nil {
		return err
	}

	return nil
}

func loadConfig(path string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	globalConfig = getDefaultConfig()

	if path == "" {
		var err error
		path, err = configFilePath()
		if err != nil {
			return nil, fmt.Errorf("locating user config dir: %w", err)
		}
	}

	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		if err := createDefaultConfigFile(path); err != nil {
			return nil, fmt.Errorf("creating default config file: %w", err)
		}
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	if err := k.Unmarshal("", globalConfig); err != nil {
		return nil, fmt.Errorf("decoding config file: %w", err)
	}

	return globalConfig, nil
}

func (c *Config) Save(path string) error {
	c.saveMutex.Lock()
	defer c.saveMutex.Unlock()

	if err := k.Load(structs.Provider(c, "koanf"), nil); err != nil {
		return err
	}

	if path == "" {
		var err error
		path, err = configFilePath()
		if err != nil {
			return err
		}
	}
	confBytes, err := k.Marshal(json.Parser())
	if err != nil {
		return err
	}
	return os.WriteFile(path, confBytes, 0644)
}

func (c *Config) deviceType() (nnclient.DeviceType, error) {
	switch c.DeviceType {
	case "developer":
		return nnclient.DeviceDeveloper, nil
	case "", "retail":
		return nnclient.DeviceRetail, nil
	default:
		return 0, fmt.Errorf("unknown device type %q", c.DeviceType)
	}
}

func (c *Config) environment() (nnclient.Environment, error) {
	if len(c.Environment) != 2 || c.Environment[1] < '0' || c.Environment[1] > '9' {
		return nnclient.Environment{}, fmt.Errorf("malformed environment %q", c.Environment)
	}
	return nnclient.Environment{
		Class:  c.Environment[0],
		Number: c.Environment[1] - '0',
	}, nil
}

func (c *Config) deviceCert() (*nnclient.Certificate, error) {
	if c.DeviceCertPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.DeviceCertPath)
	if err != nil {
		return nil, err
	}
	return nnclient.ParseCertificate(data)
}

// console assembles a console from the configured fields.
func (c *Config) console() (nnclient.Console, error) {
	deviceType, err := c.deviceType()
	if err != nil {
		return nil, err
	}
	environment, err := c.environment()
	if err != nil {
		return nil, err
	}
	deviceCert, err := c.deviceCert()
	if err != nil {
		return nil, fmt.Errorf("loading device certificate: %w", err)
	}

	switch c.Console {
	case "3ds":
		console := &nnclient.Console3DS{
			DeviceType:    deviceType,
			Serial:        c.Serial,
			SystemVersion: nnclient.TitleVersion(c.SystemVersion),
			Region:        nnclient.Region(c.Region),
			Country:       c.Country,
			Language:      c.Language,
			ClientID:      c.ClientID,
			ClientSecret:  c.ClientSecret,
			FPDVersion:    c.FPDVersion,
			Environment:   environment,
			TitleID:       nnclient.TitleID(c.TitleID),
			TitleVersion:  nnclient.TitleVersion(c.TitleVersion),
			DeviceCert:    deviceCert,
		}
		if deviceCert != nil {
			if err := console.DeriveDeviceID(); err != nil {
				return nil, err
			}
		}
		return console, nil
	case "wiiu":
		console := &nnclient.ConsoleWiiU{
			DeviceType:    deviceType,
			Serial:        c.Serial,
			Language:      c.Language,
			SystemVersion: nnclient.TitleVersion(c.SystemVersion),
			Region:        nnclient.Region(c.Region),
			Country:       c.Country,
			ClientID:      c.ClientID,
			ClientSecret:  c.ClientSecret,
			FPDVersion:    c.FPDVersion,
			Environment:   environment,
			TitleID:       nnclient.TitleID(c.TitleID),
			TitleVersion:  nnclient.TitleVersion(c.TitleVersion),
			DeviceCert:    deviceCert,
		}
		if deviceCert != nil {
			if err := console.DeriveDeviceID(); err != nil {
				return nil, err
			}
		}
		return console, nil
	default:
		return nil, fmt.Errorf("unknown console kind %q", c.Console)
	}
}

// client builds an account client for the configured console and
// credentials.
func (c *Config) client() (*nnclient.Client, error) {
	console, err := c.console()
	if err != nil {
		return nil, err
	}

	var identity *tls.Certificate
	if c.IdentityPath != "" {
		p12, err := os.ReadFile(c.IdentityPath)
		if err != nil {
			return nil, fmt.Errorf("reading client identity: %w", err)
		}
		loaded, err := nnclient.LoadIdentity(p12, c.IdentityPassword)
		if err != nil {
			return nil, fmt.Errorf("decoding client identity: %w", err)
		}
		identity = &loaded
	}

	cacerts, err := c.serverCACerts()
	if err != nil {
		return nil, err
	}

	return nnclient.NewClient(console, identity, cacerts, nnclient.WithHost(c.Host))
}

func (c *Config) serverCACerts() (*x509.CertPool, error) {
	if len(c.ServerCACertPaths) == 0 {
		return nil, nil
	}
	ders := make([][]byte, 0, len(c.ServerCACertPaths))
	for _, path := range c.ServerCACertPaths {
		der, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading server CA certificate: %w", err)
		}
		ders = append(ders, der)
	}
	return nnclient.CertPoolFromDER(ders...)
}
