package security

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

// TLSConfig holds TLS settings for both sides of a connection. The HTTP
// server uses CertFile, KeyFile and, for client certificates, CAFile. The
// Redis client uses it to dial a TLS-enabled server.
type TLSConfig struct {
	// CAFile is a PEM bundle. Clients verify the server against it; a server
	// with ClientAuth set verifies client certificates against it.
	CAFile string `yaml:"ca_file" mapstructure:"ca_file"`

	CertFile string `yaml:"cert_file" mapstructure:"cert_file"`
	KeyFile  string `yaml:"key_file" mapstructure:"key_file"`

	// ServerName overrides the name a client checks on the server certificate.
	ServerName string `yaml:"server_name" mapstructure:"server_name"`

	// SkipVerify disables server certificate verification on clients.
	// Never use it in production.
	SkipVerify bool `yaml:"skip_verify" mapstructure:"skip_verify"`

	// ClientAuth makes a server require a client certificate signed by CAFile.
	ClientAuth bool `yaml:"client_auth" mapstructure:"client_auth"`

	// MinVersion defaults to TLS 1.2.
	MinVersion uint16 `yaml:"min_version" mapstructure:"min_version"`
}

// Validate checks that the settings are consistent.
func (c *TLSConfig) Validate() error {
	if c == nil {
		return nil
	}
	if (c.CertFile != "") != (c.KeyFile != "") {
		return errors.New("tls: cert_file and key_file must be set together")
	}
	if c.ClientAuth && (c.CAFile == "" || c.CertFile == "") {
		return errors.New("tls: client_auth needs ca_file, cert_file and key_file")
	}
	if c.MinVersion != 0 && c.MinVersion < tls.VersionTLS12 {
		return fmt.Errorf("tls: min_version %#x is below TLS 1.2", c.MinVersion)
	}
	return nil
}

// IsEnabled reports whether a client should dial with TLS.
func (c *TLSConfig) IsEnabled() bool {
	if c == nil {
		return false
	}
	return c.SkipVerify || c.CAFile != "" || c.CertFile != "" || c.ServerName != ""
}

// ServesTLS reports whether a server has a certificate to serve.
func (c *TLSConfig) ServesTLS() bool {
	return c != nil && c.CertFile != "" && c.KeyFile != ""
}

// Build returns the client-side tls.Config, or nil when TLS is not enabled.
func (c *TLSConfig) Build() (*tls.Config, error) {
	if !c.IsEnabled() {
		return nil, nil
	}
	cfg := &tls.Config{
		InsecureSkipVerify: c.SkipVerify,
		ServerName:         c.ServerName,
		MinVersion:         c.minVersion(),
	}
	if c.CAFile != "" {
		pool, err := loadPool(c.CAFile)
		if err != nil {
			return nil, err
		}
		cfg.RootCAs = pool
	}
	if c.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("tls: load client certificate: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}
	return cfg, nil
}

// BuildServer returns the server-side tls.Config, or nil when no certificate
// is configured.
func (c *TLSConfig) BuildServer() (*tls.Config, error) {
	if !c.ServesTLS() {
		return nil, nil
	}
	cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("tls: load server certificate: %w", err)
	}
	cfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   c.minVersion(),
	}
	if c.ClientAuth {
		pool, err := loadPool(c.CAFile)
		if err != nil {
			return nil, err
		}
		cfg.ClientCAs = pool
		cfg.ClientAuth = tls.RequireAndVerifyClientCert
	}
	return cfg, nil
}

func (c *TLSConfig) minVersion() uint16 {
	if c.MinVersion == 0 {
		return tls.VersionTLS12
	}
	return c.MinVersion
}

func loadPool(path string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tls: read CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("tls: no certificates in %s", path)
	}
	return pool, nil
}
