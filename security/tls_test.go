package security

import (
	"crypto/tls"
	"testing"

	"github.com/kbukum/labauth/security/tlstest"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TLSConfig
		wantErr bool
	}{
		{"nil", nil, false},
		{"zero", &TLSConfig{}, false},
		{"cert and key", &TLSConfig{CertFile: "c.pem", KeyFile: "k.pem"}, false},
		{"cert without key", &TLSConfig{CertFile: "c.pem"}, true},
		{"key without cert", &TLSConfig{KeyFile: "k.pem"}, true},
		{"client auth without ca", &TLSConfig{CertFile: "c.pem", KeyFile: "k.pem", ClientAuth: true}, true},
		{"client auth", &TLSConfig{CAFile: "ca.pem", CertFile: "c.pem", KeyFile: "k.pem", ClientAuth: true}, false},
		{"tls 1.1", &TLSConfig{MinVersion: tls.VersionTLS11}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *TLSConfig
		client    bool
		servesTLS bool
	}{
		{"nil", nil, false, false},
		{"zero", &TLSConfig{}, false, false},
		{"skip verify", &TLSConfig{SkipVerify: true}, true, false},
		{"ca only", &TLSConfig{CAFile: "ca.pem"}, true, false},
		{"server name", &TLSConfig{ServerName: "redis.internal"}, true, false},
		{"cert and key", &TLSConfig{CertFile: "c.pem", KeyFile: "k.pem"}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.IsEnabled(); got != tt.client {
				t.Errorf("IsEnabled() = %v, want %v", got, tt.client)
			}
			if got := tt.cfg.ServesTLS(); got != tt.servesTLS {
				t.Errorf("ServesTLS() = %v, want %v", got, tt.servesTLS)
			}
		})
	}
}

func TestBuildDisabled(t *testing.T) {
	var cfg TLSConfig
	if got, err := cfg.Build(); got != nil || err != nil {
		t.Errorf("Build() = %v, %v; want nil, nil", got, err)
	}
	if got, err := cfg.BuildServer(); got != nil || err != nil {
		t.Errorf("BuildServer() = %v, %v; want nil, nil", got, err)
	}
}

func TestBuildClient(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	cfg := &TLSConfig{
		CAFile:     certs.CAFile,
		CertFile:   certs.CertFile,
		KeyFile:    certs.KeyFile,
		ServerName: "localhost",
	}
	got, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got.RootCAs == nil || len(got.Certificates) != 1 || got.ServerName != "localhost" {
		t.Errorf("unexpected client config: %+v", got)
	}
	if got.MinVersion != tls.VersionTLS12 {
		t.Errorf("MinVersion = %#x", got.MinVersion)
	}
}

func TestBuildServer(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)

	got, err := (&TLSConfig{CertFile: certs.CertFile, KeyFile: certs.KeyFile, MinVersion: tls.VersionTLS13}).BuildServer()
	if err != nil {
		t.Fatalf("BuildServer: %v", err)
	}
	if len(got.Certificates) != 1 || got.ClientAuth != tls.NoClientCert || got.MinVersion != tls.VersionTLS13 {
		t.Errorf("unexpected server config: %+v", got)
	}

	got, err = (&TLSConfig{CAFile: certs.CAFile, CertFile: certs.CertFile, KeyFile: certs.KeyFile, ClientAuth: true}).BuildServer()
	if err != nil {
		t.Fatalf("BuildServer with client auth: %v", err)
	}
	if got.ClientCAs == nil || got.ClientAuth != tls.RequireAndVerifyClientCert {
		t.Errorf("client auth not configured: %+v", got)
	}
}

func TestBuildErrors(t *testing.T) {
	bad := tlstest.WriteInvalidPEM(t, "bad.pem")
	tests := []struct {
		name  string
		build func() error
	}{
		{"missing ca", func() error { _, err := (&TLSConfig{CAFile: "/nonexistent/ca.pem"}).Build(); return err }},
		{"invalid ca", func() error { _, err := (&TLSConfig{CAFile: bad}).Build(); return err }},
		{"missing client cert", func() error {
			_, err := (&TLSConfig{CertFile: "/nonexistent/c.pem", KeyFile: "/nonexistent/k.pem"}).Build()
			return err
		}},
		{"missing server cert", func() error {
			_, err := (&TLSConfig{CertFile: "/nonexistent/c.pem", KeyFile: "/nonexistent/k.pem"}).BuildServer()
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.build(); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
