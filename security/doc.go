// Package security holds the TLS settings shared by the HTTP server and the
// Redis client.
//
//	srv := security.TLSConfig{CertFile: "server.pem", KeyFile: "server-key.pem"}
//	tlsCfg, err := srv.BuildServer()
//
//	cli := security.TLSConfig{CAFile: "ca.pem", ServerName: "redis.internal"}
//	tlsCfg, err = cli.Build()
package security
