// Package config loads service configuration with viper.
//
// LoadConfig reads an optional YAML file, an optional .env file (godotenv) and
// the process environment, in that order of increasing precedence, then
// unmarshals into the caller's struct. Secrets such as the token signing key
// are expected from the environment or .env, never from the YAML file.
package config
