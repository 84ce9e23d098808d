// Package config manages user-level settings stored at ~/.cgc/config.yaml.
// Every key can also be supplied through a CGC_-prefixed environment
// variable, which takes precedence over the file.
package config
