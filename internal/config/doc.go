// Package config loads, validates, and normalizes the ticketsweep
// configuration file.
package config
