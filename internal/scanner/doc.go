// Package scanner discovers ticket-tagged backup folders on disk.
package scanner
