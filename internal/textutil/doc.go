// Package textutil provides small text formatting helpers shared by the CLI
// renderers.
package textutil
