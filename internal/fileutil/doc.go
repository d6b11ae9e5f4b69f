// Package fileutil provides the filesystem primitives behind size
// measurement and folder relocation.
package fileutil
