// Package fs is the status-snapshot upload boundary.
package fs

// Filesystem uploads a named static file with a cache lifetime.
type Filesystem interface {
	UploadStaticFile(filename string, secondsCache int, data []byte) error
}
