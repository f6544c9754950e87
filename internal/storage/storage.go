package storage

import (
	"path"

	"github.com/google/uuid"
)

// Store is the object-storage boundary. Upload persists a blob under the
// given path, PublicURL derives the URL clients fetch it from (a pure path
// computation once the upload succeeded), and Remove is the compensation hook
// for a row write that fails after its upload already went through.
type Store interface {
	Upload(path string, blob []byte) error
	Remove(path string) error
	PublicURL(path string) string
}

// ObjectPath builds a collision-free object name under prefix, keeping the
// original file extension.
func ObjectPath(prefix, filename string) string {
	return path.Join(prefix, uuid.NewString()+path.Ext(filename))
}
