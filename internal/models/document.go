package models

import (
	"path/filepath"
	"strings"
)

// UploadedDocument is the resume file received for a single analysis. It is
// never persisted; the only on-disk copy is the overwritten temp file.
type UploadedDocument struct {
	Filename string
	Data     []byte
}

func (d *UploadedDocument) Extension() string {
	return strings.ToLower(filepath.Ext(d.Filename))
}
