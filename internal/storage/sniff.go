package storage

import "bytes"

// fileSignature pairs a magic-number prefix with the MIME type it proves.
type fileSignature struct {
	prefix []byte
	offset int
	mime   string
}

var fileSignatures = []fileSignature{
	{prefix: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, mime: "image/png"},
	{prefix: []byte{0xFF, 0xD8, 0xFF}, mime: "image/jpeg"},
	{prefix: []byte("GIF87a"), mime: "image/gif"},
	{prefix: []byte("GIF89a"), mime: "image/gif"},
	{prefix: []byte("%PDF-"), mime: "application/pdf"},
	// docx/xlsx and plain zip archives share the zip container signature.
	{prefix: []byte{0x50, 0x4B, 0x03, 0x04}, mime: "application/zip"},
	{prefix: []byte("RIFF"), mime: "image/webp", offset: 0},
}

// zip-container types accepted under the zip signature.
var zipAliases = map[string]struct{}{
	"application/zip": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       {},
}

// AllowedUploadTypes is the closed set of MIME types attachments may declare.
var AllowedUploadTypes = map[string]struct{}{
	"image/png":       {},
	"image/jpeg":      {},
	"image/gif":       {},
	"image/webp":      {},
	"application/pdf": {},
	"application/zip": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       {},
}

// SniffMatches reports whether the leading bytes of an upload carry the magic
// number for the declared MIME type. Declared types outside the allowed set
// always fail.
func SniffMatches(head []byte, declared string) bool {
	if _, ok := AllowedUploadTypes[declared]; !ok {
		return false
	}
	for _, sig := range fileSignatures {
		if len(head) < sig.offset+len(sig.prefix) {
			continue
		}
		if !bytes.Equal(head[sig.offset:sig.offset+len(sig.prefix)], sig.prefix) {
			continue
		}
		if sig.mime == declared {
			return true
		}
		if sig.mime == "application/zip" {
			if _, ok := zipAliases[declared]; ok {
				return true
			}
		}
	}
	return false
}
