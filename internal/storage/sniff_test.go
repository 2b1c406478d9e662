package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSniffMatches(t *testing.T) {
	pngHead := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}
	jpegHead := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	pdfHead := []byte("%PDF-1.7 ")
	zipHead := []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00}

	cases := []struct {
		name     string
		head     []byte
		declared string
		want     bool
	}{
		{"png matches", pngHead, "image/png", true},
		{"jpeg matches", jpegHead, "image/jpeg", true},
		{"pdf matches", pdfHead, "application/pdf", true},
		{"zip matches", zipHead, "application/zip", true},
		{"docx rides zip signature", zipHead, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", true},
		{"xlsx rides zip signature", zipHead, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", true},
		{"png bytes declared jpeg", pngHead, "image/jpeg", false},
		{"declared type not allowed", pdfHead, "application/x-msdownload", false},
		{"exe bytes declared pdf", []byte{0x4D, 0x5A, 0x90, 0x00, 0x03}, "application/pdf", false},
		{"truncated head", []byte{0x89, 0x50}, "image/png", false},
		{"empty head", nil, "image/png", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SniffMatches(tc.head, tc.declared))
		})
	}
}
