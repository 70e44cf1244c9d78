// Package document converts uploaded bytes into plain text.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format is a supported upload format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOC  Format = "doc"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// ErrUnsupportedFormat is returned when no supported format can be determined.
var ErrUnsupportedFormat = errors.New("unsupported document format")

var mimeFormats = map[string]Format{
	"application/pdf":    FormatPDF,
	"application/msword": FormatDOC,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FormatDOCX,
	"text/plain": FormatTXT,
}

var extensionFormats = map[string]Format{
	".pdf":  FormatPDF,
	".doc":  FormatDOC,
	".docx": FormatDOCX,
	".txt":  FormatTXT,
}

// AllowedMIMETypes lists the content types accepted for upload.
func AllowedMIMETypes() []string {
	return []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"text/plain",
	}
}

// ParseFormat maps a MIME type or a bare format name ("pdf", ".docx") to a Format.
// MIME parameters such as charset are ignored.
func ParseFormat(declared string) (Format, error) {
	value := strings.ToLower(strings.TrimSpace(declared))
	if idx := strings.Index(value, ";"); idx >= 0 {
		value = strings.TrimSpace(value[:idx])
	}
	if value == "" {
		return "", ErrUnsupportedFormat
	}

	if format, ok := mimeFormats[value]; ok {
		return format, nil
	}
	if format, ok := extensionFormats["."+strings.TrimPrefix(value, ".")]; ok {
		return format, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, declared)
}

// FormatFromFilename derives the format from a file extension.
func FormatFromFilename(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(name)))
	if format, ok := extensionFormats[ext]; ok {
		return format, nil
	}
	return "", fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
}

var (
	pdfMagic  = []byte("%PDF-")
	zipMagic  = []byte("PK\x03\x04")
	oleMagic  = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	utf16BOMs = [][]byte{{0xFF, 0xFE}, {0xFE, 0xFF}}
)

// Sniff guesses the format from leading magic bytes. Any zip container is
// assumed to be DOCX and any OLE container DOC.
func Sniff(data []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return FormatPDF, nil
	case bytes.HasPrefix(data, zipMagic):
		return FormatDOCX, nil
	case bytes.HasPrefix(data, oleMagic):
		return FormatDOC, nil
	}

	for _, bom := range utf16BOMs {
		if bytes.HasPrefix(data, bom) {
			return FormatTXT, nil
		}
	}

	sample := data
	if len(sample) > 512 {
		sample = sample[:512]
		// Do not judge a rune cut in half by the sample boundary.
		for i := 0; i < utf8.UTFMax && len(sample) > 0 && !utf8.Valid(sample); i++ {
			sample = sample[:len(sample)-1]
		}
	}
	if len(sample) > 0 && utf8.Valid(sample) && !bytes.ContainsRune(sample, 0) {
		return FormatTXT, nil
	}

	return "", fmt.Errorf("%w: unrecognised content", ErrUnsupportedFormat)
}

// Resolve picks the format for an upload. A specific declared type wins,
// then the filename extension, then content sniffing. Generic declarations
// such as application/octet-stream fall through to the later steps.
func Resolve(declared, filename string, data []byte) (Format, error) {
	if !isGenericType(declared) {
		if format, err := ParseFormat(declared); err == nil {
			return format, nil
		}
	}

	if filename != "" {
		if format, err := FormatFromFilename(filename); err == nil {
			return format, nil
		}
	}

	return Sniff(data)
}

func isGenericType(declared string) bool {
	value := strings.ToLower(strings.TrimSpace(declared))
	if idx := strings.Index(value, ";"); idx >= 0 {
		value = strings.TrimSpace(value[:idx])
	}
	return value == "" || value == "application/octet-stream" || value == "binary/octet-stream"
}
