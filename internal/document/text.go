package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type textDecoder struct {
	name   string
	decode func([]byte) (string, error)
}

// Candidate encodings in preference order. The last resort replaces invalid
// sequences so plain text never fails on encoding alone.
var textDecoders = []textDecoder{
	{name: "utf-8", decode: decodeUTF8},
	{name: "utf-16", decode: decodeUTF16},
	{name: "windows-1252", decode: strictCharmap(charmap.Windows1252)},
	{name: "iso-8859-1", decode: strictCharmap(charmap.ISO8859_1)},
}

func extractPlainText(_ context.Context, data []byte) (string, error) {
	text, _ := decodeText(data)
	return text, nil
}

// decodeText returns the decoded text and the name of the encoding used.
func decodeText(data []byte) (string, string) {
	for _, dec := range textDecoders {
		if text, err := dec.decode(data); err == nil {
			return text, dec.name
		}
	}
	return strings.ToValidUTF8(string(data), "�"), "lossy"
}

func decodeUTF8(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", errors.New("invalid utf-8")
	}
	return string(data), nil
}

func decodeUTF16(data []byte) (string, error) {
	// ExpectBOM picks the byte order from the BOM and fails without one.
	dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
	out, err := dec.Bytes(data)
	if err != nil {
		return "", fmt.Errorf("utf-16: %w", err)
	}
	return string(out), nil
}

func strictCharmap(enc encoding.Encoding) func([]byte) (string, error) {
	return func(data []byte) (string, error) {
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		if bytes.ContainsRune(out, utf8.RuneError) {
			return "", errors.New("undefined code points")
		}
		return string(out), nil
	}
}
