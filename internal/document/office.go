package document

import (
	"bytes"
	"context"

	"code.sajari.com/docconv"
)

func extractDOCX(_ context.Context, data []byte) (string, error) {
	text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	return text, err
}

func extractDOC(_ context.Context, data []byte) (string, error) {
	text, _, err := docconv.ConvertDoc(bytes.NewReader(data))
	return text, err
}
