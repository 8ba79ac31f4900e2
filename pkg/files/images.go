package files

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotDataURI is returned for image sources that are not base64 data URIs.
var ErrNotDataURI = errors.New("not a base64 data URI")

// DecodeDataURI splits "data:<mime>;base64,<payload>" into its MIME type and
// decoded bytes.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return "", nil, ErrNotDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return strings.TrimSuffix(meta, ";base64"), data, nil
}

// SaveImage writes the image in uri to dir under the download name for
// prompt and returns the file path.
func SaveImage(dir, prompt, uri string) (string, error) {
	_, data, err := DecodeDataURI(uri)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, ImageFileName(prompt))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return path, nil
}
