package util

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

// AllowedDocumentMimeTypes lists the MIME prefixes or exact types
// accepted for evidence uploads. Office formats sniff as octet-stream
// or zip, so both stay allowed; the extension whitelist is the second
// gate.
var AllowedDocumentMimeTypes = []string{
	MimePDF,
	MimeImage,
	"text/plain",
	"application/zip",
	MimeOctetStream,
}

// ValidateMimeType sniffs the real content type from the first bytes of
// the reader and checks it against the allowed list. The caller must
// rewind the reader afterwards.
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}
	return mimeType, errors.New("invalid file type: " + mimeType)
}

// IsImage reports whether the sniffed type is an image.
func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}
