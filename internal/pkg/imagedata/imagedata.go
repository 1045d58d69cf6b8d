package imagedata

import (
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrNotDataURI   = errors.New("not a data URI")
	ErrBadImageData = errors.New("invalid base64 image payload")
)

// Decode разбирает inline-изображение вида data:image/<ext>;base64,<payload>
// и возвращает расширение и декодированные байты.
func Decode(dataURI string) (ext string, payload []byte, err error) {
	if !strings.HasPrefix(dataURI, "data:image/") {
		return "", nil, ErrNotDataURI
	}

	meta, encoded, found := strings.Cut(dataURI, ";base64,")
	if !found || encoded == "" {
		return "", nil, ErrNotDataURI
	}

	ext = strings.TrimPrefix(meta, "data:image/")
	if ext == "" || strings.ContainsAny(ext, "/\\.") {
		return "", nil, ErrNotDataURI
	}

	payload, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, ErrBadImageData
	}
	if len(payload) == 0 {
		return "", nil, ErrBadImageData
	}

	return ext, payload, nil
}

// IsDataURI сообщает, выглядит ли строка как inline-изображение.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:image/")
}
