package remote

import (
	"mime"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultContentType is used when nothing better can be determined.
const DefaultContentType = "application/octet-stream"

// ContentType picks the content type for an object. The content is sniffed
// first. When the sniffer only reports text/plain or application/octet-stream,
// the type registered for the key's extension is used instead.
func ContentType(key string, data []byte) string {
	byExt := ""
	if ext := strings.ToLower(path.Ext(key)); ext != "" {
		byExt = mime.TypeByExtension(ext)
	}

	if len(data) > 0 {
		mt := mimetype.Detect(data)
		if mt != nil && !mt.Is("text/plain") && !mt.Is(DefaultContentType) {
			return mt.String()
		}
	}

	if byExt != "" {
		return byExt
	}
	if len(data) > 0 {
		return mimetype.Detect(data).String()
	}
	return DefaultContentType
}
