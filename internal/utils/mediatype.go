package utils

import (
	"mime"
	"strings"
)

// Overrides for extensions the platform MIME table gets wrong or does
// not know. Keys are extensions without the leading dot.
var customMediaTypes = map[string]string{
	"mcpack": "application/zip",
	"jar":    "application/java-archive",
}

// MediaTypeFor maps a file name to a content type. Unknown extensions
// and extensionless names fall back to application/octet-stream.
func MediaTypeFor(fileName string) string {
	ext := fileExtension(fileName)
	if t, ok := customMediaTypes[ext]; ok {
		return t
	}
	if ext != "" {
		if t := mime.TypeByExtension("." + ext); t != "" {
			return t
		}
	}
	return "application/octet-stream"
}

func fileExtension(fileName string) string {
	i := strings.LastIndexByte(fileName, '.')
	if i == -1 {
		return ""
	}
	return fileName[i+1:]
}
