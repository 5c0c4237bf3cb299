package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaTypeFor(t *testing.T) {
	cases := map[string]string{
		"pack.mcpack":   "application/zip",
		"paper-123.jar": "application/java-archive",
		"noextension":   "application/octet-stream",
		"weird.x9z":     "application/octet-stream",
		"doc.json":      "application/json",
		"trailingdot.":  "application/octet-stream",
	}
	for name, want := range cases {
		assert.Equal(t, want, MediaTypeFor(name), "file %q", name)
	}
}
