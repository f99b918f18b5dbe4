package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedUploadType(t *testing.T) {
	assert.True(t, AllowedUploadType("application/pdf"))
	assert.True(t, AllowedUploadType("image/png"))
	assert.True(t, AllowedUploadType(" APPLICATION/PDF "))

	assert.False(t, AllowedUploadType("application/zip"))
	assert.False(t, AllowedUploadType("text/html"))
	assert.False(t, AllowedUploadType(""))
}

func TestStoredFileName(t *testing.T) {
	name := StoredFileName("Site Plan.PDF")
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.NotContains(t, name, " ")

	// Distinct per call; collisions would overwrite stored files.
	assert.NotEqual(t, StoredFileName("a.pdf"), StoredFileName("a.pdf"))

	assert.False(t, strings.Contains(StoredFileName("noext"), "."))
}
