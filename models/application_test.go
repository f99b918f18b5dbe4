package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationRefValid(t *testing.T) {
	valid := []string{"ZC-2026-0142", "SD-2025-0001", "HB-2026-9999", "ZCRX-2026-0001"}
	for _, ref := range valid {
		assert.True(t, ApplicationRef(ref).Valid(), ref)
	}

	invalid := []string{
		"",
		"ZC-2026-142",
		"ZC-26-0142",
		"zc-2026-0142",
		"Z-2026-0142",
		"ZC-2026-01423",
		"ZC_2026_0142",
		" ZC-2026-0142",
	}
	for _, ref := range invalid {
		assert.False(t, ApplicationRef(ref).Valid(), ref)
	}
}

func TestApplicationRefPrefix(t *testing.T) {
	assert.Equal(t, "ZC", ApplicationRef("ZC-2026-0142").Prefix())
	assert.Equal(t, "SD", ApplicationRef("SD-2025-0001").Prefix())
	assert.Equal(t, "", ApplicationRef("not-a-ref").Prefix())
}

func TestWorkflowStateAccessor(t *testing.T) {
	app := ZoningApplication{}
	app.Status = "pending"
	assert.Equal(t, "pending", app.Workflow().Status)

	// The accessor returns the embedded state, not a copy.
	app.Workflow().Status = "in_review"
	assert.Equal(t, "in_review", app.Status)
}
