package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	h := New(
		WithKind("StepReport"),
		WithMetadata("step", "doctrine"),
		WithTimestamp(time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))),
	)

	assert.Equal(t, "StepReport", h.Kind)
	assert.Equal(t, "stepreport.bbinstall.backbee.com/v1", h.APIVersion)
	assert.Equal(t, map[string]string{
		"step":            "doctrine",
		MetadataTimestamp: "2025-03-01T11:00:00Z",
	}, h.Metadata)
}

func TestNew_DefaultsTimestamp(t *testing.T) {
	h := New()
	assert.Empty(t, h.Kind)
	_, err := time.Parse(time.RFC3339, h.Metadata[MetadataTimestamp])
	assert.NoError(t, err)
}
