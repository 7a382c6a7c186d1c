package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportPhotoKey(t *testing.T) {
	key := ReportPhotoKey("Fish Kill Event!", "IMG_2041.JPG")

	assert.True(t, strings.HasPrefix(key, "reports/fish-kill-event-"), key)
	assert.True(t, strings.HasSuffix(key, ".JPG"), key)

	// No extension on the source file is fine.
	key = ReportPhotoKey("Algae bloom", "photo")
	assert.True(t, strings.HasPrefix(key, "reports/algae-bloom-"), key)
}
