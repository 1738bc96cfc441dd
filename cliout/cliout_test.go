package cliout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFormat(t *testing.T) {
	defer func() { _ = SetFormat("default") }()

	require.NoError(t, SetFormat("json"))
	assert.True(t, IsJSON())

	require.NoError(t, SetFormat(""))
	assert.False(t, IsJSON())

	err := SetFormat("yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestStatusBadgeColors(t *testing.T) {
	ForceColor()
	defer ForceColor()

	tests := []struct {
		status string
		color  string
	}{
		{"PASS", BrightGreen},
		{"SKIP", BrightYellow},
		{"FAIL", BrightRed},
	}
	for _, tt := range tests {
		badge := StatusBadge(tt.status)
		assert.True(t, strings.HasPrefix(badge, tt.color), "badge %q should start with color code", tt.status)
		assert.Contains(t, badge, "["+tt.status+"]")
	}

	// Unknown statuses pass through unstyled.
	assert.Equal(t, "[PENDING]", StatusBadge("PENDING"))
}

func TestStatusBadgeNoColor(t *testing.T) {
	NoColor()
	defer ForceColor()

	assert.Equal(t, "[PASS]", StatusBadge("PASS"))
	assert.Equal(t, "[FAIL]", StatusBadge("FAIL"))
}

func TestMutedNoColor(t *testing.T) {
	NoColor()
	defer ForceColor()

	assert.Equal(t, "quiet", Muted("quiet"))
}
