// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestInitColors(t *testing.T) {
	original := color.NoColor
	defer func() { color.NoColor = original }()

	color.NoColor = false
	InitColors(false)
	assert.False(t, color.NoColor, "flag off leaves detection alone")

	InitColors(true)
	assert.True(t, color.NoColor)
}

func TestStatePlainWhenDisabled(t *testing.T) {
	original := color.NoColor
	defer func() { color.NoColor = original }()
	color.NoColor = true

	for _, w := range []string{"present", "missing", "conflict", "unknown"} {
		assert.Equal(t, w, State(w))
	}
	assert.Equal(t, "Database", Label("Database"))
}

func TestStateColors(t *testing.T) {
	original := color.NoColor
	defer func() { color.NoColor = original }()
	color.NoColor = false

	assert.Equal(t, green.Sprint("present"), State("present"))
	assert.Equal(t, red.Sprint("missing"), State("missing"))
	assert.Equal(t, red.Sprint("conflict"), State("conflict"))
	assert.Equal(t, yellow.Sprint("unknown"), State("unknown"))
}
