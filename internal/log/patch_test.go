// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Logger_Patch(t *testing.T) {
	t.Parallel()

	parent := New(SetWriter(io.Discard), SetLevel(Info))
	child := parent.New(SetLevel(Debug))
	grandChild := child.New()

	parent.Patch(SetLevel(Error), SetColour(true))

	for _, logger := range []*Logger{parent, child, grandChild} {
		assert.Equal(t, Error, *logger.settings.level)
		assert.True(t, *logger.settings.colour)
	}
}

func Test_Logger_PatchLevel(t *testing.T) {
	t.Parallel()

	logger := New(SetWriter(io.Discard))
	child := logger.New()

	child.PatchLevel(Trace)

	assert.Equal(t, Info, *logger.settings.level)
	assert.Equal(t, Trace, *child.settings.level)
}
