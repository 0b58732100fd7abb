// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"io"
	"os"
)

type settings struct {
	writer  io.Writer
	level   *Level
	colour  *bool
	caller  callerSettings
	context []contextKeyValues
}

type contextKeyValues struct {
	key    string
	values []string
}

func newSettings(options []Option) (settings settings) {
	for _, option := range options {
		option(&settings)
	}
	return settings
}

// mergeWith sets values for each unset field
// of the receiver from the other settings.
func (s *settings) mergeWith(other settings) {
	if s.writer == nil {
		s.writer = other.writer
	}

	if s.level == nil && other.level != nil {
		value := *other.level
		s.level = &value
	}

	if s.colour == nil && other.colour != nil {
		value := *other.colour
		s.colour = &value
	}

	s.caller.mergeWith(other.caller)

	if len(other.context) > 0 {
		own := s.context
		s.context = nil
		s.addContexts(other.context)
		s.addContexts(own)
	}
}

// overrideWith sets the fields set in other on the receiver.
func (s *settings) overrideWith(other settings) {
	if other.writer != nil {
		s.writer = other.writer
	}

	if other.level != nil {
		value := *other.level
		s.level = &value
	}

	if other.colour != nil {
		value := *other.colour
		s.colour = &value
	}

	s.caller.overrideWith(other.caller)

	s.addContexts(other.context)
}

func (s *settings) addContexts(context []contextKeyValues) {
	for _, kv := range context {
		for _, value := range kv.values {
			AddContext(kv.key, value)(s)
		}
	}
}

func (s *settings) setDefaults() {
	if s.writer == nil {
		s.writer = os.Stdout
	}

	if s.level == nil {
		value := Info
		s.level = &value
	}

	if s.colour == nil {
		value := false
		s.colour = &value
	}

	s.caller.setDefaults()
}
