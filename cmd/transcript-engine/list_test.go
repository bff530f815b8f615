// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestClip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short string untouched", "abc", 10, "abc"},
		{"exact length untouched", "abcde", 5, "abcde"},
		{"long string clipped", "abcdefghij", 8, "abcde..."},
		{"multibyte clipped on rune boundary", strings.Repeat("é", 20), 10, strings.Repeat("é", 7) + "..."},
		{"cjk project name", strings.Repeat("プ", 30), 12, strings.Repeat("プ", 9) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clip(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got), "clip must never cut mid-rune")
		})
	}
}
