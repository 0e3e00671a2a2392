package main

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionFromSettings(t *testing.T) {
	rev := debug.BuildSetting{Key: "vcs.revision", Value: "0f1e2d3c4b5a"}
	when := debug.BuildSetting{Key: "vcs.time", Value: "2026-10-01T08:30:00Z"}

	tests := []struct {
		name       string
		settings   []debug.BuildSetting
		wantCommit string
		wantDate   string
	}{
		{name: "no vcs info", wantCommit: "unknown", wantDate: "unknown"},
		{name: "clean build", settings: []debug.BuildSetting{rev, when}, wantCommit: "0f1e2d3", wantDate: "2026-10-01T08:30:00Z"},
		{
			name:       "modified tree",
			settings:   []debug.BuildSetting{{Key: "vcs.modified", Value: "true"}, rev},
			wantCommit: "0f1e2d3-dirty",
			wantDate:   "unknown",
		},
		{
			name:       "truncated revision",
			settings:   []debug.BuildSetting{{Key: "vcs.revision", Value: "0f1"}, when},
			wantCommit: "unknown",
			wantDate:   "2026-10-01T08:30:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotCommit, gotDate := versionFromSettings(tt.settings)
			assert.Equal(t, tt.wantCommit, gotCommit)
			assert.Equal(t, tt.wantDate, gotDate)
		})
	}
}
