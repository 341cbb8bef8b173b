package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected string
	}{
		{"high band at threshold", 0.7, "High"},
		{"high band above threshold", 0.95, "High"},
		{"medium band at threshold", 0.4, "Medium"},
		{"medium band below high", 0.699, "Medium"},
		{"low band", 0.399, "Low"},
		{"zero score", 0.0, "Low"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.score))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	// Colored output still contains the plain label text.
	assert.Contains(t, GetColorLabel(0.8), "High")
	assert.Contains(t, GetColorLabel(0.5), "Medium")
	assert.Contains(t, GetColorLabel(0.1), "Low")
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		expected string
	}{
		{"short path unchanged", "src/main.py", 40, "src/main.py"},
		{"long path truncated with prefix ellipsis", "src/deeply/nested/module/file.py", 15, "...dule/file.py"},
		{"tiny width leaves path alone", "src/main.py", 3, "src/main.py"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncatePath(tt.path, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, got)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, got)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestNormalizeRepoFilePath(t *testing.T) {
	tests := []struct {
		name        string
		repoPath    string
		userPath    string
		expected    string
		expectError bool
	}{
		{"relative path passes through", "/repo", "src/main.py", "src/main.py", false},
		{"dot prefix stripped", "/repo", "./src/main.py", "src/main.py", false},
		{"absolute path inside repo", "/repo", "/repo/src/main.py", "src/main.py", false},
		{"escape attempt rejected", "/repo", "../outside.py", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeRepoFilePath(tt.repoPath, tt.userPath)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}
