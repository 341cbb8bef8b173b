package parse

import (
	_ "embed"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcuny/git-stats/schema"
)

//go:embed testdata/sample_history.txt
var sampleHistory []byte

func TestStreamRecords(t *testing.T) {
	stream := NewStream(sampleHistory)

	var records []schema.CommitRecord
	for rec := range stream.Records() {
		records = append(records, rec)
	}

	require.Len(t, records, 7)
	assert.Equal(t, 0, stream.Malformed())

	first := records[0]
	assert.Equal(t, "1111111111111111111111111111111111111111", first.SHA)
	assert.Equal(t, schema.Identity{Name: "Alice", Email: "alice@example.com"}, first.Author)
	assert.Equal(t, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), first.Timestamp.UTC())
	require.Len(t, first.Files, 1)
	assert.Equal(t, schema.FileChange{Path: "src/feature_x.py", Added: 5, Removed: 0}, first.Files[0])

	// The rename commit carries only the new path, with zero counts.
	rename := records[5]
	require.Len(t, rename.Files, 1)
	assert.Equal(t, "src/feature_renamed.py", rename.Files[0].Path)
	assert.Equal(t, "src/feature_x.py", rename.Files[0].OldPath)
	assert.Equal(t, 0, rename.Files[0].Added)
	assert.Equal(t, 0, rename.Files[0].Removed)
}

func TestStreamIsRestartable(t *testing.T) {
	stream := NewStream(sampleHistory)

	countPass := func() int {
		n := 0
		for range stream.Records() {
			n++
		}
		return n
	}

	assert.Equal(t, countPass(), countPass())
	assert.Equal(t, 0, stream.Malformed())
}

func TestStreamEarlyTermination(t *testing.T) {
	stream := NewStream(sampleHistory)

	n := 0
	for range stream.Records() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestStreamCountsMalformedBlocks(t *testing.T) {
	raw := []byte(`garbage preamble that is not a commit
1111111111111111111111111111111111111111
Author: Alice <alice@example.com>
Date: 2024-01-05T10:00:00+00:00

Good commit

3	1	src/a.py
2222222222222222222222222222222222222222
Date: 2024-02-05T10:00:00+00:00

No author here

4	2	src/a.py
3333333333333333333333333333333333333333
Author: Bob <bob@example.com>
Date: 2024-03-05T10:00:00+00:00

Another good commit

1	1	src/b.py
`)

	stream := NewStream(raw)
	var records []schema.CommitRecord
	for rec := range stream.Records() {
		records = append(records, rec)
	}

	require.Len(t, records, 2)
	assert.Equal(t, 2, stream.Malformed()) // preamble + missing author
	assert.Equal(t, "Alice", records[0].Author.Name)
	assert.Equal(t, "Bob", records[1].Author.Name)
}

func TestStreamEmptyInput(t *testing.T) {
	stream := NewStream(nil)
	n := 0
	for range stream.Records() {
		n++
	}
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, stream.Malformed())
}

func TestParseBlock(t *testing.T) {
	tests := []struct {
		name        string
		block       string
		expectedErr error
	}{
		{
			name: "valid block",
			block: "1111111111111111111111111111111111111111\n" +
				"Author: Alice <alice@example.com>\n" +
				"Date: 2024-01-05T10:00:00+00:00\n\nmsg\n\n3\t1\tsrc/a.py\n",
			expectedErr: nil,
		},
		{
			name: "missing sha",
			block: "Author: Alice <alice@example.com>\n" +
				"Date: 2024-01-05T10:00:00+00:00\n\nmsg\n",
			expectedErr: ErrMissingSHA,
		},
		{
			name: "missing author",
			block: "1111111111111111111111111111111111111111\n" +
				"Date: 2024-01-05T10:00:00+00:00\n\nmsg\n",
			expectedErr: ErrMissingAuthor,
		},
		{
			name: "missing date",
			block: "1111111111111111111111111111111111111111\n" +
				"Author: Alice <alice@example.com>\n\nmsg\n",
			expectedErr: ErrMissingDate,
		},
		{
			name: "unparseable date",
			block: "1111111111111111111111111111111111111111\n" +
				"Author: Alice <alice@example.com>\n" +
				"Date: last tuesday\n\nmsg\n",
			expectedErr: ErrMissingDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBlock(tt.block)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseBlockDropsBinaryLines(t *testing.T) {
	block := "1111111111111111111111111111111111111111\n" +
		"Author: Alice <alice@example.com>\n" +
		"Date: 2024-01-05T10:00:00+00:00\n\nmsg\n\n" +
		"-\t-\tassets/logo.png\n" +
		"3\t1\tsrc/a.py\n"

	rec, err := ParseBlock(block)
	require.NoError(t, err)
	require.Len(t, rec.Files, 1)
	assert.Equal(t, "src/a.py", rec.Files[0].Path)
}

func TestParseBlockLooseDateFormat(t *testing.T) {
	block := "1111111111111111111111111111111111111111\n" +
		"Author: Alice <alice@example.com>\n" +
		"Date: 2024-01-05 10:00:00 +0000\n\nmsg\n"

	rec, err := ParseBlock(block)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), rec.Timestamp.UTC())
}

func TestParseChangeLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected schema.FileChange
		ok       bool
	}{
		{"normal change", "3\t1\tsrc/a.py", schema.FileChange{Path: "src/a.py", Added: 3, Removed: 1}, true},
		{"binary dropped", "-\t-\tassets/logo.png", schema.FileChange{}, false},
		{"half-binary keeps known side", "5\t-\tsrc/mixed.bin", schema.FileChange{Path: "src/mixed.bin", Added: 5}, true},
		{"simple rename", "-\t-\told.py => new.py", schema.FileChange{Path: "new.py", OldPath: "old.py"}, true},
		{"rename with counts still zeroed", "8\t1\told.py => new.py", schema.FileChange{Path: "new.py", OldPath: "old.py"}, true},
		{"braced rename", "0\t0\tsrc/{utils => helpers}/file.py", schema.FileChange{Path: "src/helpers/file.py", OldPath: "src/utils/file.py"}, true},
		{"braced rename empty old side", "0\t0\tsrc/{ => sub}/file.py", schema.FileChange{Path: "src/sub/file.py", OldPath: "src/file.py"}, true},
		{"message text ignored", "Refactored the thing", schema.FileChange{}, false},
		{"two-field line ignored", "3\tsrc/a.py", schema.FileChange{}, false},
		{"negative count ignored", "-3\t1\tsrc/a.py", schema.FileChange{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc, ok := parseChangeLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, fc)
			}
		})
	}
}

func TestParseRenamePath(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		expectedOld string
		expectedNew string
	}{
		{"simple rename", "old/file.py => new/file.py", "old/file.py", "new/file.py"},
		{"braced rename", "src/{old => new}/file.py", "src/old/file.py", "src/new/file.py"},
		{"complex braced rename", "a/b/{c/d => e/f}/file.py", "a/b/c/d/file.py", "a/b/e/f/file.py"},
		{"no braces", "old => new", "old", "new"},
		{"unclosed brace", "src/{old => new/file.py", "", ""},
		{"brace without arrow", "src/{oldnew}/file.py", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldPath, newPath := parseRenamePath(tt.path)
			assert.Equal(t, tt.expectedOld, oldPath)
			assert.Equal(t, tt.expectedNew, newPath)
		})
	}
}

// FuzzParseBlock fuzzes commit block parsing with arbitrary text.
func FuzzParseBlock(f *testing.F) {
	seeds := []string{
		string(sampleHistory),
		"1111111111111111111111111111111111111111\nAuthor: Alice <alice@example.com>\nDate: 2024-01-05T10:00:00+00:00\n\n5\t0\tsrc/feature_x.py\n",
		"Author: Bob <bob@example.com>\nDate: 2024-02-10T10:00:00+00:00\n",
		"2222222222222222222222222222222222222222\nAuthor: broken\nDate: not-a-date\n-\t-\tassets/logo.png\n",
		"3333333333333333333333333333333333333333\nAuthor: Carol <c@example.com>\nDate: 2024-03-01T00:00:00+00:00\n0\t0\tsrc/{old => new}/mod.py\n",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, block string) {
		rec, err := ParseBlock(block)
		if err != nil {
			return
		}
		if rec.SHA == "" {
			t.Fatal("well-formed record must have a sha")
		}
		for _, fc := range rec.Files {
			if fc.Path == "" {
				t.Fatalf("file change with empty path: %+v", fc)
			}
			if fc.Added < 0 || fc.Removed < 0 {
				t.Fatalf("negative line counts: %+v", fc)
			}
		}
	})
}

// FuzzParseChangeLine fuzzes the numstat line grammar.
func FuzzParseChangeLine(f *testing.F) {
	seeds := []string{
		"5\t0\tsrc/feature_x.py",
		"-\t-\tassets/logo.png",
		"-\t3\tdata/blob.bin",
		"0\t0\tsrc/{feature_x.py => feature_renamed.py}",
		"0\t0\told_name.py => new_name.py",
		"not a numstat line",
		"12\tmain.go",
		"-5\t0\tweird.go",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, line string) {
		fc, ok := parseChangeLine(line)
		if !ok {
			return
		}
		if fc.Path == "" {
			t.Fatalf("accepted change with empty path from %q", line)
		}
		if fc.Added < 0 || fc.Removed < 0 {
			t.Fatalf("accepted negative counts from %q", line)
		}
		if fc.OldPath != "" && (fc.Added != 0 || fc.Removed != 0) {
			t.Fatalf("rename carried line counts from %q", line)
		}
	})
}
