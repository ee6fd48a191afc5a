package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ssargent/bookdb/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineWriter(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "line_writer_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	filePath := filepath.Join(tmpDir, "books.txt")

	writer, err := NewLineWriter(LineWriterConfig{FilePath: filePath})
	require.NoError(t, err)
	assert.NotNil(t, writer)

	// Verify file was created
	assert.FileExists(t, filePath)

	// Verify initial size is 0
	assert.Equal(t, int64(0), writer.Size())
	assert.Equal(t, filePath, writer.Path())

	assert.NoError(t, writer.Close())
}

func TestNewLineWriter_InvalidPath(t *testing.T) {
	writer, err := NewLineWriter(LineWriterConfig{FilePath: "/invalid/path/that/cannot/be/created/books.txt"})
	assert.Error(t, err)
	assert.Nil(t, writer)
}

func TestLineWriter_Put(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "line_writer_put_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	filePath := filepath.Join(tmpDir, "books.txt")

	writer, err := NewLineWriter(LineWriterConfig{FilePath: filePath, Fsync: true})
	require.NoError(t, err)
	defer writer.Close()

	offset, err := writer.Put(codec.NewRecord("Dune", "Herbert", "978", "1965"))
	require.NoError(t, err)
	// Offset should be 0 for first record
	assert.Equal(t, int64(0), offset)
	assert.Equal(t, int64(len("Dune/Herbert/978/1965")), writer.Size())

	offset, err = writer.Put(codec.NewRecord("Emma", "Austen", "014", "1815"))
	require.NoError(t, err)
	// Second record starts after the separator
	assert.Equal(t, int64(len("Dune/Herbert/978/1965\n")), offset)

	require.NoError(t, writer.Sync())

	data, err := os.ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, "Dune/Herbert/978/1965\nEmma/Austen/014/1815", string(data))
	assert.Equal(t, int64(len(data)), writer.Size())
}

func TestLineWriter_ReopenExistingFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "line_writer_reopen_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	testCases := []struct {
		name     string
		existing string
		want     string
	}{
		{
			name:     "no trailing newline",
			existing: "Dune/Herbert/978/1965",
			want:     "Dune/Herbert/978/1965\nEmma/Austen/014/1815",
		},
		{
			name:     "trailing newline",
			existing: "Dune/Herbert/978/1965\n",
			want:     "Dune/Herbert/978/1965\nEmma/Austen/014/1815",
		},
		{
			name:     "legacy leading blank line",
			existing: "\nDune/Herbert/978/1965",
			want:     "\nDune/Herbert/978/1965\nEmma/Austen/014/1815",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filePath := filepath.Join(tmpDir, "books.txt")
			writeFile(t, filePath, tc.existing)

			writer, err := NewLineWriter(LineWriterConfig{FilePath: filePath})
			require.NoError(t, err)
			assert.Equal(t, int64(len(tc.existing)), writer.Size())

			_, err = writer.Put(codec.NewRecord("Emma", "Austen", "014", "1815"))
			require.NoError(t, err)
			require.NoError(t, writer.Close())

			data, err := os.ReadFile(filePath)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(data))
		})
	}
}
