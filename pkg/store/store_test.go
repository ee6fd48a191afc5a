package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ssargent/bookdb/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func titles(records []codec.Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.Title)
	}
	return out
}

type recordingObserver struct {
	loads   []error
	appends []error
	counts  []int
}

func (o *recordingObserver) ObserveLoad(_ time.Duration, records int, err error) {
	o.loads = append(o.loads, err)
	o.counts = append(o.counts, records)
}

func (o *recordingObserver) ObserveAppend(_ time.Duration, err error) {
	o.appends = append(o.appends, err)
}

func TestNewStore(t *testing.T) {
	store, err := NewStore(StoreConfig{FilePath: "books.txt"})
	require.NoError(t, err)
	assert.Equal(t, "books.txt", store.Path())

	_, err = NewStore(StoreConfig{})
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestStore_LoadSortsByYearDigits(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "store_load_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "books.txt")
	writeFile(t, path, "Neuromancer/Gibson/0441569595/1984\n"+
		"Dune/Herbert/9780441013593/1965\n"+
		"Harry Potter/Rowling/0747532699/1997 AD\n"+
		"Undated/Anonymous/none/unknown\n"+
		"Children of Dune/Herbert/0399120685/1965\n"+
		"Ancient/Homer/-/800 BC")

	records, err := Load(path)
	require.NoError(t, err)

	// "" < "1965" == "1965" < "1984" < "1997" < "800"
	assert.Equal(t, []string{
		"Undated",
		"Dune",
		"Children of Dune",
		"Neuromancer",
		"Harry Potter",
		"Ancient",
	}, titles(records))
	assert.Equal(t, "1997 AD", records[4].Year)
}

func TestStore_LoadMissingFile(t *testing.T) {
	records, err := Load("/nonexistent/path/books.txt")
	require.Error(t, err)
	assert.Nil(t, records)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "/nonexistent/path/books.txt", notFound.Path)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestStore_LoadMalformedLine(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "store_malformed_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	testCases := []struct {
		name    string
		content string
		line    int
		raw     string
	}{
		{
			name:    "two delimiters",
			content: "Dune/Herbert/9780441013593/1965\nBroken/Author/1999\nOk/Ok/Ok/2000\n",
			line:    2,
			raw:     "Broken/Author/1999",
		},
		{
			name:    "first line",
			content: "only a title\n",
			line:    1,
			raw:     "only a title",
		},
		{
			name:    "blank line in the middle",
			content: "Dune/Herbert/9780441013593/1965\n\nOk/Ok/Ok/2000\n",
			line:    2,
			raw:     "",
		},
		{
			name:    "too many fields",
			content: "A/B/C/D\nE/F/G/H/I",
			line:    2,
			raw:     "E/F/G/H/I",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, "books.txt")
			writeFile(t, path, tc.content)

			records, err := Load(path)
			require.Error(t, err)
			assert.Nil(t, records, "no partial results")

			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, tc.line, loadErr.Line)
			assert.Equal(t, tc.raw, loadErr.Raw)
			assert.Equal(t, path, loadErr.Path)
			assert.ErrorIs(t, err, codec.ErrMalformedRecord)
			assert.Contains(t, err.Error(), codec.Schema)
		})
	}
}

func TestStore_LoadLegacyLeadingBlankLine(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "store_legacy_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "books.txt")
	writeFile(t, path, "\nDune/Herbert/9780441013593/1965\nNeuromancer/Gibson/0441569595/1984")

	records, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune", "Neuromancer"}, titles(records))
}

func TestStore_LoadEmptyFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "store_empty_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "books.txt")
	writeFile(t, path, "")

	records, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_LoadDirectory(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "store_dir_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	_, err = Load(tmpDir)
	require.Error(t, err)

	var ioErr *IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestStore_AppendThenLoad(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "store_append_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "books.txt")
	writeFile(t, path, "Dune/Herbert/9780441013593/1965\nHarry Potter/Rowling/0747532699/1997")

	store, err := NewStore(StoreConfig{FilePath: path})
	require.NoError(t, err)

	err = store.Append(codec.NewRecord("Neuromancer", "Gibson", "0441569595", "1984"))
	require.NoError(t, err)

	records, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune", "Neuromancer", "Harry Potter"}, titles(records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Dune/Herbert/9780441013593/1965\n"+
		"Harry Potter/Rowling/0747532699/1997\n"+
		"Neuromancer/Gibson/0441569595/1984", string(data))
}

func TestStore_AppendCreatesFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "store_append_create_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "books.txt")

	require.NoError(t, Append(path, codec.NewRecord("Dune", "Herbert", "9780441013593", "1965")))
	require.NoError(t, Append(path, codec.NewRecord("Emma", "Austen", "0141439580", "1815")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// No leading blank line and no trailing newline
	assert.Equal(t, "Dune/Herbert/9780441013593/1965\nEmma/Austen/0141439580/1815", string(data))

	records, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Emma", "Dune"}, titles(records))
}

func TestStore_AppendAfterTrailingNewline(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "store_append_newline_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "books.txt")
	writeFile(t, path, "Dune/Herbert/9780441013593/1965\n")

	require.NoError(t, Append(path, codec.NewRecord("Emma", "Austen", "0141439580", "1815")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Dune/Herbert/9780441013593/1965\nEmma/Austen/0141439580/1815", string(data))

	records, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestStore_AppendMissingDirectory(t *testing.T) {
	err := Append("/nonexistent/dir/books.txt", codec.NewRecord("Dune", "Herbert", "978", "1965"))
	require.Error(t, err)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "open", ioErr.Op)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestStore_Observer(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "store_observer_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "books.txt")
	observer := &recordingObserver{}

	store, err := NewStore(StoreConfig{FilePath: path, Fsync: true}, WithObserver(observer))
	require.NoError(t, err)

	_, err = store.Load()
	require.Error(t, err)

	require.NoError(t, store.Append(codec.NewRecord("Dune", "Herbert", "978", "1965")))

	_, err = store.Load()
	require.NoError(t, err)

	require.Len(t, observer.loads, 2)
	assert.ErrorIs(t, observer.loads[0], ErrNotFound)
	assert.NoError(t, observer.loads[1])
	assert.Equal(t, []int{0, 1}, observer.counts)
	require.Len(t, observer.appends, 1)
	assert.NoError(t, observer.appends[0])
}

func TestStore_Stats(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "store_stats_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "books.txt")
	content := "Dune/Herbert/978/1965\nUndated/Anon/none/?\nEmma/Austen/014/1815\nNeuromancer/Gibson/044/1984"
	writeFile(t, path, content)

	store, err := NewStore(StoreConfig{FilePath: path})
	require.NoError(t, err)

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Records)
	assert.Equal(t, int64(len(content)), stats.SizeBytes)
	assert.Equal(t, 1, stats.Undated)
	assert.Equal(t, "1815", stats.FirstKey)
	assert.Equal(t, "1984", stats.LastKey)
}
