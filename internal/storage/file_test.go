// filepath: internal/storage/file_test.go
package storage

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingWriter remembers the size of every Write call.
type recordingWriter struct {
	bytes.Buffer
	sizes []int
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.sizes = append(w.sizes, len(p))
	return w.Buffer.Write(p)
}

type failingWriter struct{ after int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errors.New("disk full")
	}
	w.after--
	return len(p), nil
}

func TestCopyChunked(t *testing.T) {
	t.Run("Respects chunk size", func(t *testing.T) {
		payload := bytes.Repeat([]byte("x"), 2500)
		dst := &recordingWriter{}

		n, err := CopyChunked(dst, bytes.NewReader(payload), RegistryChunkSize)
		require.NoError(t, err)
		assert.Equal(t, int64(2500), n)
		assert.Equal(t, payload, dst.Bytes())
		for _, size := range dst.sizes {
			assert.LessOrEqual(t, size, RegistryChunkSize)
		}
	})

	t.Run("Write error is returned", func(t *testing.T) {
		payload := bytes.Repeat([]byte("x"), 5000)
		n, err := CopyChunked(&failingWriter{after: 2}, bytes.NewReader(payload), RegistryChunkSize)
		assert.Error(t, err)
		assert.Equal(t, int64(2*RegistryChunkSize), n)
	})

	t.Run("Empty source", func(t *testing.T) {
		n, err := CopyChunked(io.Discard, strings.NewReader(""), DirectChunkSize)
		assert.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.jpg")

	t.Run("Writes content", func(t *testing.T) {
		err := WriteFileAtomic(path, func(w io.Writer) error {
			_, err := w.Write([]byte("hello"))
			return err
		})
		require.NoError(t, err)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(content))
	})

	t.Run("Failure keeps previous content and leaves no temp file", func(t *testing.T) {
		err := WriteFileAtomic(path, func(w io.Writer) error {
			_, _ = w.Write([]byte("partial"))
			return errors.New("encoder exploded")
		})
		assert.EqualError(t, err, "encoder exploded")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(content))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("Concurrent writers never tear the file", func(t *testing.T) {
		payloads := [][]byte{
			bytes.Repeat([]byte("a"), 64*1024),
			bytes.Repeat([]byte("b"), 64*1024),
			bytes.Repeat([]byte("c"), 64*1024),
		}
		var wg sync.WaitGroup
		for _, p := range payloads {
			wg.Add(1)
			go func(p []byte) {
				defer wg.Done()
				assert.NoError(t, WriteFileAtomic(path, func(w io.Writer) error {
					_, err := w.Write(p)
					return err
				}))
			}(p)
		}
		wg.Wait()

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		matched := false
		for _, p := range payloads {
			if bytes.Equal(content, p) {
				matched = true
			}
		}
		assert.True(t, matched, "file must hold exactly one complete payload")
	})

	t.Run("Missing directory", func(t *testing.T) {
		err := WriteFileAtomic(filepath.Join(dir, "nope", "a.jpg"), func(w io.Writer) error { return nil })
		assert.Error(t, err)
	})
}

func TestCollectionPath(t *testing.T) {
	root := t.TempDir()

	dir, err := CollectionPath(root, "Movies/Clips")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Movies", "Clips"), dir)
	assert.NoDirExists(t, dir)

	for _, rel := range []string{"../outside", "Pictures/../../x", "", "."} {
		_, err := CollectionPath(root, rel)
		assert.ErrorIs(t, err, ErrPathTraversal, rel)
	}
}

func TestKeyAndPendingName(t *testing.T) {
	assert.Equal(t, "Pictures/a.png", Key("Pictures", "a.png"))
	assert.Equal(t, "Movies/Clips/b.mp4", Key("Movies/Clips", "b.mp4"))
	assert.Equal(t, ".pending-1700000000-a.png", PendingName("a.png", 1700000000))
}
