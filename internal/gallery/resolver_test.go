// filepath: internal/gallery/resolver_test.go
package gallery

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 3, 4, 0, time.Local)

func fixedClock() time.Time { return fixedNow }

func newTestResolver(t *testing.T, model StorageModel) (*Resolver, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "media")
	caps := Capabilities{Model: model, PendingDelete: model == RegistryInsert}
	return NewResolver(caps, root, nil, fixedClock), root
}

func TestCapabilitiesForAPILevel(t *testing.T) {
	testCases := []struct {
		level int
		want  Capabilities
	}{
		{level: 21, want: Capabilities{Model: DirectPath}},
		{level: 28, want: Capabilities{Model: DirectPath}},
		{level: 29, want: Capabilities{Model: RegistryInsert}},
		{level: 30, want: Capabilities{Model: RegistryInsert, PendingDelete: true}},
		{level: 34, want: Capabilities{Model: RegistryInsert, PendingDelete: true}},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, CapabilitiesForAPILevel(tc.level), "level %d", tc.level)
	}
}

func TestResolve_ImageBytes(t *testing.T) {
	t.Run("DirectPath encodes JPEG", func(t *testing.T) {
		r, root := newTestResolver(t, DirectPath)
		d, err := r.Resolve(NewImageRequest([]byte{1}, Some(80), None[string](), None[string]()))
		require.NoError(t, err)

		assert.Equal(t, "20240501-120304.jpg", d.DisplayName)
		assert.Equal(t, "jpg", d.Extension)
		assert.Equal(t, "Pictures", d.RelativePath)
		assert.Equal(t, Image, d.Kind)
		assert.Equal(t, Some("image/jpeg"), d.MimeType)
		assert.Equal(t, filepath.Join(root, "Pictures", "20240501-120304.jpg"), d.Path)

		assert.NoDirExists(t, filepath.Join(root, "Pictures"), "resolving does not touch the filesystem")
	})

	t.Run("RegistryInsert encodes PNG", func(t *testing.T) {
		r, _ := newTestResolver(t, RegistryInsert)
		d, err := r.Resolve(NewImageRequest([]byte{1}, None[int](), None[string](), None[string]()))
		require.NoError(t, err)

		assert.Equal(t, "20240501-120304.png", d.DisplayName)
		assert.Equal(t, "png", d.Extension)
		assert.Equal(t, Some("image/png"), d.MimeType)
		assert.Empty(t, d.Path)
	})

	t.Run("Generated names follow the timestamp pattern", func(t *testing.T) {
		r := NewResolver(Capabilities{Model: DirectPath}, t.TempDir(), nil, nil)
		d, err := r.Resolve(NewImageRequest([]byte{1}, Some(80), Some(""), None[string]()))
		require.NoError(t, err)
		assert.Regexp(t, `^\d{8}-\d{6}\.jpg$`, d.DisplayName)
	})

	t.Run("Empty buffer", func(t *testing.T) {
		r, _ := newTestResolver(t, DirectPath)
		_, err := r.Resolve(NewImageRequest(nil, Some(80), None[string](), None[string]()))
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestResolve_Names(t *testing.T) {
	r, _ := newTestResolver(t, RegistryInsert)

	testCases := []struct {
		name string
		want string
	}{
		{name: "holiday", want: "holiday.png"},
		{name: "holiday.gif", want: "holiday.gif"},
		{name: "scan.final.jpeg", want: "scan.final.jpeg"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := r.Resolve(NewImageRequest([]byte{1}, None[int](), Some(tc.name), None[string]()))
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.DisplayName)
		})
	}

	for _, bad := range []string{"a/b", `a\b`, ".."} {
		_, err := r.Resolve(NewImageRequest([]byte{1}, None[int](), Some(bad), None[string]()))
		assert.ErrorIs(t, err, ErrInvalidRequest, bad)
	}
}

func TestResolve_Folders(t *testing.T) {
	r, root := newTestResolver(t, DirectPath)

	d, err := r.Resolve(NewImageRequest([]byte{1}, Some(80), Some("a"), Some("/Trips/2024/")))
	require.NoError(t, err)
	assert.Equal(t, "Pictures/Trips/2024", d.RelativePath)
	assert.Equal(t, filepath.Join(root, "Pictures", "Trips", "2024", "a.jpg"), d.Path)

	for _, bad := range []string{"../etc", "Trips/../../x", "/"} {
		_, err := r.Resolve(NewImageRequest([]byte{1}, Some(80), Some("a"), Some(bad)))
		assert.ErrorIs(t, err, ErrInvalidRequest, bad)
	}
}

func TestResolve_Files(t *testing.T) {
	testCases := []struct {
		name     string
		source   string
		isImage  bool
		wantExt  string
		wantMime string
		wantDir  string
	}{
		{name: "Image keeps allowed suffix", source: "/tmp/in/photo.JPG", isImage: true, wantExt: "JPG", wantMime: "image/jpg", wantDir: "Pictures"},
		{name: "Disallowed suffix becomes png", source: "/tmp/in/notes.txt", isImage: true, wantExt: "png", wantMime: "image/png", wantDir: "Pictures"},
		{name: "Missing suffix becomes png", source: "/tmp/in/blob", isImage: true, wantExt: "png", wantMime: "image/png", wantDir: "Pictures"},
		{name: "Video", source: "/tmp/in/clip.mp4", isImage: false, wantExt: "mp4", wantMime: "video/mp4", wantDir: "Movies"},
		{name: "Dot in directory only", source: "/tmp/in.d/clip", isImage: false, wantExt: "png", wantMime: "video/png", wantDir: "Movies"},
	}

	r, _ := newTestResolver(t, RegistryInsert)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := r.Resolve(NewFileRequest(Some(tc.source), None[string](), None[string](), tc.isImage))
			require.NoError(t, err)
			assert.Equal(t, tc.wantExt, d.Extension)
			assert.Equal(t, Some(tc.wantMime), d.MimeType)
			assert.Equal(t, tc.wantDir, d.RelativePath)
			assert.Equal(t, "20240501-120304."+tc.wantExt, d.DisplayName)
		})
	}

	t.Run("DirectPath uses the extension table", func(t *testing.T) {
		direct, _ := newTestResolver(t, DirectPath)
		d, err := direct.Resolve(NewFileRequest(Some("/tmp/in/clip.mov"), None[string](), None[string](), false))
		require.NoError(t, err)
		assert.Equal(t, Some("video/quicktime"), d.MimeType)

		d, err = direct.Resolve(NewFileRequest(Some("/tmp/in/raw.xyz"), None[string](), None[string](), false))
		require.NoError(t, err)
		assert.False(t, d.MimeType.Present())
	})

	t.Run("Missing source path", func(t *testing.T) {
		_, err := r.Resolve(NewFileRequest(None[string](), None[string](), None[string](), true))
		assert.ErrorIs(t, err, ErrInvalidRequest)
		_, err = r.Resolve(NewFileRequest(Some(" "), None[string](), None[string](), true))
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestOptional(t *testing.T) {
	assert.False(t, None[int]().Present())
	assert.Equal(t, 7, None[int]().OrElse(7))
	assert.Nil(t, None[string]().Ptr())

	v, ok := Some(3).Get()
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 3, *Some(3).Ptr())

	n := 5
	assert.Equal(t, Some(5), FromPtr(&n))
	assert.Equal(t, None[int](), FromPtr[int](nil))
}
