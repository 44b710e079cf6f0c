package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "export.zip")
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return p
}

func TestFind(t *testing.T) {
	c := FromEntries(
		Entry{Path: "export/myconversations.json", Data: []byte("x")},
		Entry{Path: "export/conversations.json", Data: []byte("[]")},
		Entry{Path: "other/conversations.json", Data: []byte("[1]")},
	)

	f, err := c.Conversations()
	require.NoError(t, err)
	assert.Equal(t, "export/conversations.json", f.Path)
	assert.Equal(t, "conversations.json", f.Name)

	data, err := f.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	_, err = c.Sora()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindAtRoot(t *testing.T) {
	c := FromEntries(Entry{Path: "conversations.json", Data: []byte("[]")})
	f, err := c.Conversations()
	require.NoError(t, err)
	assert.Equal(t, "conversations.json", f.Path)
}

func TestGeneratedImages(t *testing.T) {
	c := FromEntries(
		Entry{Path: "user-abc/file-1.PNG"},
		Entry{Path: "user-abc/file-2.webp"},
		Entry{Path: "user-abc/notes.txt"},
		Entry{Path: "dalle-generations/file-3.png"},
		Entry{Path: "x/user-def/img.JPeG"},
	)
	imgs := c.GeneratedImages()
	var paths []string
	for _, f := range imgs {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"user-abc/file-1.PNG", "user-abc/file-2.webp", "x/user-def/img.JPeG"}, paths)
}

func TestFromDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "user-1"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "__MACOSX"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "conversations.json"), []byte("[]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "user-1", "a.png"), []byte("png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "__MACOSX", "conversations.json"), []byte("junk"), 0o644))

	c, err := Open(root)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, 2, c.Len())
	f, err := c.Conversations()
	require.NoError(t, err)
	assert.Equal(t, "conversations.json", f.Path)
	assert.Equal(t, int64(2), f.Size)
	assert.Len(t, c.GeneratedImages(), 1)
}

func TestFromDirNotADirectory(t *testing.T) {
	p := filepath.Join(t.TempDir(), "file.json")
	require.NoError(t, os.WriteFile(p, []byte("{}"), 0o644))
	_, err := FromDir(p)
	assert.Error(t, err)
}

func TestFromZip(t *testing.T) {
	p := writeZip(t, map[string]string{
		"chatgpt/conversations.json":   `[]`,
		"chatgpt/sora.json":            `{"tasks":[]}`,
		"chatgpt/user-xyz/file-01.jpg": "jpg",
	})
	require.True(t, IsZip(p))

	c, err := Open(p)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, 3, c.Len())
	f, err := c.Sora()
	require.NoError(t, err)
	data, err := f.ReadAll()
	require.NoError(t, err)
	assert.JSONEq(t, `{"tasks":[]}`, string(data))

	// each Open starts over
	again, err := f.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, data, again)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}

func TestIsZip(t *testing.T) {
	assert.True(t, IsZip("Export.ZIP"))
	assert.False(t, IsZip("export"))
	assert.False(t, IsZip("export.zip.d/conversations.json"))
}
