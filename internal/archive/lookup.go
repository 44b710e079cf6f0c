package archive

import (
	"errors"
	"strings"
)

const (
	ConversationsName = "conversations.json"
	SoraName          = "sora.json"

	// generated images live under folders such as "user-AbC123/".
	userContentMarker = "user-"
)

var ErrNotFound = errors.New("file not found in archive")

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// Find returns the first file whose path is name or ends in "/"+name.
// When an archive carries duplicates the earliest in enumeration order wins.
func (c *Collection) Find(name string) (File, error) {
	for _, f := range c.files {
		if f.Path == name || strings.HasSuffix(f.Path, "/"+name) {
			return f, nil
		}
	}
	return File{}, ErrNotFound
}

func (c *Collection) Conversations() (File, error) {
	return c.Find(ConversationsName)
}

func (c *Collection) Sora() (File, error) {
	return c.Find(SoraName)
}

// GeneratedImages returns the image files stored under user-content folders.
func (c *Collection) GeneratedImages() []File {
	var out []File
	for _, f := range c.files {
		if IsGeneratedImage(f) {
			out = append(out, f)
		}
	}
	return out
}

func IsGeneratedImage(f File) bool {
	return strings.Contains(f.Path, userContentMarker) && imageExts[f.Ext()]
}
