// Package archive presents an export archive (an unpacked folder or a .zip)
// as one flat, ordered collection of files addressed by relative path.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
)

// File is one regular file inside an archive.
type File struct {
	Name string // base name, e.g. "conversations.json"
	Path string // slash-separated path relative to the archive root
	Size int64

	open func() (io.ReadCloser, error)
}

// Open returns a reader over the file contents. Every call starts a fresh
// reader, so the same File can be consumed by several aggregators.
func (f File) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, fmt.Errorf("archive: %s has no content", f.Path)
	}
	return f.open()
}

// ReadAll reads the whole file.
func (f File) ReadAll() ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Ext returns the lowercased extension including the dot.
func (f File) Ext() string {
	return strings.ToLower(path.Ext(f.Name))
}

// Collection is a read-only ordered set of files. It is built once per
// upload and may be shared between goroutines.
type Collection struct {
	files  []File
	closer io.Closer
}

// Entry is an in-memory file used by FromEntries.
type Entry struct {
	Path string
	Data []byte
}

// FromEntries builds a collection from in-memory contents, keeping the given
// order.
func FromEntries(entries ...Entry) *Collection {
	c := &Collection{}
	for _, e := range entries {
		data := e.Data
		p := strings.TrimPrefix(path.Clean("/"+e.Path), "/")
		c.files = append(c.files, File{
			Name: path.Base(p),
			Path: p,
			Size: int64(len(data)),
			open: func() (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader(data)), nil
			},
		})
	}
	return c
}

// FromFS walks fsys in lexical order and collects every regular file.
func FromFS(fsys fs.FS) (*Collection, error) {
	c := &Collection{}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "." {
				return err
			}
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			if d.Name() == "__MACOSX" {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		var size int64
		if info, err := d.Info(); err == nil {
			size = info.Size()
		}
		name := p
		c.files = append(c.files, File{
			Name: d.Name(),
			Path: p,
			Size: size,
			open: func() (io.ReadCloser, error) {
				return fsys.Open(name)
			},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FromDir collects the files of an unpacked export folder.
func FromDir(root string) (*Collection, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}
	return FromFS(os.DirFS(root))
}

// FromZip collects the files of a zip export. The returned collection keeps
// the zip open until Close is called.
func FromZip(zipPath string) (*Collection, error) {
	rc, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open zip %s: %w", zipPath, err)
	}
	c, err := FromFS(&rc.Reader)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("read zip %s: %w", zipPath, err)
	}
	c.closer = rc
	return c, nil
}

// Open picks FromZip or FromDir based on the path.
func Open(p string) (*Collection, error) {
	if IsZip(p) {
		return FromZip(p)
	}
	return FromDir(p)
}

// IsZip reports whether p names a zip archive.
func IsZip(p string) bool {
	return strings.HasSuffix(strings.ToLower(p), ".zip")
}

// Files returns the files in enumeration order.
func (c *Collection) Files() []File {
	out := make([]File, len(c.files))
	copy(out, c.files)
	return out
}

func (c *Collection) Len() int {
	return len(c.files)
}

// Close releases the underlying zip handle, if any.
func (c *Collection) Close() error {
	if c.closer == nil {
		return nil
	}
	err := c.closer.Close()
	c.closer = nil
	return err
}
