package open

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/Zuo-Peng/chat-wrapped/internal/archive"
)

var ErrNoViewer = errors.New("no viewer configured")

// OpenImage extracts the n-th generated image (1-based) to a temp file and
// hands it to viewer. The temp file is left behind for the viewer, which may
// return before it has read it.
func OpenImage(files *archive.Collection, n int, viewer string) (string, error) {
	images := files.GeneratedImages()
	if n < 1 || n > len(images) {
		return "", fmt.Errorf("image %d out of range (archive has %d)", n, len(images))
	}

	path, err := Extract(images[n-1], os.TempDir())
	if err != nil {
		return "", err
	}

	cmd, err := viewerCommand(viewer, path)
	if err != nil {
		return path, err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return path, cmd.Run()
}

// Extract copies f into a new file under dir, keeping its extension.
func Extract(f archive.File, dir string) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", f.Path, err)
	}
	defer rc.Close()

	out, err := os.CreateTemp(dir, "wrapped-*"+f.Ext())
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", fmt.Errorf("extract %s: %w", f.Path, err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return out.Name(), nil
}

func viewerCommand(viewer, filePath string) (*exec.Cmd, error) {
	fields := strings.Fields(viewer)
	if len(fields) == 0 {
		return nil, ErrNoViewer
	}
	name, args := fields[0], fields[1:]

	switch {
	case strings.Contains(name, "code"):
		// VS Code returns immediately unless told to wait
		args = append(args, "--wait")
	case name == "open" && len(args) == 0:
		// macOS open: block until the app is closed
		args = append(args, "-W")
	}
	return exec.Command(name, append(args, filePath)...), nil
}
