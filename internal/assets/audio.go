// Package assets mirrors a client's audio directory into the generated
// output. The destination is replaced wholesale on every run so no stale
// files survive a config change.
package assets

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// MirrorAudio removes dst entirely and recreates it as a full copy of src.
// It returns the number of copied files whose name ends in audioExt.
// A missing src is reported via os.IsNotExist on the returned error so the
// caller can treat it as a non-fatal note.
func MirrorAudio(src, dst, audioExt string) (int, error) {
	if _, err := os.Stat(src); err != nil {
		return 0, err
	}

	if err := os.RemoveAll(dst); err != nil {
		return 0, fmt.Errorf("remove previous audio directory: %w", err)
	}

	count := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o750)
		}
		if err := copyFile(path, target); err != nil {
			return fmt.Errorf("copy %s: %w", rel, err)
		}
		if strings.HasSuffix(d.Name(), audioExt) {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
