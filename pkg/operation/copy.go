// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrTargetInsideSource is returned when the target would be copied into itself
var ErrTargetInsideSource = errors.Base("target directory is inside source directory")

type dirStamp struct {
	path    string
	mode    fs.FileMode
	modTime time.Time
}

// 📋 CopyTree replaces dst with a copy of src.
// File modes and modification times are kept; symlinks are recreated, not followed.
func CopyTree(ctx context.Context, src, dst string) error {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(src)
	if err != nil {
		return errors.Errorf("reading source directory: %w", err)
	}
	if !info.IsDir() {
		return errors.Errorf("source %s is not a directory", src)
	}

	if err := checkNotNested(src, dst); err != nil {
		return err
	}

	if _, err := os.Lstat(dst); err == nil {
		logger.Debug().Str("target", dst).Msg("removing existing target directory")
		if err := os.RemoveAll(dst); err != nil {
			return errors.Errorf("removing target directory: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return errors.Errorf("checking target directory: %w", err)
	}

	// directory modes and times are applied after their contents are written
	var dirs []dirStamp

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.Errorf("relative path for %s: %w", path, err)
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return errors.Errorf("stat %s: %w", path, err)
		}

		switch {
		case d.IsDir():
			if err := os.MkdirAll(target, 0o755); err != nil {
				return errors.Errorf("creating directory %s: %w", target, err)
			}
			dirs = append(dirs, dirStamp{path: target, mode: info.Mode().Perm(), modTime: info.ModTime()})
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return errors.Errorf("reading symlink %s: %w", path, err)
			}
			if err := os.Symlink(link, target); err != nil {
				return errors.Errorf("creating symlink %s: %w", target, err)
			}
		case d.Type().IsRegular():
			if err := copyFile(path, target, info); err != nil {
				return errors.Errorf("copying %s: %w", rel, err)
			}
		default:
			return errors.Errorf("unsupported file type %s for %s", d.Type(), rel)
		}
		return nil
	})
	if err != nil {
		return errors.Errorf("copying %s to %s: %w", src, dst, err)
	}

	for i := len(dirs) - 1; i >= 0; i-- {
		if err := os.Chmod(dirs[i].path, dirs[i].mode); err != nil {
			return errors.Errorf("setting mode of %s: %w", dirs[i].path, err)
		}
		if err := os.Chtimes(dirs[i].path, dirs[i].modTime, dirs[i].modTime); err != nil {
			return errors.Errorf("setting times of %s: %w", dirs[i].path, err)
		}
	}

	logger.Debug().Str("source", src).Str("target", dst).Int("dirs", len(dirs)).Msg("copied tree")

	return nil
}

func copyFile(src, dst string, info fs.FileInfo) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	destination, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		return errors.Errorf("copying file: %w", err)
	}
	if err := destination.Close(); err != nil {
		return errors.Errorf("closing destination file: %w", err)
	}

	// umask may have narrowed the mode on create
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Errorf("setting file mode: %w", err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return errors.Errorf("setting file times: %w", err)
	}

	return nil
}

func checkNotNested(src, dst string) error {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return errors.Errorf("resolving source directory: %w", err)
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return errors.Errorf("resolving target directory: %w", err)
	}
	if absDst == absSrc || strings.HasPrefix(absDst, absSrc+string(filepath.Separator)) {
		return errors.Errorf("%w: %s", ErrTargetInsideSource, dst)
	}
	return nil
}
