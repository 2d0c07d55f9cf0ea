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

package files

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 Manager reads, writes and deletes files below a base directory
type Manager struct {
	baseDir string
	perm    os.FileMode
}

// 🏭 NewManager creates a manager rooted at baseDir. Absolute paths bypass the root.
func NewManager(baseDir string) *Manager {
	return &Manager{
		baseDir: filepath.Clean(baseDir),
		perm:    0o644,
	}
}

// 🔒 abs resolves path against the base directory
func (m *Manager) abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(m.baseDir, path)
}

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(m.abs(path))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	zerolog.Ctx(ctx).Trace().Str("path", path).Int("size", len(content)).Msg("read file")
	return content, nil
}

// WriteFile creates parent directories and replaces path atomically.
func (m *Manager) WriteFile(ctx context.Context, path string, content []byte) error {
	absPath := m.abs(path)

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tempPath, m.perm); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("setting file mode: %w", err)
	}

	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("size", len(content)).Msg("wrote file")
	return nil
}

func (m *Manager) DeleteFile(ctx context.Context, path string) error {
	if err := os.Remove(m.abs(path)); err != nil {
		return errors.Errorf("deleting file: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("deleted file")
	return nil
}

func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(m.abs(path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}
