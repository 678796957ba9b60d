// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jeranaias/zabbixai-chat/internal/model"
	"github.com/jeranaias/zabbixai-chat/internal/uploads"
)

// AttachFiles adds documents to the sidebar list. The batch is accepted
// whole or not at all: any unsupported type, or a total above
// uploads.MaxFiles, rejects every file in it.
func (s *Store) AttachFiles(files ...model.UploadedFile) error {
	for _, f := range files {
		if !uploads.Allowed(f.Name) {
			return fmt.Errorf("%s: %w", f.Name, ErrUnsupportedFile)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.files)+len(files) > uploads.MaxFiles {
		return fmt.Errorf("%w: %d attached, %d more offered, limit %d",
			ErrTooManyFiles, len(s.files), len(files), uploads.MaxFiles)
	}
	s.files = append(s.files, files...)

	for _, f := range files {
		s.logger.Debug("file attached", zap.String("name", f.Name), zap.Int64("size", f.Size))
	}
	return nil
}

// RemoveFile drops the attachment at index i. It reports whether anything
// was removed.
func (s *Store) RemoveFile(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.files) {
		return false
	}
	s.files = append(s.files[:i], s.files[i+1:]...)
	return true
}

// Files returns a copy of the attached documents.
func (s *Store) Files() []model.UploadedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.UploadedFile(nil), s.files...)
}
