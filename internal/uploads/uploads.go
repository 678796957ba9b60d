// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package uploads inspects documents offered through the sidebar. Only
// metadata is collected; file contents never enter the conversation.
package uploads

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"github.com/jeranaias/zabbixai-chat/internal/model"
)

// MaxFiles is how many documents may be attached at once.
const MaxFiles = 3

// Sentinel errors.
var (
	ErrUnsupportedFile = errors.New("unsupported file type (PDF, Word or Excel only)")
	ErrNotRegularFile  = errors.New("not a regular file")
)

// allowed maps accepted extensions to the MIME type reported when content
// sniffing is inconclusive.
var allowed = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Allowed reports whether name carries an accepted document extension.
func Allowed(name string) bool {
	_, ok := allowed[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Extensions returns the accepted extensions in display order.
func Extensions() []string {
	return []string{".pdf", ".doc", ".docx", ".xls", ".xlsx"}
}

// Inspect stats the file at path and returns its display metadata.
// The type is sniffed from content; files whose extension is not accepted
// are rejected before they are opened.
func Inspect(path string) (model.UploadedFile, error) {
	name := filepath.Base(path)
	if !Allowed(name) {
		return model.UploadedFile{}, fmt.Errorf("%s: %w", name, ErrUnsupportedFile)
	}

	info, err := os.Stat(path)
	if err != nil {
		return model.UploadedFile{}, fmt.Errorf("stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return model.UploadedFile{}, fmt.Errorf("%s: %w", name, ErrNotRegularFile)
	}

	return model.UploadedFile{
		Name: name,
		Size: info.Size(),
		Type: detectType(path, name),
	}, nil
}

// detectType sniffs the MIME type, falling back to the extension table when
// the content is empty or generic (old .doc/.xls files sniff as OLE).
func detectType(path, name string) string {
	fallback := allowed[strings.ToLower(filepath.Ext(name))]

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return fallback
	}
	switch {
	case mt.Is("application/pdf"),
		mt.Is("application/msword"),
		mt.Is("application/vnd.ms-excel"),
		mt.Is(allowed[".docx"]),
		mt.Is(allowed[".xlsx"]):
		return mt.String()
	default:
		return fallback
	}
}

// FormatSize renders a byte count the way the sidebar shows it.
func FormatSize(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(n))
}

// Kind returns a short label for a MIME type: PDF, Word, Excel or File.
func Kind(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "pdf"):
		return "PDF"
	case strings.Contains(mimeType, "sheet"), strings.Contains(mimeType, "excel"):
		return "Excel"
	case strings.Contains(mimeType, "word"):
		return "Word"
	default:
		return "File"
	}
}
