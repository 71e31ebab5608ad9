// Package upload decides whether an uploaded resume is acceptable and stores it
// under a collision resistant name.
package upload

import (
	"fmt"
	"io"
	"mime"
	"path"
	"regexp"
	"strings"

	"github.com/talencee/careers/pkg/kernel"
)

// Incoming describes a file part as declared by the client.
type Incoming struct {
	OriginalName string
	ContentType  string
	Size         int64
	Body         io.Reader
}

// StoredFile is an accepted file written to storage.
type StoredFile struct {
	Filename     string
	Path         kernel.StoragePath
	OriginalName string
	ContentType  string
	Size         int64
}

const (
	mimePDF  = "application/pdf"
	mimeDOC  = "application/msword"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// acceptedTypes maps each allowed extension to the MIME types a client may
// declare for it. Word clients are inconsistent about .doc and .docx so either
// Word type is accepted for both.
var acceptedTypes = map[string][]string{
	".pdf":  {mimePDF},
	".doc":  {mimeDOC, mimeDOCX},
	".docx": {mimeDOCX, mimeDOC},
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9]`)

// Extension returns the lowercased extension of a declared file name.
func Extension(name string) string {
	return strings.ToLower(path.Ext(baseName(name)))
}

// SanitizedBase strips directories and the extension from name and replaces
// every character outside [A-Za-z0-9] with an underscore.
func SanitizedBase(name string) string {
	base := baseName(name)
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" {
		return "resume"
	}
	return unsafeChars.ReplaceAllString(base, "_")
}

// baseName drops any client supplied directory, including Windows paths.
func baseName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	base := path.Base(name)
	if base == "." || base == "/" {
		return ""
	}
	return base
}

// IsAcceptedType reports whether the extension of name is allowed and the
// declared MIME type agrees with it.
func IsAcceptedType(name, contentType string) bool {
	allowed, ok := acceptedTypes[Extension(name)]
	if !ok {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	for _, m := range allowed {
		if strings.EqualFold(m, mediaType) {
			return true
		}
	}
	return false
}

// FormatLimit renders a byte ceiling the way it is shown to applicants.
func FormatLimit(limit int64) string {
	switch {
	case limit >= 1<<20 && limit%(1<<20) == 0:
		return fmt.Sprintf("%dMB", limit>>20)
	case limit >= 1<<10 && limit%(1<<10) == 0:
		return fmt.Sprintf("%dKB", limit>>10)
	default:
		return fmt.Sprintf("%d bytes", limit)
	}
}

// ContentTypeOf returns the canonical MIME type for a stored resume name.
func ContentTypeOf(name string) string {
	if allowed, ok := acceptedTypes[Extension(name)]; ok {
		return allowed[0]
	}
	return "application/octet-stream"
}
