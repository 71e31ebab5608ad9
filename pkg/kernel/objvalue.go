package kernel

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

type JobTitle string

func (t JobTitle) String() string { return string(t) }

type JobRequirement string

type Email string

// emailPattern requires a non-empty local part, a non-empty domain and a
// top-level segment of at least two characters.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@.]+(\.[^\s@.]+)*\.[A-Za-z]{2,}$`)

// NewEmail trims and lowercases s.
func NewEmail(s string) Email {
	return Email(strings.ToLower(strings.TrimSpace(s)))
}

func (e Email) String() string { return string(e) }
func (e Email) IsValid() bool  { return emailPattern.MatchString(string(e)) }

// StoragePath locates a stored file inside an fsx.FileSystem.
type StoragePath string

func (p StoragePath) String() string { return string(p) }
func (p StoragePath) IsEmpty() bool  { return string(p) == "" }

// Base returns the final element, for both disk paths and object keys.
func (p StoragePath) Base() string {
	if strings.Contains(string(p), "\\") {
		return filepath.Base(string(p))
	}
	return path.Base(string(p))
}
