package detect

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// Validator accepts or rejects a selected file
type Validator interface {
	Validate(f *SelectedFile) error
}

// Rules describes the files accepted for detection
type Rules struct {
	Extensions []string
	MIMETypes  []string
	MaxSize    int64
}

// DefaultRules accepts PDF, DOC and TXT files up to 10 MB
func DefaultRules() Rules {
	return Rules{
		Extensions: []string{".pdf", ".doc", ".txt"},
		MIMETypes:  []string{"application/pdf", "application/msword", "application/x-ole-storage", "text/plain"},
		MaxSize:    10 * 1000 * 1000,
	}
}

// Hint describes the rules for the upload prompt, e.g. "PDF, DOC, TXT (MAX. 10 MB)"
func (r Rules) Hint() string {
	hint := r.typeNames()
	if r.MaxSize > 0 {
		limit := fmt.Sprintf("MAX. %s", humanize.Bytes(uint64(r.MaxSize)))
		if hint == "" {
			return limit
		}
		hint += " (" + limit + ")"
	}
	return hint
}

// FileValidator checks extension, sniffed content type and size
type FileValidator struct {
	rules Rules
}

// NewFileValidator creates a validator for the given rules
func NewFileValidator(rules Rules) *FileValidator {
	return &FileValidator{rules: rules}
}

// Rules returns the rules the validator enforces
func (v *FileValidator) Rules() Rules {
	return v.rules
}

// Validate implements Validator
func (v *FileValidator) Validate(f *SelectedFile) error {
	ext := strings.ToLower(filepath.Ext(f.Name))
	if len(v.rules.Extensions) > 0 && !containsFold(v.rules.Extensions, ext) {
		if ext == "" {
			ext = "(none)"
		}
		return NewValidationError(fmt.Sprintf("Unsupported file type: %s (allowed: %s)", ext, v.rules.typeNames()))
	}

	if v.rules.MaxSize > 0 && f.Size > v.rules.MaxSize {
		return NewValidationError(fmt.Sprintf("File is too large: %s (max %s)",
			humanize.Bytes(uint64(f.Size)), humanize.Bytes(uint64(v.rules.MaxSize))))
	}

	if len(v.rules.MIMETypes) > 0 {
		mt, err := mimetype.DetectFile(f.Path)
		if err != nil {
			return &Error{Kind: ErrKindValidation, Message: fmt.Sprintf("Unable to read %s", f.Name), Cause: err}
		}
		if !mimeAllowed(mt, v.rules.MIMETypes) {
			return NewValidationError(fmt.Sprintf("File content does not match an allowed type: %s", mt.String()))
		}
	}

	return nil
}

func (r Rules) typeNames() string {
	names := make([]string, 0, len(r.Extensions))
	for _, ext := range r.Extensions {
		names = append(names, strings.ToUpper(strings.TrimPrefix(ext, ".")))
	}
	return strings.Join(names, ", ")
}

// mimeAllowed walks the detected type and its parents
func mimeAllowed(mt *mimetype.MIME, allowed []string) bool {
	for m := mt; m != nil; m = m.Parent() {
		for _, a := range allowed {
			if m.Is(a) {
				return true
			}
		}
	}
	return false
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}
