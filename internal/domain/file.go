package domain

import (
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validatorInstance is a package-level validator instance.
// Using a single instance is more efficient as it caches struct information.
var validatorInstance = validator.New()

func init() {
	_ = validatorInstance.RegisterValidation("safepath", validateSafePath)
}

// validateSafePath rejects paths that could escape the storage root.
func validateSafePath(fl validator.FieldLevel) bool {
	path := fl.Field().String()

	if strings.Contains(path, "..") ||
		strings.Contains(path, "~") ||
		strings.HasPrefix(path, "/") ||
		strings.Contains(path, "\\") {
		return false
	}

	// Catches inputs like "uploads/./x" that clean to something else.
	return path == filepath.ToSlash(filepath.Clean(path))
}

// StoredFile is the metadata of an uploaded file kept in the attachment
// store. The bytes live at StoragePath.
type StoredFile struct {
	Filename    string `json:"filename" validate:"required,min=1,max=255"`
	MIMEType    string `json:"mime_type"`
	Size        int64  `json:"size" validate:"gte=0"`
	StoragePath string `json:"storage_path" validate:"required,safepath"`
}

// Validate runs the struct tag checks on f.
func (f *StoredFile) Validate() error {
	return validatorInstance.Struct(f)
}
