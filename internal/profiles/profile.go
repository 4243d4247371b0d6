// Package profiles manages the catalog of named exam photo requirements.
// Each profile binds an exam authority's name to the exact pixel size and
// file size band its upload form accepts.
package profiles

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/photo-fixer/internal/transcode"
)

// Profile is a named photo requirement.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	MinSizeKB   float64   `json:"min_kb"`
	MaxSizeKB   float64   `json:"max_kb"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Target returns the transcode target for the profile.
func (p Profile) Target() transcode.TargetSpec {
	return transcode.TargetSpec{
		Width:     p.Width,
		Height:    p.Height,
		MinSizeKB: p.MinSizeKB,
		MaxSizeKB: p.MaxSizeKB,
	}
}

// FileName is the download name for a photo fixed against this profile.
func (p Profile) FileName() string {
	return FileName(p.Name)
}

var fileNameReplacer = strings.NewReplacer(" ", "_", "/", "_", "\\", "_")

// FileName returns "<name>_fixed.jpg" with spaces and path separators replaced.
func FileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "photo"
	}
	return fileNameReplacer.Replace(name) + "_fixed.jpg"
}

// ProfileID derives a stable ID from a profile name.
func ProfileID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("photo-fixer/profile/"+strings.ToLower(name)))
}

// CreateProfileCommand contains the data needed to create a profile.
type CreateProfileCommand struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	MinSizeKB   float64 `json:"min_kb"`
	MaxSizeKB   float64 `json:"max_kb"`
}

// UpdateProfileCommand replaces every field of an existing profile.
type UpdateProfileCommand CreateProfileCommand

func (c CreateProfileCommand) Target() transcode.TargetSpec {
	return transcode.TargetSpec{
		Width:     c.Width,
		Height:    c.Height,
		MinSizeKB: c.MinSizeKB,
		MaxSizeKB: c.MaxSizeKB,
	}
}

// Validate checks the name and the size constraints.
func (c CreateProfileCommand) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name required", ErrInvalidProfile)
	}
	if err := c.Target().Validate(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidProfile, c.Name, err)
	}
	return nil
}

func (c UpdateProfileCommand) Validate() error {
	return CreateProfileCommand(c).Validate()
}
