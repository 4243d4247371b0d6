// Package photos fixes uploaded photos against an exam profile or a custom
// target and serves the result as a JPEG download.
package photos

import (
	"fmt"

	"github.com/JaimeStill/photo-fixer/internal/profiles"
	"github.com/JaimeStill/photo-fixer/internal/transcode"
)

// FixCommand is one photo to fix. Profile takes precedence over Target.
type FixCommand struct {
	Data    []byte
	Profile string
	Target  *transcode.TargetSpec
}

// Fixed is a transcoded photo ready for download. Profile is synthesized
// from the target when a custom target was requested.
type Fixed struct {
	*transcode.EncodeResult
	Profile  *profiles.Profile
	FileName string
}

// Message summarizes the outcome for display.
func (f *Fixed) Message() string {
	switch {
	case f.Oversized:
		return fmt.Sprintf("Best effort: %.2f KB is above the %.0f KB limit at the lowest quality", f.SizeKB, f.Profile.MaxSizeKB)
	case f.Undersized:
		return fmt.Sprintf("Photo fixed: %.2f KB, below the %.0f KB minimum", f.SizeKB, f.Profile.MinSizeKB)
	}
	return fmt.Sprintf("Photo fixed: %.2f KB", f.SizeKB)
}

// FixResponse is the JSON form of a Fixed photo.
type FixResponse struct {
	*transcode.EncodeResult
	Profile  string `json:"profile,omitempty"`
	FileName string `json:"file_name"`
	Message  string `json:"message"`
	Data     []byte `json:"data"`
}

func newFixResponse(f *Fixed) FixResponse {
	resp := FixResponse{
		EncodeResult: f.EncodeResult,
		FileName:     f.FileName,
		Message:      f.Message(),
		Data:         f.EncodeResult.Data,
	}
	if f.Profile != nil {
		resp.Profile = f.Profile.Name
	}
	return resp
}
