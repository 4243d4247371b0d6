package profiles

import (
	"time"
)

var builtinEpoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

var builtins = []CreateProfileCommand{
	{Name: "RRB NTPC", Width: 350, Height: 450, MinSizeKB: 20, MaxSizeKB: 50},
	{Name: "SSC CGL/CHSL", Width: 413, Height: 531, MinSizeKB: 20, MaxSizeKB: 50},
	{Name: "GATE 2026", Width: 480, Height: 640, MinSizeKB: 5, MaxSizeKB: 200},
	{Name: "UPSC Civil Services", Width: 350, Height: 350, MinSizeKB: 20, MaxSizeKB: 300},
	{Name: "Passport Size", Width: 350, Height: 450, MinSizeKB: 20, MaxSizeKB: 100},
	{Name: "JEE Mains 2026", Width: 350, Height: 450, MinSizeKB: 10, MaxSizeKB: 200},
	{Name: "NEET UG", Width: 350, Height: 450, MinSizeKB: 10, MaxSizeKB: 200},
}

// Builtins returns the default exam catalog.
func Builtins() []Profile {
	out := make([]Profile, 0, len(builtins))
	for _, cmd := range builtins {
		out = append(out, newProfile(cmd, builtinEpoch))
	}
	return out
}

// BuiltinCommands returns the default catalog as create commands, for seeding.
func BuiltinCommands() []CreateProfileCommand {
	return append([]CreateProfileCommand(nil), builtins...)
}

func newProfile(cmd CreateProfileCommand, at time.Time) Profile {
	return Profile{
		ID:          ProfileID(cmd.Name),
		Name:        cmd.Name,
		Description: cmd.Description,
		Width:       cmd.Width,
		Height:      cmd.Height,
		MinSizeKB:   cmd.MinSizeKB,
		MaxSizeKB:   cmd.MaxSizeKB,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}
