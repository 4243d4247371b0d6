package profiles

import "context"

// System defines the interface for profile catalog operations.
// Profiles are addressed by name, matched case-insensitively.
type System interface {
	// List returns every profile ordered by name.
	List(ctx context.Context) ([]Profile, error)

	Find(ctx context.Context, name string) (*Profile, error)

	Create(ctx context.Context, cmd CreateProfileCommand) (*Profile, error)

	Update(ctx context.Context, name string, cmd UpdateProfileCommand) (*Profile, error)

	Delete(ctx context.Context, name string) error
}
