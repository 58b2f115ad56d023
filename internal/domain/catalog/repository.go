package catalog

import "context"

// Repository loads the static catalog content.
type Repository interface {
	Branches(ctx context.Context) ([]Branch, error)
	Activities(ctx context.Context) ([]Activity, error)
	Neighborhoods(ctx context.Context) ([]Neighborhood, error)
	Programs(ctx context.Context) ([]Program, error)
	Birthdays(ctx context.Context) (BirthdayCatalog, error)
}
