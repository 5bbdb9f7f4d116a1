package app

import (
	"context"
	"errors"

	"github.com/nekogravitycat/terrain-booking-backend/internal/terrain"
	"github.com/nekogravitycat/terrain-booking-backend/internal/user"
)

// SeedResult counts the rows Seed inserted.
type SeedResult struct {
	Users    int
	Terrains int
}

var seedUsers = []user.CreateRequest{
	{Name: "admybad", Secret: "astrongpassword", IsAdmin: true},
	{Name: "test"},
	{Name: "marvin"},
	{Name: "hugo"},
}

var seedTerrains = []terrain.CreateRequest{
	{Name: "A", IsAvailable: true},
	{Name: "B", IsAvailable: false},
	{Name: "C", IsAvailable: true},
	{Name: "D", IsAvailable: true},
}

// Seed inserts the demo users and terrains. Rows whose name already
// exists are left untouched, so running it twice is harmless.
func Seed(ctx context.Context, c *Container) (SeedResult, error) {
	var res SeedResult

	for _, req := range seedUsers {
		_, err := c.UserService.Create(ctx, req)
		switch {
		case err == nil:
			res.Users++
		case errors.Is(err, user.ErrNameTaken):
		default:
			return res, err
		}
	}

	for _, req := range seedTerrains {
		_, err := c.TerrainService.Create(ctx, req)
		switch {
		case err == nil:
			res.Terrains++
		case errors.Is(err, terrain.ErrNameTaken):
		default:
			return res, err
		}
	}

	return res, nil
}
