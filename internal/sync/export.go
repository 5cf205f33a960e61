package sync

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rbxsync-io/rbxsync/internal/constants"
	"github.com/rbxsync-io/rbxsync/pkg/rbxcloud"
)

// Snapshot holds the monetization resources of one universe at a point in
// time, as returned by the listing endpoints.
type Snapshot struct {
	GamePasses        []rbxcloud.GamePass
	DeveloperProducts []rbxcloud.DeveloperProduct
	Badges            []rbxcloud.Badge
}

// FetchSnapshot lists the universe's game passes, developer products, and
// badges. Each listing is a single page at the endpoint's maximum size.
func FetchSnapshot(ctx context.Context, client rbxcloud.Client, universeID string) (*Snapshot, error) {
	if universeID == "" {
		return nil, constants.ErrUniverseIDRequired
	}

	passes, err := client.GamePasses().List(ctx, universeID,
		rbxcloud.NewListOptions().WithLimit(constants.MaxGamePassPageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to list game passes: %w", err)
	}

	products, err := client.DeveloperProducts().List(ctx, universeID,
		rbxcloud.NewListOptions().WithLimit(constants.MaxDeveloperProductPageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to list developer products: %w", err)
	}

	badges, err := client.Badges().List(ctx, universeID,
		rbxcloud.NewListOptions().WithLimit(constants.MaxBadgePageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}

	return &Snapshot{
		GamePasses:        passes.Data,
		DeveloperProducts: products.Data,
		Badges:            badges.Data,
	}, nil
}

// Luau renders the snapshot as a Luau module returning a table of game
// passes, developer products, and badges, suitable for requiring from game
// scripts.
func (s *Snapshot) Luau() []byte {
	var b strings.Builder

	b.WriteString("return {\n")

	b.WriteString("  game_passes = {\n")
	for _, pass := range s.GamePasses {
		writeLuauEntry(&b, pass.Name, pass.ID, pass.Price)
	}
	b.WriteString("  },\n")

	b.WriteString("  developer_products = {\n")
	for _, product := range s.DeveloperProducts {
		writeLuauEntry(&b, product.Name, product.ID, product.Price)
	}
	b.WriteString("  },\n")

	b.WriteString("  badges = {\n")
	for _, badge := range s.Badges {
		writeLuauEntry(&b, badge.Name, badge.ID, nil)
	}
	b.WriteString("  },\n")

	b.WriteString("}\n")

	return []byte(b.String())
}

// writeLuauEntry emits one resource record. A nil price is omitted.
func writeLuauEntry(b *strings.Builder, name string, id int64, price *int64) {
	b.WriteString("    {\n")
	b.WriteString("      name = \"" + escapeLuauString(name) + "\",\n")
	b.WriteString("      id = " + strconv.FormatInt(id, 10) + ",\n")

	if price != nil {
		b.WriteString("      price = " + strconv.FormatInt(*price, 10) + ",\n")
	}

	b.WriteString("    },\n")
}

// escapeLuauString escapes the characters that would break out of a
// double-quoted Luau string literal.
func escapeLuauString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)

	return s
}
