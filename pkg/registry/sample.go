package registry

import "github.com/gravitas-games/stockpile/pkg/item"

// SampleCatalog returns a small block-game flavoured catalogue: full-size
// stacks, a 16-stack item, unstackable tools and a few coloured variants of
// one kind. Used by the CLI when no catalogue file is configured and by tests.
func SampleCatalog() *Registry {
	return MustNew(
		item.Definition{Kind: "stone", NumericID: 1, Name: "Stone", Category: "block", MaxStack: 64},
		item.Definition{Kind: "dirt", NumericID: 3, Name: "Dirt", Category: "block", MaxStack: 64},
		item.Definition{Kind: "cobblestone", NumericID: 4, Name: "Cobblestone", Category: "block", MaxStack: 64},
		item.Definition{Kind: "wool", Variant: 0, NumericID: 35, Name: "White Wool", Category: "block", MaxStack: 64},
		item.Definition{Kind: "wool", Variant: 1, NumericID: 3501, Name: "Orange Wool", Category: "block", MaxStack: 64},
		item.Definition{Kind: "wool", Variant: 14, NumericID: 3514, Name: "Red Wool", Category: "block", MaxStack: 64},
		item.Definition{Kind: "iron_ingot", NumericID: 265, Name: "Iron Ingot", Category: "material", MaxStack: 64},
		item.Definition{Kind: "diamond", NumericID: 264, Name: "Diamond", Category: "material", MaxStack: 64},
		item.Definition{Kind: "diamond_sword", NumericID: 276, Name: "Diamond Sword", Category: "tool", MaxStack: 1},
		item.Definition{Kind: "iron_pickaxe", NumericID: 257, Name: "Iron Pickaxe", Category: "tool", MaxStack: 1},
		item.Definition{Kind: "ender_pearl", NumericID: 368, Name: "Ender Pearl", Category: "misc", MaxStack: 16},
		item.Definition{Kind: "snowball", NumericID: 332, Name: "Snowball", Category: "misc", MaxStack: 16},
	)
}
