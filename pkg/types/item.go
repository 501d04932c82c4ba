package types

import "strconv"

// Category is the classification code the host assigns to every item. A
// restricted container decides acceptance by testing membership of this
// single code; sub-classifications are not consulted.
type Category int

// Host category codes used by the default catalogs.
const (
	CategoryNone         Category = 0
	CategoryGem          Category = -2
	CategoryFish         Category = -4
	CategoryEgg          Category = -5
	CategoryMilk         Category = -6
	CategoryCooking      Category = -7
	CategoryCrafting     Category = -8
	CategoryMineral      Category = -12
	CategoryMeat         Category = -14
	CategoryMetal        Category = -15
	CategoryBuilding     Category = -16
	CategorySellAtPierre Category = -17
	CategoryFurniture    Category = -24
	CategoryArtisan      Category = -26
	CategorySyrup        Category = -27
	CategoryMonsterLoot  Category = -28
	CategoryEquipment    Category = -29
	CategorySeed         Category = -74
	CategoryVegetable    Category = -75
	CategoryFruit        Category = -79
	CategoryFlower       Category = -80
	CategoryForage       Category = -81
	CategoryHat          Category = -95
	CategoryRing         Category = -96
	CategoryBoots        Category = -97
	CategoryWeapon       Category = -98
	CategoryTool         Category = -99
	CategoryClothing     Category = -100
	CategoryTrinket      Category = -101
)

var categoryNames = map[Category]string{
	CategoryNone:         "none",
	CategoryGem:          "gem",
	CategoryFish:         "fish",
	CategoryEgg:          "egg",
	CategoryMilk:         "milk",
	CategoryCooking:      "cooking",
	CategoryCrafting:     "crafting",
	CategoryMineral:      "mineral",
	CategoryMeat:         "meat",
	CategoryMetal:        "metal",
	CategoryBuilding:     "building",
	CategorySellAtPierre: "sell-at-pierre",
	CategoryFurniture:    "furniture",
	CategoryArtisan:      "artisan",
	CategorySyrup:        "syrup",
	CategoryMonsterLoot:  "monster-loot",
	CategoryEquipment:    "equipment",
	CategorySeed:         "seed",
	CategoryVegetable:    "vegetable",
	CategoryFruit:        "fruit",
	CategoryFlower:       "flower",
	CategoryForage:       "forage",
	CategoryHat:          "hat",
	CategoryRing:         "ring",
	CategoryBoots:        "boots",
	CategoryWeapon:       "weapon",
	CategoryTool:         "tool",
	CategoryClothing:     "clothing",
	CategoryTrinket:      "trinket",
}

// String returns the category's name, or its numeric code when the host
// uses a code this package does not name.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return strconv.Itoa(int(c))
}

// ParseCategory accepts either a category name ("clothing") or a numeric
// host code ("-100").
func ParseCategory(s string) (Category, error) {
	for c, name := range categoryNames {
		if name == s {
			return c, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return CategoryNone, ErrInvalidCategory
	}
	return Category(n), nil
}

// Item is a host item. Items are always handled by pointer; the pointer is
// the item's identity inside an inventory.
type Item struct {
	ItemID   string   `json:"item_id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Stack    int      `json:"stack"`
	Price    int      `json:"price"`
}
