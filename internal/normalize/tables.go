package normalize

// BrandUnknown is the sentinel canonical brand for missing or blank input.
const BrandUnknown = "unknown"

// defaultBrandAliases maps known brand misspellings and variants to their
// canonical form. Keys and values are already in canonical text form.
var defaultBrandAliases = map[string]string{
	"himalaya herbals":  "himalaya",
	"himalayan":         "himalaya",
	"himalaya wellness": "himalaya",
	"britania":          "britannia",
	"britannia ind":     "britannia",
	"mother dairy":      "motherdairy",
	"amul india":        "amul",
	"amulya":            "amul",
	"nestle india":      "nestle",
	"nescafe":           "nestle",
	"itc ltd":           "itc",
	"itc limited":       "itc",
	"dabur india":       "dabur",
	"parle products":    "parle",
	"parle g":           "parle",
	"coca cola":         "cocacola",
	"pepsico":           "pepsi",
	"hul":               "hindustan unilever",
	"haldiram":          "haldirams",
	"haldiram s":        "haldirams",
	"lay s":             "lays",
	"kellogg s":         "kelloggs",
	"kwality wall s":    "kwality",
	"tata sampann":      "tata",
	"tata salt":         "tata",
	"tata consumer":     "tata",
	"godrej consumer":   "godrej",
	"sunfeast yippee":   "sunfeast",
	"paper boat":        "paperboat",
	"too yumm":          "tooyumm",
	"bingo!":            "bingo",
	"fresho!":           "fresho",
	"24 mantra organic": "24mantra",
}

// defaultStopWords are tokens that carry no product identity: packaging
// terms, fillers, and marketing adjectives.
var defaultStopWords = []string{
	// packaging
	"pack", "bottle", "jar", "box", "tin", "pouch", "combo", "set",
	"piece", "pcs", "packet", "sachet", "carton",
	// fillers
	"of", "with", "for", "and", "the", "a", "an",
	// marketing adjectives
	"premium", "original", "taste", "fresh", "new", "special", "best",
	"quality", "pure",
}

// unitNames maps every accepted unit spelling to its base unit.
var unitNames = map[string]string{
	"kg":          UnitGram,
	"kgs":         UnitGram,
	"kilogram":    UnitGram,
	"kilograms":   UnitGram,
	"g":           UnitGram,
	"gm":          UnitGram,
	"gms":         UnitGram,
	"gram":        UnitGram,
	"grams":       UnitGram,
	"l":           UnitMl,
	"ltr":         UnitMl,
	"litre":       UnitMl,
	"litres":      UnitMl,
	"liter":       UnitMl,
	"liters":      UnitMl,
	"ml":          UnitMl,
	"milliliter":  UnitMl,
	"millilitre":  UnitMl,
	"milliliters": UnitMl,
	"millilitres": UnitMl,
}

// unitMultipliers converts a spelled unit to its base unit scale.
// Units not listed are already in base units.
var unitMultipliers = map[string]float64{
	"kg":        1000,
	"kgs":       1000,
	"kilogram":  1000,
	"kilograms": 1000,
	"l":         1000,
	"ltr":       1000,
	"litre":     1000,
	"litres":    1000,
	"liter":     1000,
	"liters":    1000,
}
