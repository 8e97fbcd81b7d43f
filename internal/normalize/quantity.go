package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Base units quantities are converted into.
const (
	UnitGram = "gram"
	UnitMl   = "ml"
)

var (
	multipackQuantityRe = regexp.MustCompile(`(\d+\.?\d*)\s*(kg|kgs|kilograms?|g|gm|gms|grams?|l|ltr|litres?|liters?|ml|millilitres?|milliliters?)\s*[x*]\s*(\d+)`)
	standardQuantityRe  = regexp.MustCompile(`(\d+\.?\d*)\s*(kg|kgs|kilograms?|g|gm|gms|grams?|l|ltr|litres?|liters?|ml|millilitres?|milliliters?)\b`)
)

// Quantity is a parsed quantity in base units (gram or ml). A multipack
// quantity keeps its per-pack value and pack count; it never compares
// equal to the single-unit quantity of the same base amount.
type Quantity struct {
	Value     float64
	Unit      string
	PackCount int
	Multipack bool
}

// Canonical renders the quantity as a canonical token,
// e.g. "500_gram" or "100_ml_x2" for a multipack.
func (q Quantity) Canonical() string {
	token := strconv.FormatFloat(q.Value, 'f', -1, 64) + "_" + q.Unit
	if q.Multipack {
		token += "_x" + strconv.Itoa(q.PackCount)
	}
	return token
}

// ParseQuantity parses a raw quantity string into base units. Multipack
// forms ("100ml x 2") are matched before standard forms so the pack
// marker is never mistaken for trailing noise. Returns ok=false for
// absent or unparseable input.
func (n *Normalizer) ParseQuantity(s string) (Quantity, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Quantity{}, false
	}

	if m := multipackQuantityRe.FindStringSubmatch(s); m != nil {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Quantity{}, false
		}
		packs, err := strconv.Atoi(m[3])
		if err != nil {
			return Quantity{}, false
		}
		return Quantity{
			Value:     value * multiplierFor(m[2]),
			Unit:      unitNames[m[2]],
			PackCount: packs,
			Multipack: true,
		}, true
	}

	if m := standardQuantityRe.FindStringSubmatch(s); m != nil {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Quantity{}, false
		}
		return Quantity{
			Value:     value * multiplierFor(m[2]),
			Unit:      unitNames[m[2]],
			PackCount: 1,
		}, true
	}

	return Quantity{}, false
}

// Quantity canonicalizes a raw quantity string, e.g. "0.5kg" -> "500_gram".
// Unparseable or absent quantities yield an empty string, treated as
// "unknown" downstream.
func (n *Normalizer) Quantity(s string) string {
	q, ok := n.ParseQuantity(s)
	if !ok {
		return ""
	}
	return q.Canonical()
}

func multiplierFor(unit string) float64 {
	if m, ok := unitMultipliers[unit]; ok {
		return m
	}
	return 1
}
