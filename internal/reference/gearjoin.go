package reference

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// gearIndex resolves free-text gear names onto packing catalog items.
type gearIndex struct {
	exact   map[string]ItemRef
	aliases map[string]ItemRef
	names   []gearName
}

type gearName struct {
	lower string
	ref   ItemRef
}

func newGearIndex(categories []PackingCategory) *gearIndex {
	idx := &gearIndex{
		exact:   make(map[string]ItemRef),
		aliases: make(map[string]ItemRef),
	}

	for _, cat := range categories {
		for _, item := range cat.Items {
			ref := ItemRef{ID: item.ID, Category: cat.Name, Name: item.Name}
			key := normalizeGearName(item.Name)
			if _, ok := idx.exact[key]; !ok {
				idx.exact[key] = ref
				idx.names = append(idx.names, gearName{lower: key, ref: ref})
			}
			for _, alias := range item.Aliases {
				if a := normalizeGearName(alias); a != "" {
					if _, ok := idx.aliases[a]; !ok {
						idx.aliases[a] = ref
					}
				}
			}
		}
	}

	return idx
}

// lookup tries exact name, then alias, then the closest catalog name within
// a distance limit scaled to the name length.
func (idx *gearIndex) lookup(name string) (ItemRef, bool) {
	key := normalizeGearName(name)
	if key == "" {
		return ItemRef{}, false
	}
	if ref, ok := idx.exact[key]; ok {
		return ref, true
	}
	if ref, ok := idx.aliases[key]; ok {
		return ref, true
	}

	best := -1
	var bestRef ItemRef
	for _, n := range idx.names {
		dist := levenshtein.ComputeDistance(key, n.lower)
		if dist > levenshteinLimit(len(n.lower)) {
			continue
		}
		if best == -1 || dist < best {
			best = dist
			bestRef = n.ref
		}
	}

	return bestRef, best >= 0
}

// resolve joins names onto the catalog. Duplicate targets are collapsed and
// misses are returned in input order.
func (idx *gearIndex) resolve(names []string) GearResolution {
	res := GearResolution{
		Resolved:   []ItemRef{},
		Unresolved: []string{},
	}
	seen := make(map[string]bool)

	for _, name := range names {
		ref, ok := idx.lookup(name)
		if !ok {
			res.Unresolved = append(res.Unresolved, name)
			continue
		}
		if seen[ref.ID] {
			continue
		}
		seen[ref.ID] = true
		res.Resolved = append(res.Resolved, ref)
	}

	return res
}

func normalizeGearName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
