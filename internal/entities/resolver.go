package entities

import (
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"
)

// Entity is the canonical identity one or more raw name strings resolve to.
type Entity struct {
	ID            uuid.UUID `json:"id"`
	CanonicalName string    `json:"canonical_name"`
}

// Resolver maps raw payer and customer name strings to canonical entities.
// The registry grows as unresolved names are observed; reads and inserts are
// safe to interleave from concurrent classification workers.
type Resolver struct {
	mu           sync.RWMutex
	byCanonical  map[string]Entity
	byVariant    map[string]string
	byNormalized map[string]string
	variants     map[string][]string
}

// NewResolver builds a resolver pre-populated from the seed dictionary.
func NewResolver(seed Seed) *Resolver {
	r := &Resolver{
		byCanonical:  make(map[string]Entity),
		byVariant:    make(map[string]string),
		byNormalized: make(map[string]string),
		variants:     make(map[string][]string),
	}
	for _, entry := range seed.Entities {
		r.registerCanonicalLocked(entry.Name)
		for _, variant := range entry.Variants {
			r.registerVariantLocked(entry.Name, variant)
		}
	}
	return r
}

// Resolve maps a raw name to its canonical entity. Resolution is total: an
// unmatched name becomes its own new canonical entity.
func (r *Resolver) Resolve(rawName string) Entity {
	r.mu.RLock()
	if entity, ok := r.lookup(rawName); ok {
		r.mu.RUnlock()
		return entity
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check under the write lock so two concurrent insertions of the same
	// unresolved name yield a single canonical entity.
	if entity, ok := r.lookup(rawName); ok {
		return entity
	}
	return r.registerCanonicalLocked(rawName)
}

// SameEntity reports whether two raw names denote the same canonical entity.
func (r *Resolver) SameEntity(a, b string) bool {
	return r.Resolve(a).ID == r.Resolve(b).ID
}

// RegisterVariant records a known variant spelling under a canonical name,
// creating the canonical entity if it is not registered yet.
func (r *Resolver) RegisterVariant(canonical, variant string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registerCanonicalLocked(canonical)
	r.registerVariantLocked(canonical, variant)
}

// Snapshot exports the current registry as a seed, including organically
// discovered singletons, sorted for deterministic output.
func (r *Resolver) Snapshot() Seed {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seed := Seed{Entities: make([]SeedEntity, 0, len(r.byCanonical))}
	for name := range r.byCanonical {
		variants := make([]string, len(r.variants[name]))
		copy(variants, r.variants[name])
		sort.Strings(variants)
		seed.Entities = append(seed.Entities, SeedEntity{Name: name, Variants: variants})
	}
	sort.Slice(seed.Entities, func(i, j int) bool {
		return seed.Entities[i].Name < seed.Entities[j].Name
	})
	return seed
}

// lookup applies the resolution strategy in order: exact canonical, exact
// variant, normalized form. Callers must hold at least the read lock.
func (r *Resolver) lookup(rawName string) (Entity, bool) {
	if entity, ok := r.byCanonical[rawName]; ok {
		return entity, true
	}
	if canonical, ok := r.byVariant[rawName]; ok {
		return r.byCanonical[canonical], true
	}
	if canonical, ok := r.byNormalized[normalizeName(rawName)]; ok {
		return r.byCanonical[canonical], true
	}
	return Entity{}, false
}

func (r *Resolver) registerCanonicalLocked(name string) Entity {
	if entity, ok := r.byCanonical[name]; ok {
		return entity
	}
	entity := Entity{ID: uuid.New(), CanonicalName: name}
	r.byCanonical[name] = entity
	normalized := normalizeName(name)
	if _, ok := r.byNormalized[normalized]; !ok {
		r.byNormalized[normalized] = name
	}
	return entity
}

func (r *Resolver) registerVariantLocked(canonical, variant string) {
	if variant == canonical {
		return
	}
	if _, ok := r.byVariant[variant]; ok {
		return
	}
	r.byVariant[variant] = canonical
	r.variants[canonical] = append(r.variants[canonical], variant)
	normalized := normalizeName(variant)
	if _, ok := r.byNormalized[normalized]; !ok {
		r.byNormalized[normalized] = canonical
	}
}

// corporateSuffixes are trailing tokens that carry no identity: "Acme Corp",
// "Acme Corporation" and "Acme Co." all denote the same business.
var corporateSuffixes = map[string]struct{}{
	"inc":          {},
	"incorporated": {},
	"llc":          {},
	"limited":      {},
	"corp":         {},
	"corporation":  {},
	"co":           {},
	"company":      {},
	"partners":     {},
}

func normalizeName(rawName string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(rawName) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}

	tokens := strings.Fields(b.String())
	if len(tokens) > 1 && tokens[0] == "the" {
		tokens = tokens[1:]
	}
	for len(tokens) > 1 {
		if _, ok := corporateSuffixes[tokens[len(tokens)-1]]; !ok {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}
