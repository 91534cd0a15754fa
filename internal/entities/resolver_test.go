package entities

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func sampleSeed() Seed {
	return Seed{Entities: []SeedEntity{
		{Name: "Acme Corp", Variants: []string{"Acme Corporation", "Acme Corp.", "Acme Co", "Acme Corp West", "Acme Holdings"}},
		{Name: "Beta Inc", Variants: []string{"Beta Incorporated", "Beta Inc.", "Beta International Inc", "Beta Subsidiaries"}},
		{Name: "Gamma LLC", Variants: []string{"Gamma Limited", "Gamma L.L.C.", "Gamma Group Holdings", "The Gamma Group"}},
		{Name: "Delta Co", Variants: []string{"Delta Company", "Delta Corporation", "Delta Corp", "Delta Logistics Services"}},
	}}
}

func TestResolveExactCanonical(t *testing.T) {
	r := NewResolver(sampleSeed())
	entity := r.Resolve("Acme Corp")
	if entity.CanonicalName != "Acme Corp" {
		t.Fatalf("expected canonical Acme Corp, got %q", entity.CanonicalName)
	}
}

func TestResolveRegisteredVariant(t *testing.T) {
	r := NewResolver(sampleSeed())
	tests := map[string]string{
		"Acme Corporation":        "Acme Corp",
		"Acme Holdings":           "Acme Corp",
		"Beta International Inc":  "Beta Inc",
		"Gamma L.L.C.":            "Gamma LLC",
		"The Gamma Group":         "Gamma LLC",
		"Delta Logistics Services": "Delta Co",
	}
	for variant, canonical := range tests {
		if got := r.Resolve(variant).CanonicalName; got != canonical {
			t.Fatalf("variant %q resolved to %q, want %q", variant, got, canonical)
		}
	}
}

func TestResolveNormalizedMatch(t *testing.T) {
	r := NewResolver(sampleSeed())
	// Not registered as variants; only the normalized form matches.
	tests := map[string]string{
		"ACME CORP":    "Acme Corp",
		"acme company": "Acme Corp",
		"Beta, Inc.":   "Beta Inc",
		"delta corp":   "Delta Co",
	}
	for raw, canonical := range tests {
		if got := r.Resolve(raw).CanonicalName; got != canonical {
			t.Fatalf("raw %q resolved to %q, want %q", raw, got, canonical)
		}
	}
}

func TestResolveUnmatchedBecomesSingleton(t *testing.T) {
	r := NewResolver(sampleSeed())
	acme := r.Resolve("Acme Corp")

	// Ltd is not a recognized corporate suffix, so this cannot collapse into
	// Acme Corp. It becomes its own canonical entity.
	ltd := r.Resolve("Acme Ltd")
	if ltd.CanonicalName != "Acme Ltd" {
		t.Fatalf("expected singleton canonical, got %q", ltd.CanonicalName)
	}
	if ltd.ID == acme.ID {
		t.Fatal("Acme Ltd must not share an entity with Acme Corp")
	}

	// Later observations of the same string reuse the singleton.
	if again := r.Resolve("Acme Ltd"); again.ID != ltd.ID {
		t.Fatal("singleton entity must be stable across resolutions")
	}
}

func TestResolveIdempotent(t *testing.T) {
	r := NewResolver(sampleSeed())
	for _, raw := range []string{"Acme Corporation", "Zenith Partners", "ACME CORP", "Acme Ltd"} {
		first := r.Resolve(raw)
		second := r.Resolve(first.CanonicalName)
		if first.ID != second.ID {
			t.Fatalf("resolve not idempotent for %q: %v vs %v", raw, first, second)
		}
	}
}

func TestResolveVariantSymmetry(t *testing.T) {
	r := NewResolver(sampleSeed())
	for _, entry := range sampleSeed().Entities {
		canonical := r.Resolve(entry.Name)
		for _, variant := range entry.Variants {
			if got := r.Resolve(variant); got.ID != canonical.ID {
				t.Fatalf("variant %q of %q resolved to %q", variant, entry.Name, got.CanonicalName)
			}
		}
	}
}

func TestSameEntity(t *testing.T) {
	r := NewResolver(sampleSeed())
	if !r.SameEntity("Acme Corp", "Acme Corporation") {
		t.Fatal("registered variant should be the same entity")
	}
	if r.SameEntity("Acme Corp", "Acme Ltd") {
		t.Fatal("unregistered Ltd spelling must not match")
	}
}

func TestRegisterVariant(t *testing.T) {
	r := NewResolver(Seed{})
	r.RegisterVariant("Epsilon Partners", "Epsilon & Partners")
	if !r.SameEntity("Epsilon Partners", "Epsilon & Partners") {
		t.Fatal("registered variant should resolve to its canonical")
	}
}

func TestResolveConcurrentInsertIfAbsent(t *testing.T) {
	r := NewResolver(Seed{})

	const workers = 32
	entities := make([]Entity, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(slot int) {
			defer wg.Done()
			entities[slot] = r.Resolve("Omega Holdings")
		}(i)
	}
	wg.Wait()

	for _, entity := range entities[1:] {
		if entity.ID != entities[0].ID {
			t.Fatal("concurrent resolutions created distinct entities for one name")
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	r := NewResolver(sampleSeed())
	r.Resolve("Acme Ltd")

	snapshot := r.Snapshot()
	if len(snapshot.Entities) != 5 {
		t.Fatalf("expected 5 canonical entities, got %d", len(snapshot.Entities))
	}

	rebuilt := NewResolver(snapshot)
	if !rebuilt.SameEntity("Acme Corporation", "Acme Corp") {
		t.Fatal("rebuilt resolver lost registered variants")
	}
	if got := rebuilt.Resolve("Acme Ltd").CanonicalName; got != "Acme Ltd" {
		t.Fatalf("rebuilt resolver lost singleton, got %q", got)
	}

	// Deterministic export: identical registries produce identical snapshots.
	if again := r.Snapshot(); len(again.Entities) != len(snapshot.Entities) {
		t.Fatal("snapshot must be stable")
	} else {
		for i := range again.Entities {
			if again.Entities[i].Name != snapshot.Entities[i].Name {
				t.Fatal("snapshot ordering must be deterministic")
			}
		}
	}
}

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"Acme Corp":         "acme",
		"ACME CORPORATION":  "acme",
		"Acme Co.":          "acme",
		"The Gamma Group":   "gamma group",
		"Gamma L.L.C.":      "gamma",
		"Acme Ltd":          "acme ltd",
		"Epsilon & Partners": "epsilon",
		"Company":           "company",
	}
	for raw, want := range tests {
		if got := normalizeName(raw); got != want {
			t.Fatalf("normalizeName(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestLoadSeed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "entities.yaml")
	raw := []byte(`entities:
  - name: Acme Corp
    variants:
      - Acme Corporation
      - Acme Corp.
  - name: Beta Inc
    variants:
      - Beta Incorporated
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	seed, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed error: %v", err)
	}
	if len(seed.Entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(seed.Entities))
	}
	if seed.Entities[0].Name != "Acme Corp" || len(seed.Entities[0].Variants) != 2 {
		t.Fatalf("unexpected first entity: %+v", seed.Entities[0])
	}

	if _, err := LoadSeed(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
