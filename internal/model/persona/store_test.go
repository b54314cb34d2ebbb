package persona

import "testing"

func TestSeedHasBothDebaters(t *testing.T) {
	store := NewMemoryStore(Seed())

	for _, id := range []string{"james", "linda"} {
		if _, ok := store.FindByID(id); !ok {
			t.Fatalf("expected persona %s in seed", id)
		}
	}
	if got := len(store.List()); got != 2 {
		t.Fatalf("expected 2 personas, got %d", got)
	}
}

func TestFindByIDIgnoresCase(t *testing.T) {
	store := NewMemoryStore(Seed())

	p, ok := store.FindByID("LINDA")
	if !ok {
		t.Fatal("expected case-insensitive match")
	}
	if p.Name != "Linda" {
		t.Fatalf("unexpected persona: %s", p.Name)
	}
}

func TestListReturnsCopy(t *testing.T) {
	store := NewMemoryStore(Seed())

	list := store.List()
	list[0].Name = "mutated"

	if store.List()[0].Name == "mutated" {
		t.Fatal("List must not expose internal slice")
	}
}
