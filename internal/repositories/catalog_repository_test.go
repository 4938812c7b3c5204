package repositories

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"goldantelope/internal/models"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestRepo(t *testing.T) *CatalogRepository {
	t.Helper()
	return &CatalogRepository{DataDir: t.TempDir(), ErrorLog: testLogger()}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadAbsentFile(t *testing.T) {
	repo := newTestRepo(t)

	catalog, err := repo.Load(models.CountryVietnam)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog) != len(models.CategoryKeys) {
		t.Fatalf("expected %d category keys, got %d", len(models.CategoryKeys), len(catalog))
	}
	for _, key := range models.CategoryKeys {
		items, ok := catalog[key]
		if !ok {
			t.Fatalf("missing category key %q", key)
		}
		if len(items) != 0 {
			t.Fatalf("expected empty category %q", key)
		}
	}
}

func TestLoadLegacyFlatList(t *testing.T) {
	repo := newTestRepo(t)
	writeFile(t, filepath.Join(repo.DataDir, "listings_vietnam.json"), `[
		{"id": "a1", "title": "Квартира", "category": "real_estate"},
		{"id": "a2", "title": "Байк", "category": "bikes"},
		{"id": "a3", "title": "Обменник", "category": "exchange"},
		{"id": "a4", "title": "Загадка", "category": "mystery"}
	]`)

	catalog, err := repo.Load(models.CountryVietnam)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog[models.CategoryRealEstate]) != 1 {
		t.Fatalf("real_estate: got %d items", len(catalog[models.CategoryRealEstate]))
	}
	if len(catalog[models.CategoryTransport]) != 1 {
		t.Fatal("bikes alias must land in transport")
	}
	if len(catalog[models.CategoryMoneyExchange]) != 1 {
		t.Fatal("exchange alias must land in money_exchange")
	}
	if len(catalog[models.CategoryChat]) != 1 {
		t.Fatal("unknown category must land in chat, not be dropped")
	}

	total := 0
	for _, items := range catalog {
		total += len(items)
	}
	if total != 4 {
		t.Fatalf("no item may be dropped: got %d of 4", total)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	repo := newTestRepo(t)
	writeFile(t, filepath.Join(repo.DataDir, "listings_vietnam.json"), `{"real_estate": [`)

	catalog, err := repo.Load(models.CountryVietnam)
	if !errors.Is(err, models.ErrCorruptData) {
		t.Fatalf("expected ErrCorruptData, got %v", err)
	}
	if catalog == nil || len(catalog[models.CategoryRealEstate]) != 0 {
		t.Fatal("corrupt load must still return the empty default")
	}
}

func TestLoadAggregateFallback(t *testing.T) {
	repo := newTestRepo(t)
	writeFile(t, filepath.Join(repo.DataDir, "listings_data.json"), `{
		"thailand": {"restaurants": [{"id": "t1", "title": "Кафе"}]}
	}`)

	catalog, err := repo.Load(models.CountryThailand)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog[models.CategoryRestaurants]) != 1 {
		t.Fatal("expected the aggregate snapshot to back an absent country file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	catalog := models.NewCatalog()
	catalog[models.CategoryTransport] = []models.Listing{
		{ID: "b1", Title: "Honda", Category: models.CategoryTransport},
	}
	if err := repo.Save(models.CountryVietnam, catalog); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := repo.Load(models.CountryVietnam)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded[models.CategoryTransport]) != 1 || loaded[models.CategoryTransport][0].ID != "b1" {
		t.Fatalf("round trip lost data: %+v", loaded[models.CategoryTransport])
	}
	for _, key := range models.CategoryKeys {
		if _, ok := loaded[key]; !ok {
			t.Fatalf("saved document must carry all category keys, missing %q", key)
		}
	}
}

func TestSaveUpdatesAggregate(t *testing.T) {
	repo := newTestRepo(t)

	catalog := models.NewCatalog()
	catalog[models.CategoryTours] = []models.Listing{{ID: "v1", Title: "Тур"}}
	if err := repo.Save(models.CountryVietnam, catalog); err != nil {
		t.Fatalf("save: %v", err)
	}

	// remove the country file so the aggregate is the only source
	if err := os.Remove(filepath.Join(repo.DataDir, "listings_vietnam.json")); err != nil {
		t.Fatal(err)
	}
	loaded, err := repo.Load(models.CountryVietnam)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded[models.CategoryTours]) != 1 {
		t.Fatal("aggregate snapshot must mirror the last save")
	}
}

func TestSaveSucceedsWhenAggregateCorrupt(t *testing.T) {
	repo := newTestRepo(t)
	writeFile(t, filepath.Join(repo.DataDir, "listings_data.json"), `not json`)

	catalog := models.NewCatalog()
	catalog[models.CategoryRealEstate] = []models.Listing{{ID: "r1", Title: "Дом"}}
	if err := repo.Save(models.CountryVietnam, catalog); err != nil {
		t.Fatalf("aggregate failure must not fail the save: %v", err)
	}

	loaded, err := repo.Load(models.CountryVietnam)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded[models.CategoryRealEstate]) != 1 {
		t.Fatal("country file must carry the saved data")
	}
}
