package services

import (
	"context"
	"testing"

	"goldantelope/internal/models"
	"goldantelope/internal/repositories"
)

func newImportEnv(t *testing.T) (*ImportService, *repositories.CatalogRepository, *fakeRelay) {
	t.Helper()
	repo := &repositories.CatalogRepository{DataDir: t.TempDir(), ErrorLog: discardLog()}
	relay := &fakeRelay{}
	svc := &ImportService{
		CatalogRepo: repo,
		Relay:       relay,
		InfoLog:     discardLog(),
		ErrorLog:    discardLog(),
	}
	return svc, repo, relay
}

func TestImportBatch(t *testing.T) {
	svc, repo, _ := newImportEnv(t)

	messages := []models.ChannelMessage{
		{ID: 101, Text: "Сдам студию\nЦена: 7 000 000", Date: "2026-08-01"},
		{ID: 102, Text: ""},
		{ID: 103, Text: "Продам байк Honda", PhotoData: []byte("photo")},
	}

	result, err := svc.Import(context.Background(), models.CountryVietnam, models.CategoryRealEstate, "@nhatrang_rent", messages)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Imported != 2 || result.Skipped != 1 {
		t.Fatalf("expected 2 imported / 1 skipped, got %d / %d", result.Imported, result.Skipped)
	}

	catalog, _ := repo.Load(models.CountryVietnam)
	items := catalog[models.CategoryRealEstate]
	if len(items) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(items))
	}
	// later messages insert at the head
	if items[0].TelegramLink != "https://t.me/nhatrang_rent/103" {
		t.Fatalf("unexpected head link %q", items[0].TelegramLink)
	}
	if items[1].Title != "Сдам студию" {
		t.Fatalf("title must be the first message line, got %q", items[1].Title)
	}
	if items[0].TelegramFileID == "" {
		t.Fatal("attached photo must be relayed to a durable handle")
	}
}

func TestImportSkipsDuplicates(t *testing.T) {
	svc, repo, _ := newImportEnv(t)

	messages := []models.ChannelMessage{{ID: 7, Text: "Тур на острова"}}
	if _, err := svc.Import(context.Background(), models.CountryVietnam, models.CategoryTours, "tours_vn", messages); err != nil {
		t.Fatal(err)
	}

	result, err := svc.Import(context.Background(), models.CountryVietnam, models.CategoryTours, "tours_vn", messages)
	if err != nil {
		t.Fatal(err)
	}
	if result.Imported != 0 || result.Skipped != 1 {
		t.Fatalf("replayed batch must be skipped, got %d / %d", result.Imported, result.Skipped)
	}

	catalog, _ := repo.Load(models.CountryVietnam)
	if len(catalog[models.CategoryTours]) != 1 {
		t.Fatal("duplicate import must not create a second listing")
	}
}

func TestImportPhotoFailureIsAbsorbed(t *testing.T) {
	svc, repo, relay := newImportEnv(t)
	relay.storeErr = models.ErrRelayUnavailable

	messages := []models.ChannelMessage{{ID: 9, Text: "Байк с фото", PhotoData: []byte("photo")}}
	result, err := svc.Import(context.Background(), models.CountryVietnam, models.CategoryTransport, "bikes_vn", messages)
	if err != nil {
		t.Fatalf("relay outage must not fail the import: %v", err)
	}
	if result.Imported != 1 {
		t.Fatalf("expected 1 imported, got %d", result.Imported)
	}

	catalog, _ := repo.Load(models.CountryVietnam)
	items := catalog[models.CategoryTransport]
	if len(items) != 1 || items[0].TelegramFileID != "" {
		t.Fatal("listing must import without a photo handle")
	}
}
