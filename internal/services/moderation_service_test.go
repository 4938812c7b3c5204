package services

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"

	"goldantelope/internal/fsm"
	"goldantelope/internal/models"
	"goldantelope/internal/repositories"
)

// fakeRelay implements the relay interfaces without the network.
type fakeRelay struct {
	storeErr   error
	sendErr    error
	knownErr   error
	fileID     string
	stored     [][]byte
	sent       []string
	knownChats map[string]string
}

func (f *fakeRelay) StorePhoto(ctx context.Context, data []byte, caption string) (string, error) {
	if f.storeErr != nil {
		return "", f.storeErr
	}
	f.stored = append(f.stored, data)
	if f.fileID == "" {
		return "file-id-1", nil
	}
	return f.fileID, nil
}

func (f *fakeRelay) PhotoURL(ctx context.Context, fileID string) (string, error) {
	if f.storeErr != nil {
		return "", f.storeErr
	}
	return "https://api.telegram.org/file/bot123/photos/" + fileID, nil
}

func (f *fakeRelay) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	return []byte("image-bytes"), nil
}

func (f *fakeRelay) SendMessage(ctx context.Context, chatID, text string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeRelay) KnownChats(ctx context.Context) (map[string]string, error) {
	if f.knownErr != nil {
		return nil, f.knownErr
	}
	return f.knownChats, nil
}

func discardLog() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type moderationEnv struct {
	svc     *ModerationService
	pending *repositories.PendingRepository
	catalog *repositories.CatalogRepository
	relay   *fakeRelay
}

func newModerationEnv(t *testing.T) *moderationEnv {
	t.Helper()
	dir := t.TempDir()
	pending := &repositories.PendingRepository{DataDir: dir}
	catalog := &repositories.CatalogRepository{DataDir: dir, ErrorLog: discardLog()}
	relay := &fakeRelay{}
	return &moderationEnv{
		svc: &ModerationService{
			PendingRepo:  pending,
			CatalogRepo:  catalog,
			Captcha:      NewCaptchaService(),
			Relay:        relay,
			Validate:     validator.New(),
			NotifyChatID: "100",
			InfoLog:      discardLog(),
			ErrorLog:     discardLog(),
		},
		pending: pending,
		catalog: catalog,
		relay:   relay,
	}
}

func (env *moderationEnv) issueSolvedCaptcha(t *testing.T) (token, answer string) {
	t.Helper()
	question, token := env.svc.Captcha.Issue()
	return token, solve(t, question)
}

func TestSubmitQueuesListing(t *testing.T) {
	env := newModerationEnv(t)
	token, answer := env.issueSolvedCaptcha(t)

	sub := models.RealEstateSubmission{
		Title:       "Студия у моря",
		Description: "Сдам студию в центре",
		City:        "нячанг",
		ListingType: "rent",
	}
	photos := []models.PhotoUpload{{Filename: "room.jpg", Data: []byte("jpeg-bytes")}}

	id, err := env.svc.Submit(context.Background(), models.CountryVietnam, token, answer, sub, photos)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !strings.HasPrefix(id, "pending_real_estate_vietnam_") {
		t.Fatalf("unexpected pending id %q", id)
	}

	queue, err := env.pending.Load(models.CountryVietnam)
	if err != nil {
		t.Fatalf("load pending: %v", err)
	}
	if len(queue) != 1 {
		t.Fatalf("expected 1 queued submission, got %d", len(queue))
	}
	got := queue[0]
	if got.Status != fsm.StatusPending {
		t.Fatalf("expected pending status, got %q", got.Status)
	}
	if !strings.HasPrefix(got.ImageURL, "data:image/jpeg;base64,") {
		t.Fatalf("photo must be inlined as a data url, got %q", got.ImageURL)
	}
	if len(env.relay.sent) == 0 {
		t.Fatal("moderation chat must be notified")
	}
}

func TestSubmitRejectsWrongCaptcha(t *testing.T) {
	env := newModerationEnv(t)
	token, _ := env.issueSolvedCaptcha(t)

	sub := models.RestaurantSubmission{Title: "Кафе", Description: "Вьетнамская кухня"}
	_, err := env.svc.Submit(context.Background(), models.CountryVietnam, token, "-1", sub, nil)
	if !errors.Is(err, models.ErrCaptchaInvalid) {
		t.Fatalf("expected ErrCaptchaInvalid, got %v", err)
	}

	queue, _ := env.pending.Load(models.CountryVietnam)
	if len(queue) != 0 {
		t.Fatal("failed captcha must not queue anything")
	}
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	env := newModerationEnv(t)
	token, answer := env.issueSolvedCaptcha(t)

	sub := models.KidsSubmission{Title: "Аниматоры"} // no description, city, age
	_, err := env.svc.Submit(context.Background(), models.CountryVietnam, token, answer, sub, nil)
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSubmitRejectsOversizedPhoto(t *testing.T) {
	env := newModerationEnv(t)
	token, answer := env.issueSolvedCaptcha(t)

	sub := models.RealEstateSubmission{Title: "Дом", Description: "Большие фото"}
	photos := []models.PhotoUpload{{Filename: "big.jpg", Data: make([]byte, maxPhotoBytes+1)}}
	_, err := env.svc.Submit(context.Background(), models.CountryVietnam, token, answer, sub, photos)
	if !errors.Is(err, models.ErrPhotoTooLarge) {
		t.Fatalf("expected ErrPhotoTooLarge, got %v", err)
	}

	queue, _ := env.pending.Load(models.CountryVietnam)
	if len(queue) != 0 {
		t.Fatal("oversized photo must not queue anything")
	}
}

func submitOne(t *testing.T, env *moderationEnv, withPhoto bool) string {
	t.Helper()
	token, answer := env.issueSolvedCaptcha(t)
	sub := models.RealEstateSubmission{
		Title:       "Студия у моря",
		Description: "Сдам студию",
		ListingType: "rent",
	}
	var photos []models.PhotoUpload
	if withPhoto {
		photos = append(photos, models.PhotoUpload{Filename: "room.jpg", Data: []byte("jpeg-bytes")})
	}
	id, err := env.svc.Submit(context.Background(), models.CountryVietnam, token, answer, sub, photos)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return id
}

func TestApprovePublishesOnce(t *testing.T) {
	env := newModerationEnv(t)
	id := submitOne(t, env, true)

	listing, err := env.svc.Approve(context.Background(), models.CountryVietnam, id)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !strings.HasPrefix(listing.ID, "vietnam_real_estate_") {
		t.Fatalf("unexpected public id %q", listing.ID)
	}
	if listing.Status != fsm.StatusApproved {
		t.Fatalf("expected approved status, got %q", listing.Status)
	}
	if listing.TelegramFileID == "" {
		t.Fatal("photo must be exchanged for a durable handle")
	}

	catalog, err := env.catalog.Load(models.CountryVietnam)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	items := catalog[models.CategoryRealEstate]
	if len(items) != 1 || items[0].ID != listing.ID {
		t.Fatalf("approved listing must land in the catalog: %+v", items)
	}

	queue, _ := env.pending.Load(models.CountryVietnam)
	if len(queue) != 0 {
		t.Fatal("approved submission must leave the queue")
	}

	// a replayed approval finds nothing
	if _, err := env.svc.Approve(context.Background(), models.CountryVietnam, id); !errors.Is(err, models.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound on replay, got %v", err)
	}
	catalog, _ = env.catalog.Load(models.CountryVietnam)
	if len(catalog[models.CategoryRealEstate]) != 1 {
		t.Fatal("replay must not publish a second copy")
	}
}

func TestApproveInsertsAtHead(t *testing.T) {
	env := newModerationEnv(t)

	seeded := models.NewCatalog()
	seeded[models.CategoryRealEstate] = []models.Listing{{ID: "old", Title: "Старое"}}
	if err := env.catalog.Save(models.CountryVietnam, seeded); err != nil {
		t.Fatal(err)
	}

	id := submitOne(t, env, false)
	listing, err := env.svc.Approve(context.Background(), models.CountryVietnam, id)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	catalog, _ := env.catalog.Load(models.CountryVietnam)
	items := catalog[models.CategoryRealEstate]
	if len(items) != 2 || items[0].ID != listing.ID || items[1].ID != "old" {
		t.Fatalf("new listing must be at the head: %+v", items)
	}
}

func TestApproveSurvivesRelayOutage(t *testing.T) {
	env := newModerationEnv(t)
	id := submitOne(t, env, true)
	env.relay.storeErr = models.ErrRelayUnavailable

	listing, err := env.svc.Approve(context.Background(), models.CountryVietnam, id)
	if err != nil {
		t.Fatalf("relay outage must not block approval: %v", err)
	}
	if listing.TelegramFileID != "" {
		t.Fatal("outage must leave the listing without a photo handle")
	}

	catalog, _ := env.catalog.Load(models.CountryVietnam)
	if len(catalog[models.CategoryRealEstate]) != 1 {
		t.Fatal("listing must still be published")
	}
}

func TestRejectDropsSubmission(t *testing.T) {
	env := newModerationEnv(t)
	id := submitOne(t, env, false)

	if err := env.svc.Reject(context.Background(), models.CountryVietnam, id); err != nil {
		t.Fatalf("reject: %v", err)
	}

	queue, _ := env.pending.Load(models.CountryVietnam)
	if len(queue) != 0 {
		t.Fatal("rejected submission must leave the queue")
	}
	catalog, _ := env.catalog.Load(models.CountryVietnam)
	for _, key := range models.CategoryKeys {
		if len(catalog[key]) != 0 {
			t.Fatal("rejected submission must not be published")
		}
	}

	if err := env.svc.Reject(context.Background(), models.CountryVietnam, id); !errors.Is(err, models.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound on replay, got %v", err)
	}
}
