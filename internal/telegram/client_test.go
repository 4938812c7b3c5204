package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"goldantelope/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(srv.Client(), "test-token", "-1001234")
	c.SetBaseURL(srv.URL)
	return c
}

func TestStorePhotoPicksLargestSize(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/sendPhoto") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(4 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("chat_id"); got != "-1001234" {
			t.Errorf("unexpected chat_id %q", got)
		}
		w.Write([]byte(`{"ok":true,"result":{"photo":[
			{"file_id":"small","file_size":100},
			{"file_id":"large","file_size":90000},
			{"file_id":"medium","file_size":5000}
		]}}`))
	})

	fileID, err := c.StorePhoto(context.Background(), []byte("jpeg"), "Заголовок")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if fileID != "large" {
		t.Fatalf("expected largest size file_id, got %q", fileID)
	}
}

func TestStorePhotoAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	})

	_, err := c.StorePhoto(context.Background(), []byte("jpeg"), "")
	if !errors.Is(err, models.ErrRelayUnavailable) {
		t.Fatalf("expected ErrRelayUnavailable, got %v", err)
	}
}

func TestPhotoURL(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/getFile") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("file_id"); got != "abc123" {
			t.Errorf("unexpected file_id %q", got)
		}
		w.Write([]byte(`{"ok":true,"result":{"file_path":"photos/file_7.jpg"}}`))
	})

	url, err := c.PhotoURL(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.HasSuffix(url, "/file/bottest-token/photos/file_7.jpg") {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestSendMessage(t *testing.T) {
	var gotText, gotMode string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotText = r.FormValue("text")
		gotMode = r.FormValue("parse_mode")
		w.Write([]byte(`{"ok":true,"result":{}}`))
	})

	if err := c.SendMessage(context.Background(), "42", "<b>привет</b>"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotText != "<b>привет</b>" || gotMode != "HTML" {
		t.Fatalf("unexpected form: text=%q mode=%q", gotText, gotMode)
	}
}

func TestKnownChats(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"result":[
			{"message":{"chat":{"id":555},"from":{"username":"Anna"}}},
			{"message":{"chat":{"id":777},"from":{"username":"boris"}}},
			{"message":{"chat":{"id":0},"from":{"username":"ghost"}}}
		]}`))
	})

	chats, err := c.KnownChats(context.Background())
	if err != nil {
		t.Fatalf("known chats: %v", err)
	}
	if chats["anna"] != "555" {
		t.Fatalf("usernames must be lowercased, got %v", chats)
	}
	if chats["boris"] != "777" {
		t.Fatalf("missing boris, got %v", chats)
	}
	if _, ok := chats["ghost"]; ok {
		t.Fatal("updates without a chat id must be skipped")
	}
}

func TestUnconfiguredClient(t *testing.T) {
	c := NewClient(nil, "", "")

	if _, err := c.StorePhoto(context.Background(), nil, ""); !errors.Is(err, models.ErrRelayUnavailable) {
		t.Fatalf("expected ErrRelayUnavailable, got %v", err)
	}
	if _, err := c.PhotoURL(context.Background(), "x"); !errors.Is(err, models.ErrRelayUnavailable) {
		t.Fatalf("expected ErrRelayUnavailable, got %v", err)
	}
	if err := c.SendMessage(context.Background(), "1", "hi"); !errors.Is(err, models.ErrRelayUnavailable) {
		t.Fatalf("expected ErrRelayUnavailable, got %v", err)
	}
}
