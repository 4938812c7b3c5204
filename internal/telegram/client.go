package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"goldantelope/internal/models"
)

const (
	defaultBaseURL = "https://api.telegram.org"

	storeTimeout   = 30 * time.Second
	resolveTimeout = 10 * time.Second
	messageTimeout = 10 * time.Second

	maxCaptionLen = 1024
)

// Client is a minimal Telegram Bot API client. The photo channel acts as
// the durable backing store for listing images: sendPhoto returns an
// opaque file_id that stays valid indefinitely, while download URLs from
// getFile expire and must be re-resolved on every read.
type Client struct {
	httpClient   *http.Client
	token        string
	photoChannel string
	baseURL      string
}

// NewClient constructs a new Bot API client.
func NewClient(httpClient *http.Client, token, photoChannel string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: storeTimeout}
	}
	return &Client{
		httpClient:   httpClient,
		token:        token,
		photoChannel: photoChannel,
		baseURL:      defaultBaseURL,
	}
}

// SetBaseURL overrides the Telegram API endpoint.
func (c *Client) SetBaseURL(u string) { c.baseURL = strings.TrimRight(u, "/") }

// Configured reports whether a bot token is present.
func (c *Client) Configured() bool { return c.token != "" }

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrRelayUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", models.ErrRelayUnavailable, err)
	}
	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("%w: decode response: %v", models.ErrRelayUnavailable, err)
	}
	if !envelope.OK {
		return fmt.Errorf("%w: %s", models.ErrRelayUnavailable, envelope.Description)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("%w: decode result: %v", models.ErrRelayUnavailable, err)
		}
	}
	return nil
}

type photoSize struct {
	FileID   string `json:"file_id"`
	FileSize int64  `json:"file_size"`
}

// StorePhoto uploads image bytes to the photo channel and returns the
// permanent file_id of the largest stored size. Single attempt, bounded
// timeout, no retry.
func (c *Client) StorePhoto(ctx context.Context, data []byte, caption string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("%w: bot token not configured", models.ErrRelayUnavailable)
	}
	if len(caption) > maxCaptionLen {
		caption = caption[:maxCaptionLen]
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", "photo.jpg")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	mw.WriteField("chat_id", c.photoChannel)
	mw.WriteField("caption", caption)
	if err := mw.Close(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendPhoto"), &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result struct {
		Photo []photoSize `json:"photo"`
	}
	if err := c.do(req, &result); err != nil {
		return "", err
	}
	if len(result.Photo) == 0 {
		return "", fmt.Errorf("%w: no photo sizes in response", models.ErrRelayUnavailable)
	}
	largest := result.Photo[0]
	for _, p := range result.Photo[1:] {
		if p.FileSize > largest.FileSize {
			largest = p
		}
	}
	return largest.FileID, nil
}

// PhotoURL resolves a file_id to a transient download URL. The URL is
// short-lived by design and must never be persisted; callers re-resolve
// on every read.
func (c *Client) PhotoURL(ctx context.Context, fileID string) (string, error) {
	if !c.Configured() || fileID == "" {
		return "", fmt.Errorf("%w: bot token or file id missing", models.ErrRelayUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	endpoint := c.methodURL("getFile") + "?file_id=" + url.QueryEscape(fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	var result struct {
		FilePath string `json:"file_path"`
	}
	if err := c.do(req, &result); err != nil {
		return "", err
	}
	if result.FilePath == "" {
		return "", fmt.Errorf("%w: empty file path", models.ErrRelayUnavailable)
	}
	return fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.token, result.FilePath), nil
}

// SendMessage delivers an HTML-formatted message to a chat.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	if !c.Configured() || chatID == "" {
		return fmt.Errorf("%w: bot token or chat id missing", models.ErrRelayUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, messageTimeout)
	defer cancel()

	form := url.Values{}
	form.Set("chat_id", chatID)
	form.Set("text", text)
	form.Set("parse_mode", "HTML")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendMessage"), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, nil)
}

type update struct {
	Message struct {
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		From struct {
			Username string `json:"username"`
		} `json:"from"`
	} `json:"message"`
}

// KnownChats scans recent bot updates and returns username -> chat id for
// every user that has messaged the bot. Used to deliver verification
// codes to users identified only by @username.
func (c *Client) KnownChats(ctx context.Context) (map[string]string, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("%w: bot token not configured", models.ErrRelayUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, messageTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.methodURL("getUpdates")+"?limit=100", nil)
	if err != nil {
		return nil, err
	}

	var updates []update
	if err := c.do(req, &updates); err != nil {
		return nil, err
	}
	chats := make(map[string]string)
	for _, u := range updates {
		username := strings.ToLower(u.Message.From.Username)
		if username != "" && u.Message.Chat.ID != 0 {
			chats[username] = fmt.Sprintf("%d", u.Message.Chat.ID)
		}
	}
	return chats, nil
}

// FetchImage downloads image bytes from an external URL, used when an
// approved listing references a remote image instead of inline bytes.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrRelayUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: image fetch status %d", models.ErrRelayUnavailable, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
