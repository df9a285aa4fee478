package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alekspetrov/tgassistant/internal/testutil"
)

// fakeBotAPI is a minimal Bot API server.
type fakeBotAPI struct {
	mu       sync.Mutex
	sent     []map[string]string
	fileData []byte
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	prefix := "/bot" + testutil.FakeTelegramBotToken + "/"
	filePrefix := "/file/bot" + testutil.FakeTelegramBotToken + "/"

	switch {
	case strings.HasPrefix(r.URL.Path, filePrefix):
		if strings.TrimPrefix(r.URL.Path, filePrefix) != "voice/file_1.oga" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(f.fileData)
		return
	case !strings.HasPrefix(r.URL.Path, prefix):
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		writeAPIError(w, 400, "Bad Request: "+err.Error())
		return
	}
	method := strings.TrimPrefix(r.URL.Path, prefix)

	var result any
	switch method {
	case "getMe":
		result = map[string]any{"id": 1, "is_bot": true, "first_name": "Assistant", "username": "assistant_bot"}
	case "sendMessage":
		f.mu.Lock()
		f.sent = append(f.sent, map[string]string{
			"chat_id":             r.PostForm.Get("chat_id"),
			"text":                r.PostForm.Get("text"),
			"reply_to_message_id": r.PostForm.Get("reply_to_message_id"),
		})
		f.mu.Unlock()
		result = map[string]any{"message_id": 5, "date": 0, "chat": map[string]any{"id": 1001, "type": "private"}}
	case "getFile":
		if r.PostForm.Get("file_id") == "missing" {
			writeAPIError(w, 400, "Bad Request: invalid file_id")
			return
		}
		result = map[string]any{"file_id": r.PostForm.Get("file_id"), "file_unique_id": "u1", "file_path": "voice/file_1.oga"}
	case "getUpdates":
		if off := r.PostForm.Get("offset"); off == "" || off == "0" {
			result = []map[string]any{{
				"update_id": 100,
				"message": map[string]any{
					"message_id": 7,
					"date":       0,
					"chat":       map[string]any{"id": 1001, "type": "private"},
					"text":       "hello",
				},
			}}
		} else {
			time.Sleep(20 * time.Millisecond)
			result = []map[string]any{}
		}
	default:
		writeAPIError(w, 404, "Not Found: method not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": result})
}

func writeAPIError(w http.ResponseWriter, code int, desc string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error_code": code, "description": desc})
}

func newTestClient(t *testing.T, api *fakeBotAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	c, err := NewClient(ClientConfig{
		BotToken:     testutil.FakeTelegramBotToken,
		APIEndpoint:  srv.URL + "/bot%s/%s",
		FileEndpoint: srv.URL + "/file/bot%s/%s",
		PollTimeout:  0,
		HTTPClient:   srv.Client(),
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return c
}

func TestNewClient_RequiresToken(t *testing.T) {
	if _, err := NewClient(ClientConfig{}); err == nil {
		t.Error("expected error without bot token")
	}
}

func TestNewClient_BotName(t *testing.T) {
	c := newTestClient(t, &fakeBotAPI{})
	if got := c.BotName(); got != "assistant_bot" {
		t.Errorf("BotName() = %q, want assistant_bot", got)
	}
}

func TestClient_SendText(t *testing.T) {
	api := &fakeBotAPI{}
	c := newTestClient(t, api)

	if err := c.SendText(context.Background(), 1001, 7, "hi there"); err != nil {
		t.Fatalf("SendText failed: %v", err)
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.sent) != 1 {
		t.Fatalf("expected 1 sendMessage call, got %d", len(api.sent))
	}
	want := map[string]string{"chat_id": "1001", "text": "hi there", "reply_to_message_id": "7"}
	for k, v := range want {
		if api.sent[0][k] != v {
			t.Errorf("%s = %q, want %q", k, api.sent[0][k], v)
		}
	}
}

func TestClient_SendTextCancelled(t *testing.T) {
	c := newTestClient(t, &fakeBotAPI{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.SendText(ctx, 1001, 0, "hi"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestClient_Download(t *testing.T) {
	c := newTestClient(t, &fakeBotAPI{fileData: []byte("OggS voice bytes")})

	var buf bytes.Buffer
	path, err := c.Download(context.Background(), "voice-file-id", &buf)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if path != "voice/file_1.oga" {
		t.Errorf("path = %q", path)
	}
	if buf.String() != "OggS voice bytes" {
		t.Errorf("content = %q", buf.String())
	}
}

func TestClient_DownloadUnknownFile(t *testing.T) {
	c := newTestClient(t, &fakeBotAPI{})

	var buf bytes.Buffer
	if _, err := c.Download(context.Background(), "missing", &buf); err == nil {
		t.Error("expected error for unknown file")
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written, got %d bytes", buf.Len())
	}
}

func TestClient_Updates(t *testing.T) {
	c := newTestClient(t, &fakeBotAPI{})

	updates := c.Updates()
	select {
	case u := <-updates:
		if u.UpdateID != 100 {
			t.Errorf("UpdateID = %d, want 100", u.UpdateID)
		}
		if u.Message == nil || u.Message.Text != "hello" {
			t.Errorf("unexpected message: %+v", u.Message)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no update received")
	}

	c.StopUpdates()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-updates:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("updates channel not closed after StopUpdates")
		}
	}
}
