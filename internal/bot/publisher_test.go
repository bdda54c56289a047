package bot

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mas-astro/nightwatch/internal/astro"
)

func sampleDigest() *astro.Digest {
	return &astro.Digest{
		Content:     "🌌 **Good Morning, Stargazers!**",
		Title:       "Daily Astronomy Digest",
		Description: "Your daily dose of the cosmos",
		Color:       3447003,
		Fields: []astro.EmbedField{
			{Name: "🌙 Moon Phase", Value: "Full Moon 🌕", Inline: true},
			{Name: "🛰️ ISS", Value: "1,234 km away", Inline: true},
		},
		ImageURL:   "https://apod.nasa.gov/apod/image/today.jpg",
		FooterText: "Manipur Astronomical Society",
		Timestamp:  time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC),
	}
}

func TestWebhookPublisherPostsPayload(t *testing.T) {
	var got webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s, want application/json", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("payload is not valid JSON: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	p := NewWebhookPublisher(server.URL)
	if err := p.Publish(context.Background(), sampleDigest()); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	if got.Content != "🌌 **Good Morning, Stargazers!**" {
		t.Errorf("content = %q", got.Content)
	}
	if len(got.Embeds) != 1 {
		t.Fatalf("embeds = %d, want 1", len(got.Embeds))
	}
	embed := got.Embeds[0]
	if embed.Title != "Daily Astronomy Digest" {
		t.Errorf("embed title = %q", embed.Title)
	}
	if len(embed.Fields) != 2 {
		t.Errorf("embed fields = %d, want 2", len(embed.Fields))
	}
	if embed.Image == nil || embed.Image.URL == "" {
		t.Error("embed image missing")
	}
	if embed.Timestamp != "2026-03-14T08:00:00Z" {
		t.Errorf("timestamp = %q", embed.Timestamp)
	}
}

func TestWebhookPublisherReportsBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := NewWebhookPublisher(server.URL)
	if err := p.Publish(context.Background(), sampleDigest()); err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestWebhookPublisherOmitsImageWhenEmpty(t *testing.T) {
	var raw map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &raw)
	}))
	defer server.Close()

	d := sampleDigest()
	d.ImageURL = ""

	p := NewWebhookPublisher(server.URL)
	if err := p.Publish(context.Background(), d); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	embeds := raw["embeds"].([]any)
	embed := embeds[0].(map[string]any)
	if _, present := embed["image"]; present {
		t.Error("image key present in payload for digest without image")
	}
}

func TestDigestToEmbed(t *testing.T) {
	embed := digestToEmbed(sampleDigest())

	if embed.Title != "Daily Astronomy Digest" {
		t.Errorf("title = %q", embed.Title)
	}
	if embed.Color != 3447003 {
		t.Errorf("color = %d", embed.Color)
	}
	if len(embed.Fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(embed.Fields))
	}
	if !embed.Fields[0].Inline {
		t.Error("first field lost its inline flag")
	}
	if embed.Image == nil || embed.Image.URL != "https://apod.nasa.gov/apod/image/today.jpg" {
		t.Error("image not carried over")
	}
	if embed.Footer == nil || embed.Footer.Text != "Manipur Astronomical Society" {
		t.Error("footer not carried over")
	}
}
