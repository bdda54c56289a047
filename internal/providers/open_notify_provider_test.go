package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenNotifyProvider_GetISSPosition_Success(t *testing.T) {
	// Mock server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/iss-now.json" {
			t.Errorf("Expected path /iss-now.json, got %s", r.URL.Path)
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"message": "success",
			"timestamp": 1700000000,
			"iss_position": {"latitude": "24.8170", "longitude": "93.9368"}
		}`))
	}))
	defer server.Close()

	provider := &OpenNotifyProvider{
		BaseURL: server.URL,
		Client:  &http.Client{},
	}

	pos, err := provider.GetISSPosition(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if pos.Latitude != 24.8170 {
		t.Errorf("Expected latitude 24.8170, got %f", pos.Latitude)
	}
	if pos.Longitude != 93.9368 {
		t.Errorf("Expected longitude 93.9368, got %f", pos.Longitude)
	}
	if pos.Timestamp.Unix() != 1700000000 {
		t.Errorf("Expected timestamp 1700000000, got %d", pos.Timestamp.Unix())
	}
}

func TestOpenNotifyProvider_GetISSPosition_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message": "failure"}`))
	}))
	defer server.Close()

	provider := &OpenNotifyProvider{BaseURL: server.URL, Client: &http.Client{}}

	_, err := provider.GetISSPosition(context.Background())
	if err == nil {
		t.Error("Expected error for non-success message")
	}
}

func TestOpenNotifyProvider_GetNextPass_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/iss-pass.json" {
			t.Errorf("Expected path /iss-pass.json, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("n"); got != "1" {
			t.Errorf("Expected n=1, got %s", got)
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"message": "success",
			"response": [{"risetime": 1700001234, "duration": 390}]
		}`))
	}))
	defer server.Close()

	provider := &OpenNotifyProvider{BaseURL: server.URL, Client: &http.Client{}}

	pass, err := provider.GetNextPass(context.Background(), 24.8170, 93.9368)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if pass.RiseTime.Unix() != 1700001234 {
		t.Errorf("Expected risetime 1700001234, got %d", pass.RiseTime.Unix())
	}
	// 390 seconds rounds to 7 minutes
	if pass.DurationMinutes != 7 {
		t.Errorf("Expected 7 minutes, got %d", pass.DurationMinutes)
	}
}

func TestOpenNotifyProvider_GetAstronauts_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"message": "success",
			"number": 2,
			"people": [
				{"name": "Alpha", "craft": "ISS"},
				{"name": "Beta", "craft": "Tiangong"}
			]
		}`))
	}))
	defer server.Close()

	provider := &OpenNotifyProvider{BaseURL: server.URL, Client: &http.Client{}}

	astros, err := provider.GetAstronauts(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if astros.Number != 2 || len(astros.People) != 2 {
		t.Fatalf("Expected 2 astronauts, got %+v", astros)
	}
	if astros.People[0].Name != "Alpha" || astros.People[0].Craft != "ISS" {
		t.Errorf("Unexpected first astronaut: %+v", astros.People[0])
	}
}

func TestNASAProvider_GetAPOD_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/planetary/apod" {
			t.Errorf("Expected path /planetary/apod, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("Expected api_key test-key, got %s", got)
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"title": "Pillars of Creation",
			"explanation": "A famous view.",
			"url": "https://example.org/apod.jpg",
			"media_type": "image",
			"date": "2026-08-31"
		}`))
	}))
	defer server.Close()

	provider := &NASAProvider{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Client:  &http.Client{},
	}

	apod, err := provider.GetAPOD(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if apod.Title != "Pillars of Creation" {
		t.Errorf("Expected title Pillars of Creation, got %s", apod.Title)
	}
	if apod.MediaType != "image" {
		t.Errorf("Expected media_type image, got %s", apod.MediaType)
	}
}

func TestNASAProvider_GetAPOD_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := &NASAProvider{BaseURL: server.URL, APIKey: "k", Client: &http.Client{}}

	_, err := provider.GetAPOD(context.Background())
	if err == nil {
		t.Error("Expected error for non-200 status")
	}
}
