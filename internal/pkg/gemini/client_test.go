package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestServer(t *testing.T, modelsBody string, completionText string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/models":
			_, _ = w.Write([]byte(modelsBody))
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":generateContent"):
			resp := map[string]interface{}{
				"candidates": []map[string]interface{}{
					{"content": map[string]interface{}{
						"parts": []map[string]string{{"text": completionText}},
					}},
				},
			}
			_ = json.NewEncoder(w).Encode(resp)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

const modelsJSON = `{"models":[
	{"name":"models/embedding-001","supportedGenerationMethods":["embedContent"]},
	{"name":"models/gemini-pro","supportedGenerationMethods":["generateContent"]},
	{"name":"models/gemini-2.0-flash","supportedGenerationMethods":["generateContent"]}
]}`

func newTestClient(url string) *Client {
	return NewClient(Config{BaseURL: url, APIKey: "test-key", Timeout: 2 * time.Second})
}

func TestResolveModelPrefersFlash(t *testing.T) {
	server := newTestServer(t, modelsJSON, `{}`)
	client := newTestClient(server.URL)

	model := client.resolveModel(context.Background())
	if model != "gemini-2.0-flash" {
		t.Errorf("resolved model = %q, want gemini-2.0-flash", model)
	}

	// Second call must come from the client cache.
	server.Close()
	if again := client.resolveModel(context.Background()); again != model {
		t.Errorf("cached model = %q, want %q", again, model)
	}
}

func TestResolveModelFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(server.URL)
	if model := client.resolveModel(context.Background()); model != fallbackModel {
		t.Errorf("resolved model = %q, want fallback %q", model, fallbackModel)
	}
}

func TestTranslateSearch(t *testing.T) {
	server := newTestServer(t, modelsJSON,
		`{"day":"Monday","filterType":"Computer Lab","searchKeyword":"CL5","timeStart":9,"timeEnd":10,"targetStatus":"Available"}`)
	client := newTestClient(server.URL)

	intent, err := client.TranslateSearch(context.Background(), "free computer lab monday morning", "Friday")
	if err != nil {
		t.Fatalf("TranslateSearch: %v", err)
	}
	if intent == nil {
		t.Fatal("TranslateSearch returned nil intent")
	}
	if intent.Day != "Monday" || intent.FilterType != "Computer Lab" || intent.SearchKeyword != "CL5" {
		t.Errorf("unexpected intent: %+v", intent)
	}
	if intent.TimeStart == nil || *intent.TimeStart != 9 {
		t.Errorf("timeStart = %v, want 9", intent.TimeStart)
	}
	if intent.TimeEnd == nil || *intent.TimeEnd != 10 {
		t.Errorf("timeEnd = %v, want 10", intent.TimeEnd)
	}
}

func TestTranslateSearchProseWrappedJSON(t *testing.T) {
	server := newTestServer(t, modelsJSON,
		"Sure! Here are your filters:\n```json\n{\"day\":\"Tuesday\"}\n```")
	client := newTestClient(server.URL)

	intent, err := client.TranslateSearch(context.Background(), "rooms tuesday", "Monday")
	if err != nil {
		t.Fatalf("TranslateSearch: %v", err)
	}
	if intent == nil || intent.Day != "Tuesday" {
		t.Errorf("intent = %+v, want day Tuesday", intent)
	}
}

func TestTranslateSearchNoUsableStructure(t *testing.T) {
	server := newTestServer(t, modelsJSON, "I could not understand that request.")
	client := newTestClient(server.URL)

	intent, err := client.TranslateSearch(context.Background(), "asdf", "Monday")
	if err != nil {
		t.Fatalf("TranslateSearch: %v", err)
	}
	if intent != nil {
		t.Errorf("intent = %+v, want nil for unusable completion", intent)
	}
}

func TestTranslateBooking(t *testing.T) {
	server := newTestServer(t, modelsJSON,
		`{"subject":"Math 101","roomName":"101-A","day":"Monday","startTime":"9:00 AM","endTime":"10:30 AM","professor":"Dr. Smith"}`)
	client := newTestClient(server.URL)

	intent, err := client.TranslateBooking(context.Background(), "book math 101 with dr smith monday 9 to 1030", "Friday")
	if err != nil {
		t.Fatalf("TranslateBooking: %v", err)
	}
	if intent == nil || intent.Subject != "Math 101" || intent.StartTime != "9:00 AM" {
		t.Errorf("unexpected intent: %+v", intent)
	}
}

func TestAnalyzeIssue(t *testing.T) {
	server := newTestServer(t, modelsJSON,
		`{"category":"Electrical","urgency":"High","summary":"Flickering lights","suggestedAction":"Dispatch electrician"}`)
	client := newTestClient(server.URL)

	analysis, err := client.AnalyzeIssue(context.Background(), "the lights keep flickering in 101-A")
	if err != nil {
		t.Fatalf("AnalyzeIssue: %v", err)
	}
	if analysis == nil || analysis.Category != "Electrical" || analysis.Urgency != "High" {
		t.Errorf("unexpected analysis: %+v", analysis)
	}
}

func TestDisabledClient(t *testing.T) {
	client := NewClient(Config{APIKey: ""})

	intent, err := client.TranslateSearch(context.Background(), "anything", "Monday")
	if err != nil {
		t.Fatalf("TranslateSearch on disabled client: %v", err)
	}
	if intent != nil {
		t.Errorf("intent = %+v, want nil from disabled client", intent)
	}
}

func TestExtractJSON(t *testing.T) {
	var out struct {
		Day string `json:"day"`
	}
	if err := extractJSON(`{"day":"Monday"}`, &out); err != nil || out.Day != "Monday" {
		t.Errorf("plain object: err=%v day=%q", err, out.Day)
	}

	out.Day = ""
	if err := extractJSON("prefix {\"day\":\"Friday\"} suffix", &out); err != nil || out.Day != "Friday" {
		t.Errorf("wrapped object: err=%v day=%q", err, out.Day)
	}

	if err := extractJSON("no json here", &out); err == nil {
		t.Error("expected error for text without JSON")
	}
}
