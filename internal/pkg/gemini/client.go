package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultTimeout = 15 * time.Second

// ErrNoIntent signals that the model produced no usable structure. Callers
// treat it as "no additional constraint", never as a reason to abort.
var ErrNoIntent = errors.New("no intent extracted")

// SearchIntent is the structured form of a free-text room search.
// Every field is optional; a nil pointer means no constraint.
type SearchIntent struct {
	Day           string   `json:"day,omitempty"`
	FilterType    string   `json:"filterType,omitempty"`
	SearchKeyword string   `json:"searchKeyword,omitempty"`
	TimeStart     *float64 `json:"timeStart,omitempty"`
	TimeEnd       *float64 `json:"timeEnd,omitempty"`
	MinCapacity   *int     `json:"minCapacity,omitempty"`
	Equipment     []string `json:"equipment,omitempty"`
	TargetStatus  string   `json:"targetStatus,omitempty"`
}

// BookingIntent is the structured form of a free-text scheduling request.
type BookingIntent struct {
	Subject   string `json:"subject,omitempty"`
	RoomName  string `json:"roomName,omitempty"`
	Day       string `json:"day,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Professor string `json:"professor,omitempty"`
	Capacity  *int   `json:"capacity,omitempty"`
}

// IssueAnalysis is the structured triage of a free-text maintenance report.
type IssueAnalysis struct {
	Category        string `json:"category"`
	Urgency         string `json:"urgency"`
	Summary         string `json:"summary"`
	SuggestedAction string `json:"suggestedAction"`
}

// Client calls the generative-language REST API. It is explicitly
// constructed and injected; the resolved model name lives on the client
// rather than in package state.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client

	mu    sync.Mutex
	model string // resolved lazily via ListModels, cached for the client's lifetime
}

// Config holds client settings.
type Config struct {
	BaseURL string // defaults to the public generativelanguage endpoint
	APIKey  string
	Timeout time.Duration
}

// Preferred model names, newest first. The first one present in the
// ListModels response wins; any flash model is the fallback.
var preferredModels = []string{
	"gemini-2.5-flash",
	"gemini-2.0-flash",
	"gemini-2.0-flash-001",
	"gemini-flash-latest",
	"gemini-1.5-flash",
}

const fallbackModel = "gemini-2.0-flash"

// NewClient creates a Gemini client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.APIKey,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Enabled reports whether the client has credentials to work with.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

type modelList struct {
	Models []struct {
		Name                       string   `json:"name"`
		SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
	} `json:"models"`
}

// resolveModel picks a generation-capable model once and caches it.
func (c *Client) resolveModel(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.model != "" {
		return c.model
	}

	model := fallbackModel
	if name, err := c.listBestModel(ctx); err != nil {
		log.Warn().Err(err).Str("fallback", fallbackModel).Msg("Model discovery failed")
	} else {
		model = name
	}

	c.model = model
	log.Info().Str("model", model).Msg("Using generative model")
	return model
}

func (c *Client) listBestModel(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models?key="+c.apiKey, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model list http error: status=%d", resp.StatusCode)
	}

	var list modelList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return "", err
	}

	var capable []string
	for _, m := range list.Models {
		for _, method := range m.SupportedGenerationMethods {
			if method == "generateContent" {
				capable = append(capable, strings.TrimPrefix(m.Name, "models/"))
				break
			}
		}
	}
	if len(capable) == 0 {
		return "", errors.New("no generation-capable models listed")
	}

	for _, pref := range preferredModels {
		for _, name := range capable {
			if strings.Contains(name, pref) {
				return name, nil
			}
		}
	}
	for _, name := range capable {
		if strings.Contains(name, "flash") {
			return name, nil
		}
	}
	return capable[0], nil
}

type generateRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
}

type generateResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate runs one completion and unmarshals the JSON object found in the
// reply into out. Prose around the object is tolerated.
func (c *Client) generate(ctx context.Context, prompt string, out interface{}) error {
	if !c.Enabled() {
		return fmt.Errorf("gemini: client not configured: %w", ErrNoIntent)
	}

	model := c.resolveModel(ctx)

	var reqBody generateRequest
	reqBody.Contents = make([]struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	}, 1)
	reqBody.Contents[0].Parts = []struct {
		Text string `json:"text"`
	}{{Text: prompt}}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("gemini request error: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("gemini request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gemini request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("gemini response error: %w", err)
	}

	var gen generateResponse
	if err := json.Unmarshal(body, &gen); err != nil {
		return fmt.Errorf("gemini response error: %w", err)
	}
	if gen.Error != nil {
		return fmt.Errorf("gemini api error: %s: %w", gen.Error.Message, ErrNoIntent)
	}
	if len(gen.Candidates) == 0 || len(gen.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("gemini: empty completion: %w", ErrNoIntent)
	}

	text := gen.Candidates[0].Content.Parts[0].Text
	if err := extractJSON(text, out); err != nil {
		return fmt.Errorf("gemini: %w", err)
	}
	return nil
}

var jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)

// extractJSON parses the first JSON object in text into out. The model is
// asked for raw JSON but sometimes wraps it in prose or code fences.
func extractJSON(text string, out interface{}) error {
	text = strings.TrimSpace(text)
	if err := json.Unmarshal([]byte(text), out); err == nil {
		return nil
	}
	if match := jsonObjectRe.FindString(text); match != "" {
		if err := json.Unmarshal([]byte(match), out); err == nil {
			return nil
		}
	}
	return ErrNoIntent
}

// TranslateSearch extracts room-search filters from a free-text query.
// Returns (nil, nil) when the text carries no usable intent.
func (c *Client) TranslateSearch(ctx context.Context, query string, today string) (*SearchIntent, error) {
	prompt := fmt.Sprintf(`Context: Today is %s. User Query: %q
Task: Extract search filters for campus classrooms.
Ref Data: Types: [%s]

Rules:
1. 'day': Convert relative terms ("today", "tomorrow") to a strict day string.
2. 'filterType': Match fuzzy to Types. If "room"/"any"/"empty", return "All".
3. 'searchKeyword': Specific room names (e.g. "CL5", "101-A").
4. 'timeStart'/'timeEnd': 24h numbers. "12pm" = start:12, end:13.
5. 'targetStatus': "Available" (default), "Maintenance", "Reserved".

OUTPUT RAW JSON ONLY:
{"day": "Monday"|null, "filterType": "string"|null, "searchKeyword": "string"|null, "timeStart": number|null, "timeEnd": number|null, "targetStatus": "string"|null}`,
		today, query, quoteJoin(roomTypePrompt))

	var intent SearchIntent
	if err := c.generate(ctx, prompt, &intent); err != nil {
		if errors.Is(err, ErrNoIntent) {
			log.Debug().Str("query", query).Msg("No search intent extracted")
			return nil, nil
		}
		return nil, err
	}
	return &intent, nil
}

// TranslateBooking extracts schedule details from a free-text booking request.
// Returns (nil, nil) when nothing usable was found.
func (c *Client) TranslateBooking(ctx context.Context, query string, today string) (*BookingIntent, error) {
	prompt := fmt.Sprintf(`Context: Today is %s. User Query: %q
Task: Extract class schedule details.
Times are 12-hour clock strings like "9:00 AM".

OUTPUT RAW JSON ONLY:
{"subject": "string"|null, "roomName": "string"|null, "day": "string"|null, "startTime": "string"|null, "endTime": "string"|null, "professor": "string"|null}`,
		today, query)

	var intent BookingIntent
	if err := c.generate(ctx, prompt, &intent); err != nil {
		if errors.Is(err, ErrNoIntent) {
			return nil, nil
		}
		return nil, err
	}
	return &intent, nil
}

// AnalyzeIssue triages a free-text maintenance report.
// Returns (nil, nil) when the model produced nothing usable.
func (c *Client) AnalyzeIssue(ctx context.Context, description string) (*IssueAnalysis, error) {
	prompt := fmt.Sprintf(`User Report: %q
Task: Analyze the facility issue.
Rules:
1. Category: Electrical, Plumbing, HVAC, Equipment, Cleaning, Other.
2. Urgency: Low, Medium, High, Critical.

OUTPUT RAW JSON ONLY:
{"category": "Equipment", "urgency": "Medium", "summary": "string", "suggestedAction": "string"}`,
		description)

	var analysis IssueAnalysis
	if err := c.generate(ctx, prompt, &analysis); err != nil {
		if errors.Is(err, ErrNoIntent) {
			return nil, nil
		}
		return nil, err
	}
	return &analysis, nil
}

var roomTypePrompt = []string{
	"Lecture Hall", "Laboratory", "Computer Lab", "Seminar Room",
	"Auditorium", "Study Hall", "Conference Room",
}

func quoteJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item + "'"
	}
	return strings.Join(quoted, ", ")
}
