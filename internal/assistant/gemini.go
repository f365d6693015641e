package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/partscout/partscout/pkg/types"
)

// Provider configuration
const (
	ProviderGemini = "gemini"

	// EnvGeminiAPIKey is the environment variable holding the key.
	EnvGeminiAPIKey = "GEMINI_API_KEY"

	// DefaultGeminiModel is the generation model used for both query
	// enhancement and recommendation text.
	DefaultGeminiModel = "gemini-1.5-flash"

	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiTimeout = 30 * time.Second

	// resultsSummaryLimit bounds how many ranked results are described
	// to the model when generating recommendations.
	resultsSummaryLimit = 10
)

const enhancePromptFormat = `You are an expert in electronic components and engineering. A user is searching for electronic parts with this query: %q

Context: %s

Please enhance this search query to be more specific and effective for finding electronic components. Consider:
1. Technical specifications that might be implied
2. Common part number patterns
3. Manufacturer names
4. Component categories

Return only the enhanced search query, nothing else.`

const recommendPromptFormat = `Based on the user's search query %q and these search results:

%s

Provide 3-5 personalized recommendations for the user. Consider:
1. Alternative parts that might be better suited
2. Complementary components
3. Cost-effective alternatives
4. Higher quality options

Format each recommendation as a brief sentence explaining why it's recommended.`

// GeminiProvider implements Assistant using the Gemini REST API.
type GeminiProvider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	cache      *Cache
}

// GeminiOption customizes a GeminiProvider.
type GeminiOption func(*GeminiProvider)

// WithGeminiBaseURL overrides the API base URL (tests).
func WithGeminiBaseURL(u string) GeminiOption {
	return func(g *GeminiProvider) { g.baseURL = strings.TrimRight(u, "/") }
}

// WithGeminiModel overrides the generation model.
func WithGeminiModel(model string) GeminiOption {
	return func(g *GeminiProvider) { g.model = model }
}

// WithGeminiTimeout overrides the HTTP client timeout.
func WithGeminiTimeout(d time.Duration) GeminiOption {
	return func(g *GeminiProvider) { g.httpClient.Timeout = d }
}

// NewGeminiProvider creates a Gemini-backed assistant. An empty apiKey
// falls back to the GEMINI_API_KEY environment variable.
func NewGeminiProvider(apiKey string, cache *Cache, opts ...GeminiOption) (*GeminiProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv(EnvGeminiAPIKey)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s not set", ErrInvalidInput, EnvGeminiAPIKey)
	}

	g := &GeminiProvider{
		apiKey:  apiKey,
		model:   DefaultGeminiModel,
		baseURL: defaultGeminiBaseURL,
		httpClient: &http.Client{
			Timeout: defaultGeminiTimeout,
		},
		cache: cache,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// EnhanceQuery implements Assistant.
func (g *GeminiProvider) EnhanceQuery(ctx context.Context, query, userContext string) (string, error) {
	if err := ValidateQuery(query); err != nil {
		return "", err
	}

	hash := ComputeHash(query, userContext)
	if g.cache != nil {
		if enhanced, ok := g.cache.Get(hash); ok {
			return enhanced, nil
		}
	}

	prompt := fmt.Sprintf(enhancePromptFormat, query, userContext)

	config := DefaultRetryConfig()
	text, err := retryWithBackoff(ctx, config, func() (string, error) {
		return g.generate(ctx, prompt)
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}

	enhanced := strings.TrimSpace(text)
	if enhanced == "" {
		return "", ErrEmptyResponse
	}

	if g.cache != nil {
		g.cache.Set(hash, enhanced)
	}
	return enhanced, nil
}

// GenerateRecommendations implements Assistant.
func (g *GeminiProvider) GenerateRecommendations(ctx context.Context, results []types.Part, query string) ([]string, error) {
	if len(results) == 0 {
		return nil, nil
	}

	prompt := fmt.Sprintf(recommendPromptFormat, query, summarizeResults(results))

	config := DefaultRetryConfig()
	text, err := retryWithBackoff(ctx, config, func() (string, error) {
		return g.generate(ctx, prompt)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}

	recs := splitRecommendations(text)
	if len(recs) == 0 {
		return nil, ErrEmptyResponse
	}
	return recs, nil
}

// generate performs one generateContent call and returns the first
// candidate's text.
func (g *GeminiProvider) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: &geminiGenerationConfig{
			Temperature: 0.2,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("api call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("api error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var text strings.Builder
	for _, part := range apiResp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}

// Provider implements Assistant.
func (g *GeminiProvider) Provider() string {
	return ProviderGemini
}

// Model returns the generation model name.
func (g *GeminiProvider) Model() string {
	return g.model
}

// Close implements Assistant.
func (g *GeminiProvider) Close() error {
	g.httpClient.CloseIdleConnections()
	return nil
}

// summarizeResults renders the leading results as "- PN (Mfr): Desc"
// lines for the recommendation prompt.
func summarizeResults(results []types.Part) string {
	n := len(results)
	if n > resultsSummaryLimit {
		n = resultsSummaryLimit
	}

	lines := make([]string, 0, n)
	for _, p := range results[:n] {
		lines = append(lines, fmt.Sprintf("- %s (%s): %s", p.PartNumber, p.Manufacturer, p.Description))
	}
	return strings.Join(lines, "\n")
}

// splitRecommendations turns model output into at most
// MaxRecommendations non-empty lines.
func splitRecommendations(text string) []string {
	var recs []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		recs = append(recs, line)
		if len(recs) == MaxRecommendations {
			break
		}
	}
	return recs
}

// Gemini API wire types.
type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
