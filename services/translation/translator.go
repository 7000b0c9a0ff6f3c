package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"roomservice/models"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// Translator translates short menu texts.
type Translator interface {
	// Translate returns "" when the text cannot be translated.
	Translate(ctx context.Context, text, targetLang string) string
}

// RapidAPITranslator calls the text-translator API on RapidAPI.
type RapidAPITranslator struct {
	APIKey  string
	Host    string
	BaseURL string // defaults to https://<Host>
	Client  *http.Client
	Logger  *zap.Logger
}

func NewRapidAPITranslator(apiKey, host string, logger *zap.Logger) *RapidAPITranslator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RapidAPITranslator{
		APIKey: apiKey,
		Host:   host,
		Client: &http.Client{Timeout: 10 * time.Second},
		Logger: logger,
	}
}

type translateResponse struct {
	Data struct {
		TranslatedText string `json:"translatedText"`
	} `json:"data"`
	TranslatedText string `json:"translatedText"`
}

func (t *RapidAPITranslator) Translate(ctx context.Context, text, targetLang string) string {
	if text == "" || t.APIKey == "" {
		return ""
	}
	out, err := t.translate(ctx, text, targetLang)
	if err != nil {
		t.Logger.Warn("translation failed", zap.String("lang", targetLang), zap.Error(err))
		return ""
	}
	return out
}

func (t *RapidAPITranslator) translate(ctx context.Context, text, targetLang string) (string, error) {
	base := t.BaseURL
	if base == "" {
		base = "https://" + t.Host
	}
	form := url.Values{}
	form.Set("source_language", "auto")
	form.Set("target_language", targetLang)
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/translate", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("building request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-RapidAPI-Key", t.APIKey)
	req.Header.Set("X-RapidAPI-Host", t.Host)

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("translator returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding response failed: %w", err)
	}
	if out.Data.TranslatedText != "" {
		return out.Data.TranslatedText, nil
	}
	return out.TranslatedText, nil
}

// TranslateName fills every menu language for a Turkish category name.
// Languages that fail stay empty.
func TranslateName(ctx context.Context, t Translator, name string) models.Translations {
	tr := models.Translations{TR: name}
	if t == nil || name == "" {
		return tr
	}

	targets := map[string]*string{"en": &tr.EN, "ru": &tr.RU, "de": &tr.DE, "fr": &tr.FR}
	var wg conc.WaitGroup
	for lang, dst := range targets {
		wg.Go(func() {
			*dst = t.Translate(ctx, name, lang)
		})
	}
	wg.Wait()
	return tr
}
