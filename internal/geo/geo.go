// Package geo picks a UI language from the caller's IP geolocation.
// Lookups go to ipapi.co and are cached in storage for a day; an explicitly
// saved language preference always wins over geolocation.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/erazemk/najdeno/internal/i18n"
	"github.com/erazemk/najdeno/internal/storage"
)

const (
	defaultEndpoint = "https://ipapi.co/json/"
	cacheTTL        = 24 * time.Hour
)

// Location is the subset of the ipapi.co response the dashboard uses.
type Location struct {
	City        string `json:"city"`
	CountryName string `json:"country_name"`
	CountryCode string `json:"country_code"`
}

// String renders the location as "City, Country".
func (l Location) String() string {
	return l.City + ", " + l.CountryName
}

// Resolver looks up and caches the caller's location.
type Resolver struct {
	gw       *storage.Gateway
	client   *http.Client
	endpoint string
	log      zerolog.Logger
	now      func() time.Time
}

// New creates a resolver against ipapi.co.
func New(gw *storage.Gateway, log zerolog.Logger) *Resolver {
	return &Resolver{
		gw:       gw,
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: defaultEndpoint,
		log:      log,
		now:      time.Now,
	}
}

// Language returns the language the dashboard should use. A stored
// preference short-circuits everything; otherwise the cached or freshly
// looked up country decides, and on any failure English is the answer.
func (r *Resolver) Language(ctx context.Context) string {
	if lang := r.gw.Setting(ctx, storage.KeyPreferredLanguage, ""); i18n.ValidLanguage(lang) {
		return lang
	}

	loc, err := r.Resolve(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("geolocation failed, falling back to default language")
		return i18n.DefaultLanguage
	}
	return LanguageForCountry(loc.CountryCode)
}

// Resolve returns the caller's location, from cache when it is less than a
// day old, otherwise from a live lookup whose result is cached.
func (r *Resolver) Resolve(ctx context.Context) (Location, error) {
	if loc, ok := r.cached(ctx); ok {
		return loc, nil
	}

	loc, err := r.lookup(ctx)
	if err != nil {
		return Location{}, err
	}
	r.cache(ctx, loc)
	return loc, nil
}

func (r *Resolver) cached(ctx context.Context) (Location, bool) {
	stamp := r.gw.Setting(ctx, storage.KeyLocationDate, "")
	if stamp == "" {
		return Location{}, false
	}
	cachedAt, err := time.Parse(time.RFC3339, stamp)
	if err != nil || r.now().Sub(cachedAt) >= cacheTTL {
		return Location{}, false
	}

	raw := r.gw.Setting(ctx, storage.KeyLocation, "")
	var loc Location
	if err := json.Unmarshal([]byte(raw), &loc); err != nil || loc.CountryCode == "" {
		return Location{}, false
	}
	return loc, true
}

func (r *Resolver) cache(ctx context.Context, loc Location) {
	raw, err := json.Marshal(loc)
	if err != nil {
		return
	}
	if err := r.gw.SaveSetting(ctx, storage.KeyLocation, string(raw)); err != nil {
		r.log.Warn().Err(err).Msg("caching location failed")
		return
	}
	if err := r.gw.SaveSetting(ctx, storage.KeyLocationDate, r.now().Format(time.RFC3339)); err != nil {
		r.log.Warn().Err(err).Msg("caching location timestamp failed")
	}
}

func (r *Resolver) lookup(ctx context.Context) (Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return Location{}, fmt.Errorf("building geolocation request: %w", err)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("fetching geolocation: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("geolocation service returned status %d", res.StatusCode)
	}

	var loc Location
	if err := json.NewDecoder(res.Body).Decode(&loc); err != nil {
		return Location{}, fmt.Errorf("decoding geolocation response: %w", err)
	}
	if loc.City == "" || loc.CountryName == "" {
		return Location{}, fmt.Errorf("incomplete geolocation response")
	}
	return loc, nil
}

// LanguageForCountry maps an ISO country code to a supported UI language.
// Countries without a supported language, and unknown codes, get English.
func LanguageForCountry(code string) string {
	switch strings.ToLower(code) {
	case "es", "mx", "ar", "bo", "cl", "co", "cr", "do", "ec", "gt",
		"hn", "ni", "pa", "pe", "py", "sv", "uy", "ve":
		return i18n.LangSpanish
	case "fr", "be", "ca", "ch", "lu":
		return i18n.LangFrench
	case "it", "sm", "va":
		return i18n.LangItalian
	case "de", "at", "li":
		return i18n.LangGerman
	default:
		return i18n.LangEnglish
	}
}
