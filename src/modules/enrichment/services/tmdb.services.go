package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	models "cinestash/src/modules/enrichment/models"

	"go.uber.org/zap"
)

const (
	DefaultLanguage = "en-IN"
	DefaultRegion   = "IN"
	posterSize      = "w780"
)

// ErrNotFound means TMDB had no match for the title or id.
var ErrNotFound = errors.New("no match found on TMDB")

type Config struct {
	APIKey    string
	BaseURL   string
	ImageBase string
	Timeout   time.Duration
}

// Client talks to the TMDB v3 API and hides its schema from the catalog.
type Client struct {
	apiKey     string
	baseURL    string
	imageBase  string
	httpClient *http.Client
	genres     *GenreCache
	logger     *zap.Logger
}

func NewClient(cfg Config, genres *GenreCache, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		imageBase:  strings.TrimRight(cfg.ImageBase, "/"),
		httpClient: &http.Client{Timeout: timeout},
		genres:     genres,
		logger:     logger,
	}
}

// SearchByTitle runs a title search and returns the best-voted result.
func (c *Client) SearchByTitle(ctx context.Context, kind models.Kind, title string, opts models.SearchOptions) (*models.Result, error) {
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.Region == "" {
		opts.Region = DefaultRegion
	}
	params := url.Values{}
	params.Set("query", title)
	params.Set("include_adult", "false")
	params.Set("language", opts.Language)
	params.Set("region", opts.Region)

	var resp models.SearchResponse
	if err := c.get(ctx, "/search/"+string(kind), params, &resp); err != nil {
		return nil, err
	}
	best := pickBest(resp.Results)
	if best == nil {
		return nil, ErrNotFound
	}
	c.logger.Debug("tmdb search",
		zap.String("kind", string(kind)),
		zap.String("query", title),
		zap.Int("results", len(resp.Results)),
		zap.Int("picked", best.ID))
	return best, nil
}

// FetchByID looks up a movie or tv show by TMDB id.
func (c *Client) FetchByID(ctx context.Context, kind models.Kind, id string, language string) (*models.Result, error) {
	if language == "" {
		language = defaultDetailLanguage(kind)
	}
	params := url.Values{}
	params.Set("language", language)

	var result models.Result
	if err := c.get(ctx, "/"+string(kind)+"/"+url.PathEscape(id), params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Normalize maps a TMDB result onto catalog fields, resolving genre ids
// through the genre cache.
func (c *Client) Normalize(ctx context.Context, kind models.Kind, r *models.Result, language string) (*models.Normalized, error) {
	if language == "" {
		language = DefaultLanguage
	}

	tags := []string{}
	switch {
	case len(r.Genres) > 0:
		for _, g := range r.Genres {
			if g.Name != "" {
				tags = append(tags, g.Name)
			}
		}
	case len(r.GenreIDs) > 0:
		names, err := c.genres.Names(ctx, kind, func(ctx context.Context) ([]models.Genre, error) {
			return c.fetchGenres(ctx, kind, language)
		})
		if err != nil {
			return nil, err
		}
		for _, id := range r.GenreIDs {
			if name, ok := names[id]; ok {
				tags = append(tags, name)
			}
		}
	}

	n := &models.Normalized{
		Description: r.Overview,
		Tags:        tags,
	}
	if kind == models.KindTV {
		n.Title = firstNonEmpty(r.Name, r.OriginalName)
		n.ReleaseDate = parseDate(r.FirstAirDate)
	} else {
		n.Title = firstNonEmpty(r.Title, r.OriginalTitle)
		n.ReleaseDate = parseDate(r.ReleaseDate)
	}
	if r.PosterPath != "" {
		n.Image = c.imageBase + "/" + posterSize + r.PosterPath
	}
	return n, nil
}

func (c *Client) fetchGenres(ctx context.Context, kind models.Kind, language string) ([]models.Genre, error) {
	params := url.Values{}
	params.Set("language", language)
	var list models.GenreList
	if err := c.get(ctx, "/genre/"+string(kind)+"/list", params, &list); err != nil {
		return nil, err
	}
	return list.Genres, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("api_key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr struct {
			StatusMessage string `json:"status_message"`
		}
		msg := strings.TrimSpace(string(body))
		if json.Unmarshal(body, &apiErr) == nil && apiErr.StatusMessage != "" {
			msg = apiErr.StatusMessage
		}
		return fmt.Errorf("tmdb %s returned %d: %s", path, resp.StatusCode, msg)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("tmdb %s: decode response: %w", path, err)
	}
	return nil
}

// pickBest prefers the highest vote count, then popularity; the first
// result wins ties.
func pickBest(results []models.Result) *models.Result {
	var best *models.Result
	for i := range results {
		r := &results[i]
		if best == nil ||
			r.VoteCount > best.VoteCount ||
			(r.VoteCount == best.VoteCount && r.Popularity > best.Popularity) {
			best = r
		}
	}
	return best
}

func defaultDetailLanguage(kind models.Kind) string {
	if kind == models.KindTV {
		return "en-US"
	}
	return DefaultLanguage
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
