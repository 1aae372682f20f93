// Package music searches Spotify for a requested song and opens it in
// the web player. With API credentials it resolves the exact track via
// the Spotify Web API (client-credentials flow); without them it falls
// back to opening the public search page, which needs no auth at all.
package music

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/jayamurugan-31/zara/internal/browser"
	"github.com/jayamurugan-31/zara/internal/httpc"
	"github.com/jayamurugan-31/zara/internal/log"
)

const (
	tokenURL       = "https://accounts.spotify.com/api/token"
	defaultAPIBase = "https://api.spotify.com/v1"
	webPlayerBase  = "https://open.spotify.com"
)

// Player searches and plays songs through Spotify.
type Player struct {
	apiBase string
	api     *http.Client // authenticated; nil when no credentials
	openURL func(url string) error
}

// NewPlayer creates a Player. With empty credentials the player only
// uses the no-auth web search fallback.
func NewPlayer(clientID, clientSecret string) *Player {
	p := &Player{
		apiBase: defaultAPIBase,
		openURL: browser.Open,
	}
	if clientID != "" && clientSecret != "" {
		cc := &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpc.Client)
		p.api = cc.Client(ctx)
	}
	return p
}

// SearchAndPlay looks up query and opens the best match in the web
// player. It returns the user-facing confirmation text. Failures of the
// authenticated search degrade to the web search fallback rather than
// erroring.
func (p *Player) SearchAndPlay(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("music: empty song query")
	}

	if p.api != nil {
		track, err := p.search(ctx, query)
		switch {
		case err != nil:
			log.Warn("spotify search failed, falling back to web search", "error", err)
		case track == nil:
			log.Info("no spotify match", "query", query)
			return fmt.Sprintf("%s பாடல் கண்டுபிடிக்க முடியவில்லை.", query), nil
		default:
			if err := p.openURL(webPlayerBase + "/track/" + track.ID); err != nil {
				return "", fmt.Errorf("music: open track: %w", err)
			}
			log.Info("opening track", "name", track.Name, "artist", track.Artist())
			return fmt.Sprintf("%s கண்டுபிடித்தேன். வெப் பிளேயரில் திறக்கிறேன்...", track.Name), nil
		}
	}

	searchURL := webPlayerBase + "/search/" + url.PathEscape(query)
	if err := p.openURL(searchURL); err != nil {
		return "", fmt.Errorf("music: open search page: %w", err)
	}
	log.Info("opened spotify web search", "query", query)
	return fmt.Sprintf("%s Spotify இல் தேடுகிறேன்.", query), nil
}

// track is the slice of the Spotify track object the player needs.
type track struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
}

// Artist returns the primary artist name.
func (t *track) Artist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0].Name
}

// search returns the top track match for query, or nil when Spotify
// finds nothing.
func (p *Player) search(ctx context.Context, query string) (*track, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("type", "track")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBase+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("music: build search request: %w", err)
	}

	resp, err := p.api.Do(req)
	if err != nil {
		return nil, fmt.Errorf("music: search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("music: search failed (status %d): %s", resp.StatusCode, body)
	}

	var result struct {
		Tracks struct {
			Items []track `json:"items"`
		} `json:"tracks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("music: parse search response: %w", err)
	}
	if len(result.Tracks.Items) == 0 {
		return nil, nil
	}
	return &result.Tracks.Items[0], nil
}
