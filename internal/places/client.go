// Package places wraps the external Google Places and Geocoding endpoints:
// a text search fanned out into per-result detail lookups, and reverse
// geocoding for the location endpoint.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// maxResults caps how many search hits get detail lookups.
	maxResults = 6

	noWebsiteSentinel = "No website available"
	placeholderImage  = "https://placehold.co/400x300?text=No+Image+Available"

	defaultBaseURL = "https://maps.googleapis.com"
)

// Location is a lat/lng pair as returned by the provider.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is the flattened search-plus-details shape returned to clients. It is
// built per request and never persisted.
type Place struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Website  string   `json:"website"`
	Image    string   `json:"image"`
	Location Location `json:"location"`
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a provider client. baseURL overrides the production
// endpoint and exists for tests; pass "" to use the real provider.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResult struct {
	PlaceID          string `json:"place_id"`
	Name             string `json:"name"`
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location Location `json:"location"`
	} `json:"geometry"`
}

type textSearchResponse struct {
	Status  string         `json:"status"`
	Results []searchResult `json:"results"`
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		Name             string `json:"name"`
		FormattedAddress string `json:"formatted_address"`
		Website          string `json:"website"`
		Photos           []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"result"`
}

// SearchRestaurants runs a restaurant text search and resolves the first
// maxResults hits into full Place records. Detail lookups run concurrently;
// a single failure aborts the whole search, so a non-nil error always means
// no results at all (no partial lists).
func (c *Client) SearchRestaurants(ctx context.Context, query string) ([]Place, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("type", "restaurant")
	params.Set("key", c.apiKey)

	var search textSearchResponse
	if err := c.getJSON(ctx, "/maps/api/place/textsearch/json", params, &search); err != nil {
		return nil, err
	}
	if search.Status != "OK" && search.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places search failed: status %s", search.Status)
	}
	if len(search.Results) == 0 {
		return []Place{}, nil
	}

	results := search.Results
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	places := make([]Place, len(results))
	g, ctx := errgroup.WithContext(ctx)
	for i, result := range results {
		i, result := i, result
		g.Go(func() error {
			place, err := c.lookupDetails(ctx, result)
			if err != nil {
				return err
			}
			places[i] = place
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return places, nil
}

// lookupDetails fetches one result's details and merges them with the search
// hit, filling sentinel values for a missing website or photo.
func (c *Client) lookupDetails(ctx context.Context, result searchResult) (Place, error) {
	params := url.Values{}
	params.Set("place_id", result.PlaceID)
	params.Set("fields", "name,formatted_address,website,photos")
	params.Set("key", c.apiKey)

	var details detailsResponse
	if err := c.getJSON(ctx, "/maps/api/place/details/json", params, &details); err != nil {
		return Place{}, err
	}
	if details.Status != "OK" {
		return Place{}, fmt.Errorf("place details failed: status %s", details.Status)
	}

	place := Place{
		Name:     details.Result.Name,
		Address:  details.Result.FormattedAddress,
		Website:  details.Result.Website,
		Image:    placeholderImage,
		Location: result.Geometry.Location,
	}
	if place.Name == "" {
		place.Name = result.Name
	}
	if place.Address == "" {
		place.Address = result.FormattedAddress
	}
	if place.Website == "" {
		place.Website = noWebsiteSentinel
	}
	if len(details.Result.Photos) > 0 {
		place.Image = c.photoURL(details.Result.Photos[0].PhotoReference)
	}

	return place, nil
}

func (c *Client) photoURL(reference string) string {
	params := url.Values{}
	params.Set("maxwidth", "400")
	params.Set("photo_reference", reference)
	params.Set("key", c.apiKey)
	return c.baseURL + "/maps/api/place/photo?" + params.Encode()
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider request failed: status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
