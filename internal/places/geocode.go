package places

import (
	"context"
	"fmt"
	"net/url"
)

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		AddressComponents []struct {
			LongName  string   `json:"long_name"`
			ShortName string   `json:"short_name"`
			Types     []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
}

// ReverseGeocode resolves coordinates into a display location string such as
// "Washington, DC, USA".
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng string) (string, error) {
	params := url.Values{}
	params.Set("latlng", lat+","+lng)
	params.Set("key", c.apiKey)

	var geocode geocodeResponse
	if err := c.getJSON(ctx, "/maps/api/geocode/json", params, &geocode); err != nil {
		return "", err
	}
	if geocode.Status != "OK" || len(geocode.Results) == 0 {
		return "", fmt.Errorf("reverse geocode failed: status %s", geocode.Status)
	}

	var city, region, country string
	for _, component := range geocode.Results[0].AddressComponents {
		for _, t := range component.Types {
			switch t {
			case "locality":
				city = component.LongName
			case "administrative_area_level_1":
				region = component.ShortName
			case "country":
				country = component.LongName
			}
		}
	}

	return formatLocation(city, region, country), nil
}

// formatLocation applies the country-specific display rules.
func formatLocation(city, region, country string) string {
	switch country {
	case "United States":
		return fmt.Sprintf("%s, %s, USA", city, region)
	case "Canada":
		return fmt.Sprintf("%s, %s, Canada", city, region)
	case "United Kingdom":
		return fmt.Sprintf("%s, %s, UK", city, region)
	default:
		return fmt.Sprintf("%s, %s", city, country)
	}
}
