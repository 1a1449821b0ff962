package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/service"
)

// stateDTO элемент ответа GET /states
type stateDTO struct {
	ID    int64  `json:"id"`
	Sigla string `json:"sigla"`
	Nome  string `json:"nome"`
}

// RegionsClient источник регионов поверх GET /states
type RegionsClient struct {
	baseURL string
	http    *http.Client
}

var _ service.RegionSource = (*RegionsClient)(nil)

func NewRegionsClient(baseURL string, hc *http.Client) *RegionsClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &RegionsClient{baseURL: baseURL, http: hc}
}

func (c *RegionsClient) FetchRegions(ctx context.Context) ([]domain.Region, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(c.baseURL, "/states"), nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequest: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET /states: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET /states: unexpected status %d", resp.StatusCode)
	}

	var states []stateDTO
	if err := json.NewDecoder(resp.Body).Decode(&states); err != nil {
		return nil, fmt.Errorf("decode states: %w", err)
	}

	regions := make([]domain.Region, 0, len(states))
	for _, s := range states {
		regions = append(regions, domain.Region{ID: s.ID, Code: s.Sigla, Name: s.Nome})
	}
	return regions, nil
}
