package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	amadeusTestBaseURL = "https://test.api.amadeus.com"
	amadeusProdBaseURL = "https://api.amadeus.com"
)

// FlightSearchError is an error the flight-search service itself reported
// (invalid codes, no results). Anything else that goes wrong during a search
// surfaces as a plain error.
type FlightSearchError struct {
	StatusCode int
	Detail     string
}

func (e *FlightSearchError) Error() string {
	return fmt.Sprintf("flight search error: status %d: %s", e.StatusCode, e.Detail)
}

type FlightOffersParams struct {
	Origin        string
	Destination   string
	DepartureDate string
	Adults        int
	TravelClass   string
	Max           int
}

type AmadeusSegmentPoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

type AmadeusSegment struct {
	Departure   AmadeusSegmentPoint `json:"departure"`
	Arrival     AmadeusSegmentPoint `json:"arrival"`
	CarrierCode string              `json:"carrierCode"`
	Number      string              `json:"number"`
}

type AmadeusItinerary struct {
	Duration string           `json:"duration"`
	Segments []AmadeusSegment `json:"segments"`
}

type AmadeusPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type AmadeusOffer struct {
	ID          string             `json:"id"`
	Itineraries []AmadeusItinerary `json:"itineraries"`
	Price       AmadeusPrice       `json:"price"`
}

// FlightOffersResult carries the offer list plus the carrier-code-to-name
// dictionary that arrives alongside it.
type FlightOffersResult struct {
	Offers   []AmadeusOffer
	Carriers map[string]string
}

// FlightOffersClient is what FlightService depends on, so tests can inject
// fakes instead of the real Amadeus client.
type FlightOffersClient interface {
	SearchOffers(ctx context.Context, params FlightOffersParams) (FlightOffersResult, error)
}

type AmadeusClient struct {
	httpClient   *http.Client
	clientID     string
	clientSecret string
	baseURL      string
	limiter      *rate.Limiter

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewAmadeusClient builds a client for the given environment ("test" selects
// the sandbox hostname, anything else production).
func NewAmadeusClient(httpClient *http.Client, clientID, clientSecret, hostname string) *AmadeusClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	baseURL := amadeusProdBaseURL
	if hostname == "" || hostname == "test" {
		baseURL = amadeusTestBaseURL
	}
	return &AmadeusClient{
		httpClient:   httpClient,
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      baseURL,
		// The sandbox allows 10 requests per second per key.
		limiter: rate.NewLimiter(rate.Limit(10), 10),
	}
}

func (c *AmadeusClient) refreshToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse token response: %v", err)
	}

	c.mu.Lock()
	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	c.mu.Unlock()

	return nil
}

func (c *AmadeusClient) getToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	expired := time.Now().After(c.tokenExpiry)
	token := c.accessToken
	c.mu.Unlock()

	if expired || token == "" {
		if err := c.refreshToken(ctx); err != nil {
			return "", err
		}
		c.mu.Lock()
		token = c.accessToken
		c.mu.Unlock()
	}
	return token, nil
}

func (c *AmadeusClient) SearchOffers(ctx context.Context, params FlightOffersParams) (FlightOffersResult, error) {
	if c == nil || c.clientID == "" {
		return FlightOffersResult{}, errors.New("amadeus client is not configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return FlightOffersResult{}, err
	}

	token, err := c.getToken(ctx)
	if err != nil {
		return FlightOffersResult{}, fmt.Errorf("auth failed: %w", err)
	}

	query := url.Values{}
	query.Set("originLocationCode", params.Origin)
	query.Set("destinationLocationCode", params.Destination)
	query.Set("departureDate", params.DepartureDate)
	query.Set("adults", fmt.Sprintf("%d", params.Adults))
	query.Set("travelClass", params.TravelClass)
	query.Set("max", fmt.Sprintf("%d", params.Max))

	endpoint := c.baseURL + "/v2/shopping/flight-offers?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return FlightOffersResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return FlightOffersResult{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FlightOffersResult{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return FlightOffersResult{}, &FlightSearchError{
			StatusCode: resp.StatusCode,
			Detail:     string(body),
		}
	}

	var parsed struct {
		Data         []AmadeusOffer `json:"data"`
		Dictionaries struct {
			Carriers map[string]string `json:"carriers"`
		} `json:"dictionaries"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return FlightOffersResult{}, fmt.Errorf("decode response: %w", err)
	}

	return FlightOffersResult{
		Offers:   parsed.Data,
		Carriers: parsed.Dictionaries.Carriers,
	}, nil
}
