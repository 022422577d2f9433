package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwebster45206/rogue-engine/pkg/game"
	"github.com/jwebster45206/rogue-engine/pkg/state"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// SessionResponse mirrors the API's session endpoint payload.
type SessionResponse struct {
	GameState *state.GameState `json:"game_state"`
	Result    *game.Result     `json:"result,omitempty"`
	Events    []game.Event     `json:"events,omitempty"`
}

// APIClient is a thin HTTP client for the rogue-engine API.
type APIClient struct {
	baseURL string
	client  *http.Client
}

func NewAPIClient(baseURL string, client *http.Client) *APIClient {
	return &APIClient{baseURL: baseURL, client: client}
}

// Healthy reports whether the API answers its health endpoint.
func (a *APIClient) Healthy() bool {
	resp, err := a.client.Get(a.baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// CreateSession starts a new game.
func (a *APIClient) CreateSession() (*SessionResponse, error) {
	resp, err := a.client.Post(a.baseURL+"/v1/session", "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return decodeSession(resp, http.StatusCreated)
}

// GetSession fetches the current state of a game.
func (a *APIClient) GetSession(id uuid.UUID) (*SessionResponse, error) {
	resp, err := a.client.Get(fmt.Sprintf("%s/v1/session/%s", a.baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return decodeSession(resp, http.StatusOK)
}

// SendAction applies one player action and returns the refreshed
// state together with the events the turn produced.
func (a *APIClient) SendAction(id uuid.UUID, action game.Action) (*SessionResponse, error) {
	jsonData, err := json.Marshal(action)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal action: %w", err)
	}

	resp, err := a.client.Post(
		fmt.Sprintf("%s/v1/session/%s/action", a.baseURL, id),
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return decodeSession(resp, http.StatusOK)
}

func decodeSession(resp *http.Response, wantStatus int) (*SessionResponse, error) {
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%s", errorResp.Error)
	}

	var sr SessionResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse session response: %w", err)
	}
	return &sr, nil
}
