package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleTokenVerifier validates Google ID tokens against the tokeninfo
// endpoint and checks the audience.
type GoogleTokenVerifier struct {
	clientID   string
	httpClient *http.Client
	endpoint   string
}

// NewGoogleTokenVerifier creates a verifier bound to the OAuth client ID.
func NewGoogleTokenVerifier(clientID string) (*GoogleTokenVerifier, error) {
	if clientID == "" {
		return nil, fmt.Errorf("google client ID is required")
	}
	return &GoogleTokenVerifier{
		clientID:   clientID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   googleTokenInfoURL,
	}, nil
}

type googleTokenInfo struct {
	Aud           string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// Verify resolves the ID token to a profile. Google rejects expired and
// malformed tokens server side, so only the audience and mailbox state are
// checked here.
func (v *GoogleTokenVerifier) Verify(ctx context.Context, idToken string) (*ExternalProfile, error) {
	if idToken == "" {
		return nil, fmt.Errorf("id token is required")
	}

	reqURL := v.endpoint + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo rejected the token: status %d", resp.StatusCode)
	}

	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if info.Aud != v.clientID {
		return nil, fmt.Errorf("token audience mismatch")
	}
	if info.EmailVerified != "true" {
		return nil, fmt.Errorf("google account email is not verified")
	}

	return &ExternalProfile{
		Email:     info.Email,
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
		Picture:   info.Picture,
	}, nil
}
