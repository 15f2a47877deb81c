package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/2beens/fittracker/internal/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginResponse struct {
	Token string `json:"token"`
}

func (s *IntegrationTestSuite) registerUser(ctx context.Context, username, password, name string) users.User {
	t := s.T()
	t.Helper()

	reqJson, err := json.Marshal(users.RegisterRequest{
		Username: username,
		Password: password,
		Name:     name,
	})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/a/register", serverEndpoint), bytes.NewReader(reqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created users.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	return created
}

func (s *IntegrationTestSuite) loginUser(ctx context.Context, username, password string) string {
	t := s.T()
	t.Helper()

	form := url.Values{}
	form.Add("username", username)
	form.Add("password", password)
	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/a/login", serverEndpoint), strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp loginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	require.NotEmpty(t, loginResp.Token)
	return loginResp.Token
}

func (s *IntegrationTestSuite) TestAuthFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	created := s.registerUser(ctx, "authflow", "testpass-123", "Auth Flow")
	assert.NotZero(t, created.ID)
	assert.Equal(t, "authflow", created.Username)

	// registering the same username again conflicts
	reqJson, err := json.Marshal(users.RegisterRequest{
		Username: "authflow",
		Password: "other-pass-123",
		Name:     "Other Name",
	})
	require.NoError(t, err)
	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/a/register", serverEndpoint), bytes.NewReader(reqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	token := s.loginUser(ctx, "authflow", "testpass-123")

	// profile reachable with the session token
	req, err = http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/profile", serverEndpoint), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-FT-TOKEN", token)
	resp, err = s.httpClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var profile users.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	resp.Body.Close()
	assert.Equal(t, created.ID, profile.ID)

	// logout kills the session
	req, err = http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/a/logout", serverEndpoint), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-FT-TOKEN", token)
	resp, err = s.httpClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req, err = http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/profile", serverEndpoint), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-FT-TOKEN", token)
	resp, err = s.httpClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestLogin_WrongCredentials() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.registerUser(ctx, "wrongcreds", "testpass-123", "Wrong Creds")

	form := url.Values{}
	form.Add("username", "wrongcreds")
	form.Add("password", "bad-password")
	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/a/login", serverEndpoint), strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(respBytes), "wrong credentials")
}

func (s *IntegrationTestSuite) TestProfileUpdate() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.registerUser(ctx, "profupdate", "testpass-123", "Prof Update")
	token := s.loginUser(ctx, "profupdate", "testpass-123")

	height := 180.0
	goal := users.FitnessGoalMaintenance
	updateJson, err := json.Marshal(users.ProfileUpdate{
		Name:        "Prof Updated",
		Height:      &height,
		FitnessGoal: &goal,
	})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, "PUT", fmt.Sprintf("%s/profile/update", serverEndpoint), bytes.NewReader(updateJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-FT-TOKEN", token)

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated users.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "Prof Updated", updated.Name)
	require.NotNil(t, updated.Height)
	assert.Equal(t, 180.0, *updated.Height)
	require.NotNil(t, updated.FitnessGoal)
	assert.Equal(t, users.FitnessGoalMaintenance, *updated.FitnessGoal)

	// the stored row reflects the update
	var dbName string
	require.NoError(t, s.DB.QueryRow(
		`SELECT name FROM fituser WHERE username = $1`, "profupdate",
	).Scan(&dbName))
	assert.Equal(t, "Prof Updated", dbName)
}
