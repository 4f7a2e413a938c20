//go:build integration_test

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/Stitchbit30/BattleLog/internal/camp/profiles"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

type response struct {
	status int
	header http.Header
	body   []byte
}

func (s *IntegrationTestSuite) do(ctx context.Context, method, path string, payload any) response {
	t := s.T()

	var body io.Reader
	if payload != nil {
		payloadJson, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(payloadJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, body)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return response{
		status: resp.StatusCode,
		header: resp.Header,
		body:   respBytes,
	}
}

func decode[T any](t *testing.T, resp response) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(resp.body, &v), string(resp.body))
	return v
}

func (s *IntegrationTestSuite) createProfile(ctx context.Context, startDate, competitionDate string) profiles.Profile {
	t := s.T()
	resp := s.do(ctx, http.MethodPost, "/profiles", map[string]string{
		"name":            gofakeit.Name(),
		"weight":          fmt.Sprintf("%dkg", gofakeit.Number(60, 100)),
		"height":          fmt.Sprintf("%dcm", gofakeit.Number(160, 200)),
		"belt":            gofakeit.RandomString([]string{"white", "blue", "purple", "brown", "black"}),
		"startDate":       startDate,
		"competitionDate": competitionDate,
	})
	require.Equal(t, http.StatusCreated, resp.status, string(resp.body))
	return decode[profiles.Profile](t, resp)
}
