//go:build integration_test

package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Stitchbit30/BattleLog/internal/camp/profiles"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestProfiles() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	created := s.createProfile(ctx, "2024-01-01", "2024-03-24")
	assert.Positive(t, created.ID)
	assert.Equal(t, "2024-01-01", created.StartDate.String())

	var rowsCount int
	require.NoError(t, s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM profile WHERE id = $1`, created.ID).Scan(&rowsCount))
	assert.Equal(t, 1, rowsCount)

	resp := s.do(ctx, http.MethodGet, fmt.Sprintf("/profiles/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, resp.status)
	got := decode[profiles.Profile](t, resp)
	assert.Equal(t, created.Name, got.Name)

	// reads go through the redis profile cache
	cached, err := s.redisClient.Exists(ctx, fmt.Sprintf("camp-profile::%d", created.ID)).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached)

	resp = s.do(ctx, http.MethodPatch, fmt.Sprintf("/profiles/%d", created.ID), map[string]string{
		"belt": "purple",
	})
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))
	assert.Equal(t, "purple", decode[profiles.Profile](t, resp).Belt)

	resp = s.do(ctx, http.MethodGet, fmt.Sprintf("/profiles/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "purple", decode[profiles.Profile](t, resp).Belt, "update invalidates the cached profile")

	resp = s.do(ctx, http.MethodPatch, fmt.Sprintf("/profiles/%d", created.ID), map[string]string{
		"competitionDate": "2023-12-01",
	})
	assert.Equal(t, http.StatusBadRequest, resp.status)

	resp = s.do(ctx, http.MethodGet, "/profiles", nil)
	require.Equal(t, http.StatusOK, resp.status)
	all := decode[[]profiles.Profile](t, resp)
	assert.NotEmpty(t, all)

	resp = s.do(ctx, http.MethodDelete, fmt.Sprintf("/profiles/%d", created.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.status)

	resp = s.do(ctx, http.MethodGet, fmt.Sprintf("/profiles/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.JSONEq(t, `{"error":"profile not found"}`, string(resp.body))
}

func (s *IntegrationTestSuite) TestProfiles_Validation() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	resp := s.do(ctx, http.MethodPost, "/profiles", map[string]string{
		"name":            "Jo",
		"weight":          "70kg",
		"height":          "170cm",
		"belt":            "white",
		"startDate":       "01-01-2024",
		"competitionDate": "2024-03-24",
	})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Contains(t, string(resp.body), `"field":"startDate"`)

	resp = s.do(ctx, http.MethodGet, "/profiles/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.status)
}
