//go:build integration_test

package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Stitchbit30/BattleLog/internal/camp/dailylogs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestDailyLogs_MergeUpsert() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	profile := s.createProfile(ctx, "2024-01-01", "2024-03-24")
	logPath := fmt.Sprintf("/logs/%d/2024-01-03", profile.ID)

	resp := s.do(ctx, http.MethodGet, logPath, nil)
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.JSONEq(t, `{"error":"log not found"}`, string(resp.body))

	resp = s.do(ctx, http.MethodPost, "/logs", map[string]any{
		"profileId":  profile.ID,
		"date":       "2024-01-03",
		"sleepHours": "7.5",
		"mood":       4,
	})
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))
	first := decode[dailylogs.DailyLog](t, resp)
	assert.Empty(t, first.CompletedItems)
	require.NotNil(t, first.SleepHours)
	assert.Equal(t, "7.5", *first.SleepHours)

	// a second upsert only touches the fields it carries
	resp = s.do(ctx, http.MethodPost, "/logs", map[string]any{
		"profileId":    profile.ID,
		"date":         "2024-01-03",
		"journalEntry": "drilled half guard",
	})
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))
	merged := decode[dailylogs.DailyLog](t, resp)
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, "drilled half guard", merged.JournalEntry)
	require.NotNil(t, merged.SleepHours)
	assert.Equal(t, "7.5", *merged.SleepHours)
	require.NotNil(t, merged.Mood)
	assert.Equal(t, 4, *merged.Mood)

	resp = s.do(ctx, http.MethodPost, logPath+"/toggle", map[string]string{"itemId": "training-1"})
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))
	assert.Equal(t, []string{"training-1"}, decode[dailylogs.DailyLog](t, resp).CompletedItems)

	resp = s.do(ctx, http.MethodPatch, logPath, map[string]any{"sleepQuality": "Good"})
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))
	patched := decode[dailylogs.DailyLog](t, resp)
	require.NotNil(t, patched.SleepQuality)
	assert.Equal(t, dailylogs.SleepQualityGood, *patched.SleepQuality)
	assert.Equal(t, []string{"training-1"}, patched.CompletedItems)

	var rowsCount int
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM daily_log WHERE profile_id = $1`, profile.ID,
	).Scan(&rowsCount))
	assert.Equal(t, 1, rowsCount, "one row per profile and date")

	resp = s.do(ctx, http.MethodPatch, fmt.Sprintf("/logs/%d/2024-01-04", profile.ID), map[string]any{"mood": 3})
	assert.Equal(t, http.StatusNotFound, resp.status)

	resp = s.do(ctx, http.MethodPost, "/logs", map[string]any{
		"profileId":    profile.ID,
		"date":         "2024-01-03",
		"sleepQuality": "Amazing",
	})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Contains(t, string(resp.body), `"field":"sleepQuality"`)

	resp = s.do(ctx, http.MethodGet, fmt.Sprintf("/logs/%d", profile.ID), nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Len(t, decode[[]dailylogs.DailyLog](t, resp), 1)
}

func (s *IntegrationTestSuite) TestDailyLogs_UnknownProfile() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	resp := s.do(ctx, http.MethodPost, "/logs", map[string]any{
		"profileId": 987654,
		"date":      "2024-01-03",
		"weight":    "80kg",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.status)
	assert.JSONEq(t, `{"error":"profile does not exist","field":"profileId"}`, string(resp.body))
}

func (s *IntegrationTestSuite) TestDailyLogs_DeletedWithProfile() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	profile := s.createProfile(ctx, "2024-01-01", "2024-03-24")
	resp := s.do(ctx, http.MethodPost, fmt.Sprintf("/logs/%d/2024-01-01/toggle", profile.ID), map[string]string{
		"itemId": "recovery-0",
	})
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))

	resp = s.do(ctx, http.MethodDelete, fmt.Sprintf("/profiles/%d", profile.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.status)

	var rowsCount int
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM daily_log WHERE profile_id = $1`, profile.ID,
	).Scan(&rowsCount))
	assert.Zero(t, rowsCount)
}

func (s *IntegrationTestSuite) TestLogWrites_RateLimited() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	require.NoError(t, s.redisClient.FlushDB(ctx).Err())
	defer func() {
		require.NoError(t, s.redisClient.FlushDB(ctx).Err())
	}()

	profile := s.createProfile(ctx, "2024-01-01", "2024-03-24")
	togglePath := fmt.Sprintf("/logs/%d/2024-01-01/toggle", profile.ID)

	var limited *response
	for i := 0; i < logWritesPerMin+5; i++ {
		resp := s.do(ctx, http.MethodPost, togglePath, map[string]string{"itemId": "training-0"})
		if resp.status == http.StatusTooManyRequests {
			limited = &resp
			break
		}
		require.Equal(t, http.StatusOK, resp.status, string(resp.body))
	}

	require.NotNil(t, limited, "log writes must be rate limited")
	assert.NotEmpty(t, limited.header.Get("Retry-After"))

	// reads are not limited
	resp := s.do(ctx, http.MethodGet, fmt.Sprintf("/logs/%d", profile.ID), nil)
	assert.Equal(t, http.StatusOK, resp.status)
}
