//go:build integration_test

package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Stitchbit30/BattleLog/internal/camp/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestProgress() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	profile := s.createProfile(ctx, "2024-01-01", "2024-03-24")
	for _, itemID := range []string{"training-0", "nutrition-1"} {
		resp := s.do(ctx, http.MethodPost, fmt.Sprintf("/logs/%d/2024-01-08/toggle", profile.ID), map[string]string{
			"itemId": itemID,
		})
		require.Equal(t, http.StatusOK, resp.status, string(resp.body))
	}
	resp := s.do(ctx, http.MethodPost, "/logs", map[string]any{
		"profileId":  profile.ID,
		"date":       "2024-01-07",
		"sleepHours": "9",
		"weight":     "79kg",
	})
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))

	resp = s.do(ctx, http.MethodGet, fmt.Sprintf("/profiles/%d/today?date=2024-01-08", profile.ID), nil)
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))
	today := decode[progress.TodayView](t, resp)
	assert.Equal(t, 8, today.Resolved.DayNumber)
	assert.Equal(t, 2, today.Resolved.WeekNumber)
	assert.Equal(t, 2, today.CompletedCount)
	assert.Equal(t, 6, today.TotalCount)
	assert.Equal(t, 33, today.CompletionPercent)

	resp = s.do(ctx, http.MethodGet, fmt.Sprintf("/profiles/%d/week?date=2024-01-10", profile.ID), nil)
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))
	week := decode[progress.WeekView](t, resp)
	assert.Equal(t, 2, week.WeekNumber)
	require.Len(t, week.Days, 7)
	assert.Equal(t, progress.DayInProgress, week.Days[0].Status)
	assert.Equal(t, 2, week.Days[0].CompletedCount)

	resp = s.do(ctx, http.MethodGet, fmt.Sprintf("/profiles/%d/summary?date=2024-01-08", profile.ID), nil)
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))
	summary := decode[progress.Summary](t, resp)
	assert.Equal(t, 1, summary.TotalSessions)
	assert.Equal(t, 2, summary.LoggedDays)
	assert.Equal(t, 76, summary.DaysUntilCompetition)
	require.NotNil(t, summary.AvgSleepHours)
	assert.Equal(t, 9.0, *summary.AvgSleepHours)
	require.NotNil(t, summary.LatestWeight)
	assert.Equal(t, "79kg", *summary.LatestWeight)

	resp = s.do(ctx, http.MethodGet, fmt.Sprintf("/profiles/%d/report?date=2024-01-08", profile.ID), nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, string(resp.body), "CAMP REPORT - "+profile.Name)
	assert.Contains(t, string(resp.body), "Mon: 2 items")

	resp = s.do(ctx, http.MethodGet, "/profiles/987654/summary", nil)
	assert.Equal(t, http.StatusNotFound, resp.status)
}
