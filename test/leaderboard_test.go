package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/liftboard/internal/auth"
	"github.com/2beens/liftboard/internal/challenges"
	"github.com/2beens/liftboard/internal/leaderboard"
	"github.com/2beens/liftboard/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleSetWorkout(name string, reps int, weight float64) workouts.Workout {
	return workouts.Workout{
		Name: name,
		Exercises: []workouts.Exercise{
			{
				Name: "bench press",
				Sets: []workouts.Set{{Reps: reps, Weight: weight}},
			},
		},
	}
}

// fetchStandings does not fail the test, it runs inside polling conditions
func (s *IntegrationTestSuite) fetchStandings(ctx context.Context, challengeID, token string) ([]leaderboard.Entry, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverEndpoint+"/leaderboard/"+challengeID, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set(auth.TokenHeader, token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	var standings []leaderboard.Entry
	if err := json.NewDecoder(resp.Body).Decode(&standings); err != nil {
		return nil, false
	}
	return standings, true
}

func (s *IntegrationTestSuite) TestLeaderboardFlow() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	alice, aliceToken := registerAndLogin(ctx, t, s.httpClient, "alice_lb")
	bob, bobToken := registerAndLogin(ctx, t, s.httpClient, "bob_lb")

	now := time.Now().UTC().Truncate(time.Second)
	var challenge challenges.Challenge
	doJSON(ctx, t, s.httpClient, http.MethodPost, "/challenges", aliceToken, challenges.NewChallenge{
		Name:        "october volume",
		Description: "lift more than your friends",
		StartDate:   now.Add(-time.Hour),
		EndDate:     now.Add(24 * time.Hour),
	}, http.StatusCreated, &challenge)
	require.Equal(t, challenges.StatusActive, challenge.Status)

	var joinResp struct {
		Joined bool `json:"joined"`
	}
	doJSON(ctx, t, s.httpClient, http.MethodPost, fmt.Sprintf("/challenges/%s/join", challenge.ID), bobToken, nil, http.StatusOK, &joinResp)
	assert.True(t, joinResp.Joined)

	var activeForBob []challenges.Challenge
	doJSON(ctx, t, s.httpClient, http.MethodGet, "/leaderboard/active", bobToken, nil, http.StatusOK, &activeForBob)
	require.Len(t, activeForBob, 1)
	assert.Equal(t, challenge.ID, activeForBob[0].ID)

	// alice: 500 then 600, bob: 1000; workouts are stamped with the server time in submit order
	doJSON(ctx, t, s.httpClient, http.MethodPost, "/workouts", aliceToken,
		singleSetWorkout("push day", 10, 50), http.StatusCreated, nil)
	doJSON(ctx, t, s.httpClient, http.MethodPost, "/workouts", aliceToken,
		singleSetWorkout("push day 2", 10, 60), http.StatusCreated, nil)
	doJSON(ctx, t, s.httpClient, http.MethodPost, "/workouts", bobToken,
		singleSetWorkout("heavy bench", 10, 100), http.StatusCreated, nil)

	var refreshed []leaderboard.Entry
	doJSON(ctx, t, s.httpClient, http.MethodPost, "/rpc/update_leaderboard_cache", aliceToken,
		map[string]any{"challenge_id": challenge.ID}, http.StatusOK, &refreshed)
	require.Len(t, refreshed, 2)
	assert.Equal(t, bob.ID, refreshed[0].UserID)
	assert.Equal(t, 1, refreshed[0].Position)
	assert.InDelta(t, 1000.0, refreshed[0].CurrentVolume, 0.001)
	assert.Equal(t, alice.ID, refreshed[1].UserID)
	assert.True(t, refreshed[1].IsYou)
	assert.InDelta(t, 600.0, refreshed[1].CurrentVolume, 0.001)
	assert.InDelta(t, 500.0, refreshed[1].PreviousVolume, 0.001)
	assert.InDelta(t, 20.0, refreshed[1].PercentageChange, 0.001)

	// the trigger keeps refreshing in the background, the view converges on the same standings
	require.Eventually(t, func() bool {
		standings, ok := s.fetchStandings(ctx, challenge.ID.String(), bobToken)
		return ok &&
			len(standings) == 2 &&
			standings[0].UserID == bob.ID &&
			standings[0].IsYou &&
			!standings[1].IsYou &&
			standings[1].CurrentVolume == 600
	}, 10*time.Second, 200*time.Millisecond)

	var trend leaderboard.UserTrend
	doJSON(ctx, t, s.httpClient, http.MethodGet, fmt.Sprintf("/leaderboard/%s/trend", challenge.ID), aliceToken, nil, http.StatusOK, &trend)
	assert.Equal(t, alice.ID, trend.UserID)
	assert.InDelta(t, 600.0, trend.CurrentVolume, 0.001)
	assert.InDelta(t, 500.0, trend.PreviousVolume, 0.001)

	var bobTrend leaderboard.UserTrend
	doJSON(ctx, t, s.httpClient, http.MethodPost, "/rpc/get_user_volume_trends", aliceToken,
		map[string]any{"user_id": bob.ID, "challenge_id": challenge.ID}, http.StatusOK, &bobTrend)
	assert.Equal(t, bob.ID, bobTrend.UserID)
	assert.InDelta(t, 1000.0, bobTrend.CurrentVolume, 0.001)
	assert.Zero(t, bobTrend.PreviousVolume)
	assert.Zero(t, bobTrend.PercentageChange)

	var comparison []leaderboard.ComparisonRow
	doJSON(ctx, t, s.httpClient, http.MethodGet, fmt.Sprintf("/leaderboard/%s/compare", challenge.ID), aliceToken, nil, http.StatusOK, &comparison)
	require.Len(t, comparison, 2)
	assert.True(t, comparison[0].IsYou)
	assert.InDelta(t, 600.0, comparison[0].Volume, 0.001)
	assert.True(t, comparison[1].IsAverage)
	assert.InDelta(t, 800.0, comparison[1].Volume, 0.001)
}

func (s *IntegrationTestSuite) TestLeaderboard_UnknownChallengeIsEmpty() {
	t := s.T()
	ctx := context.Background()

	_, token := registerAndLogin(ctx, t, s.httpClient, "carol_lb")

	var standings []leaderboard.Entry
	doJSON(ctx, t, s.httpClient, http.MethodGet, "/leaderboard/0b9e6ab4-6c5e-4d8a-9b7e-0d4d7c4b9a11", token, nil, http.StatusOK, &standings)
	assert.Empty(t, standings)

	resp := doRequest(ctx, t, s.httpClient, http.MethodGet, "/leaderboard/not-a-uuid", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
