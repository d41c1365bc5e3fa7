package test

import (
	"context"
	"net/http"
	"testing"

	"github.com/2beens/liftboard/internal/auth"
	"github.com/2beens/liftboard/internal/profiles"

	"github.com/stretchr/testify/assert"
)

func (s *IntegrationTestSuite) TestLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	profile, token := registerAndLogin(ctx, t, s.httpClient, "login_user")

	var me profiles.Profile
	doJSON(ctx, t, s.httpClient, http.MethodGet, "/profiles/me", token, nil, http.StatusOK, &me)
	assert.Equal(t, profile.ID, me.ID)

	cases := map[string]struct {
		creds              auth.Credentials
		expectedStatusCode int
	}{
		"bad password": {
			creds:              auth.Credentials{Username: "login_user", Password: "bad-password"},
			expectedStatusCode: http.StatusUnauthorized,
		},
		"unknown user": {
			creds:              auth.Credentials{Username: "nobody_here", Password: testPassword},
			expectedStatusCode: http.StatusUnauthorized,
		},
		"missing username": {
			creds:              auth.Credentials{Password: testPassword},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp := doRequest(ctx, t, s.httpClient, http.MethodPost, "/a/login", "", tc.creds)
			defer resp.Body.Close()
			assert.Equal(t, tc.expectedStatusCode, resp.StatusCode)
		})
	}

	doJSON(ctx, t, s.httpClient, http.MethodGet, "/a/logout", token, nil, http.StatusOK, nil)

	resp := doRequest(ctx, t, s.httpClient, http.MethodGet, "/profiles/me", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestRegister_UsernameTaken() {
	t := s.T()
	ctx := context.Background()

	registerAndLogin(ctx, t, s.httpClient, "taken_name")

	resp := doRequest(ctx, t, s.httpClient, http.MethodPost, "/profiles", "", profiles.Registration{
		Username: "taken_name",
		Password: testPassword,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
