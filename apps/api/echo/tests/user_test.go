package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trezcool/studydesk/core/user"
)

func TestUserApi_register(t *testing.T) {
	tests := []httpTest{
		{
			name:     "empty body fails validation",
			method:   http.MethodPost,
			path:     "/v1/users/register",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "password mismatch",
			method: http.MethodPost,
			path:   "/v1/users/register",
			body: marshallObj(t, user.NewUser{
				Name:            "New Student",
				Username:        "newstudent",
				Email:           "newstudent@school.test",
				Password:        "s3cret!pass",
				PasswordConfirm: "other",
			}),
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "ok",
			method: http.MethodPost,
			path:   "/v1/users/register",
			body: marshallObj(t, user.NewUser{
				Name:            "New Student",
				Username:        "newstudent",
				Email:           "newstudent@school.test",
				Password:        "s3cret!pass",
				PasswordConfirm: "s3cret!pass",
			}),
			wantCode: http.StatusCreated,
		},
		{
			name:   "duplicate username",
			method: http.MethodPost,
			path:   "/v1/users/register",
			body: marshallObj(t, user.NewUser{
				Name:            "Imposter",
				Username:        "newstudent",
				Email:           "imposter@school.test",
				Password:        "s3cret!pass",
				PasswordConfirm: "s3cret!pass",
			}),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestUserApi_login(t *testing.T) {
	createUser(t, "loginuser")

	tests := []httpTest{
		{
			name:     "unknown user",
			body:     marshallObj(t, user.LoginUser{Username: "ghost", Password: "s3cret!pass"}),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "wrong password",
			body:     marshallObj(t, user.LoginUser{Username: "loginuser", Password: "wrong"}),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "ok by username",
			body:     marshallObj(t, user.LoginUser{Username: "loginuser", Password: "s3cret!pass"}),
			wantCode: http.StatusOK,
		},
		{
			name:     "ok by email",
			body:     marshallObj(t, user.LoginUser{Username: "loginuser@school.test", Password: "s3cret!pass"}),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			app.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode == http.StatusOK {
				var resp struct {
					Token string `json:"token"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshalling response: %v", err)
				}
				if resp.Token == "" {
					t.Error("token is empty")
				}
			}
		})
	}
}

func TestUserApi_me(t *testing.T) {
	usr := createUser(t, "meuser")

	t.Run("requires auth", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/users/me")
		app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("ok", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users/me", getToken(t, usr))
		app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusOK, wantData: marshallObj(t, usr)}
		checkCodeAndData(t, tt, rec)
	})
}

func TestUserApi_tokenRefresh(t *testing.T) {
	usr := createUser(t, "refreshuser")

	req, rec := newAuthRequest(http.MethodPost, "/v1/users/token-refresh", getToken(t, usr))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if resp.Token == "" {
		t.Error("token is empty")
	}
}
