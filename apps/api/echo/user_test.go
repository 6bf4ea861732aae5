package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/AhmadXRAUF940/attendance--tracker/core/user"
	testutil "github.com/AhmadXRAUF940/attendance--tracker/tests"
)

func Test_authApi_login(t *testing.T) {
	app := setup(t)

	teacher := testutil.CreateUser(t, usrRepo, "TCH-1001", user.RoleTeacher, "Ayesha", "Khan", "Assistant Teacher", "S3cretPwd!")

	tests := []httpTest{
		{
			name: "empty body", wantCode: http.StatusBadRequest,
			body:     marchallObj(t, LoginRequest{}),
			wantData: marchallObj(t, map[string]string{"institution_id": "this field is required", "password": "this field is required"}),
		},
		{
			name: "unknown institution ID", wantCode: http.StatusBadRequest,
			body:     marchallObj(t, LoginRequest{InstitutionID: "TCH-9999", Password: "S3cretPwd!"}),
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "wrong password", wantCode: http.StatusBadRequest,
			body:     marchallObj(t, LoginRequest{InstitutionID: "TCH-1001", Password: "nope"}),
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "valid credentials", wantCode: http.StatusOK,
			body: marchallObj(t, LoginRequest{InstitutionID: "TCH-1001", Password: "S3cretPwd!"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/api/auth/login"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusOK {
				// cannot guess the token.. just check that it's not empty
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var respData LoginResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Fatalf("json.Unmarshal(): %v", err)
				}
				if respData.Token == "" {
					t.Error("empty token returned")
				}
				if respData.User.ID != teacher.ID || respData.User.InstitutionID != "TCH-1001" {
					t.Errorf("user = %+v", respData.User)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_authApi_me(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "STD-2001", user.RoleStudent, "Ali", "Khan", "", "S3cretPwd!")

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Me", token: getToken(t, student), wantCode: http.StatusOK, wantData: marchallObj(t, student)},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/api/auth/me"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_authApi_refreshToken(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "STD-2001", user.RoleStudent, "Ali", "Khan", "", "S3cretPwd!")

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Token refreshed", token: getToken(t, student), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/api/auth/token-refresh"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			// cannot guess the new token.. just check that it's not empty
			if tt.wantCode == http.StatusOK {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var respData TokenResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Fatalf("json.Unmarshal(): %v", err)
				}
				if respData.Token == "" {
					t.Error("empty token returned")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}
