package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/teetime/campusride/internal/auth"
	"github.com/teetime/campusride/internal/http/middlewares"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	claims *auth.Claims
	err    error
}

func (f *fakeVerifier) VerifyAccessToken(token string) (*auth.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func protectedRouter(v middlewares.TokenVerifier, alsoDriver bool) *gin.Engine {
	r := gin.New()

	mw := middlewares.NewAuthMiddleware(v)

	chain := []gin.HandlerFunc{mw.RequireAuth()}
	if alsoDriver {
		chain = append(chain, mw.RequireDriver())
	}

	chain = append(chain, func(c *gin.Context) {
		id, _ := middlewares.UserIDFromContext(c)
		role, _ := middlewares.RoleFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})

	r.GET("/protected", chain...)

	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)

	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestRequireAuth(t *testing.T) {
	verifier := &fakeVerifier{claims: &auth.Claims{UserID: 9, Email: "a@ie.edu", Role: "PASSENGER"}}

	tests := []struct {
		name       string
		verifier   middlewares.TokenVerifier
		header     string
		wantStatus int
	}{
		{"no header", verifier, "", http.StatusUnauthorized},
		{"wrong scheme", verifier, "Basic abc", http.StatusUnauthorized},
		{"empty token", verifier, "Bearer ", http.StatusUnauthorized},
		{"bad token", &fakeVerifier{err: errors.New("bad")}, "Bearer xyz", http.StatusUnauthorized},
		{"ok", verifier, "Bearer xyz", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := get(protectedRouter(tc.verifier, false), tc.header)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
		})
	}
}

func TestRequireDriver(t *testing.T) {
	tests := []struct {
		role       string
		wantStatus int
	}{
		{"PASSENGER", http.StatusForbidden},
		{"DRIVER", http.StatusOK},
		{"BOTH", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.role, func(t *testing.T) {
			v := &fakeVerifier{claims: &auth.Claims{UserID: 9, Role: tc.role}}

			w := get(protectedRouter(v, true), "Bearer xyz")

			if w.Code != tc.wantStatus {
				t.Fatalf("role %s: status = %d, want %d", tc.role, w.Code, tc.wantStatus)
			}
		})
	}
}
