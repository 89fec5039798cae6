package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AdamBeresnev/brisa-tee-times/internal/golfer"
	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRememberAndLoadGolfer(t *testing.T) {
	sessionManager := scs.New()

	var seen *golfer.Golfer
	mux := http.NewServeMux()
	mux.HandleFunc("/remember", func(w http.ResponseWriter, r *http.Request) {
		RememberGolfer(r.Context(), sessionManager, golfer.Golfer{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
			SMSOptIn:  true,
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		seen = GetGolfer(r.Context())
	})
	handler := sessionManager.LoadAndSave(LoadGolfer(sessionManager)(mux))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, seen, "fresh session has no golfer")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/remember", nil))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	assert.Equal(t, "Jane Doe", seen.FullName())
	assert.Equal(t, "jane@example.com", seen.Email)
	assert.True(t, seen.SMSOptIn)
}

func TestGetGolfer_EmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetGolfer(req.Context()))
}
