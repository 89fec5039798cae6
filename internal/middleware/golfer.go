package middleware

import (
	"context"
	"net/http"

	"github.com/AdamBeresnev/brisa-tee-times/internal/golfer"
	"github.com/alexedwards/scs/v2"
)

const (
	firstNameKey = "golfer.first_name"
	lastNameKey  = "golfer.last_name"
	countryKey   = "golfer.country"
	emailKey     = "golfer.email"
	phoneKey     = "golfer.phone"
	smsOptInKey  = "golfer.sms_opt_in"
)

// LoadGolfer puts the golfer remembered in the session, if any, on the request context.
// Must run inside sessionManager.LoadAndSave.
func LoadGolfer(sessionManager *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			first := sessionManager.GetString(ctx, firstNameKey)
			if first == "" {
				next.ServeHTTP(w, r)
				return
			}

			g := &golfer.Golfer{
				FirstName: first,
				LastName:  sessionManager.GetString(ctx, lastNameKey),
				Country:   sessionManager.GetString(ctx, countryKey),
				Email:     sessionManager.GetString(ctx, emailKey),
				Phone:     sessionManager.GetString(ctx, phoneKey),
				SMSOptIn:  sessionManager.GetBool(ctx, smsOptInKey),
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, golfer.GolferKey, g)))
		})
	}
}

// RememberGolfer stores the details of a successful booking for the next visit.
func RememberGolfer(ctx context.Context, sessionManager *scs.SessionManager, g golfer.Golfer) {
	sessionManager.Put(ctx, firstNameKey, g.FirstName)
	sessionManager.Put(ctx, lastNameKey, g.LastName)
	sessionManager.Put(ctx, countryKey, g.Country)
	sessionManager.Put(ctx, emailKey, g.Email)
	sessionManager.Put(ctx, phoneKey, g.Phone)
	sessionManager.Put(ctx, smsOptInKey, g.SMSOptIn)
}

func GetGolfer(ctx context.Context) *golfer.Golfer {
	val := ctx.Value(golfer.GolferKey)
	if val == nil {
		return nil
	}
	g, ok := val.(*golfer.Golfer)
	if !ok {
		return nil
	}
	return g
}
