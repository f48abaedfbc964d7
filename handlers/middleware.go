package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const ActiveMerchantKey contextKey = "activeMerchant"

// ActiveMerchant is the onboarding session's merchant, resolved once per
// request from the active_merchant cookie.
type ActiveMerchant struct {
	ID   string
	Name string
}

// GetActiveMerchant extracts the active merchant from the request context.
func GetActiveMerchant(r *http.Request) *ActiveMerchant {
	if val, ok := r.Context().Value(ActiveMerchantKey).(*ActiveMerchant); ok {
		return val
	}
	return nil
}

// ActiveMerchantMiddleware reads the "active_merchant" cookie, loads the
// merchant record and stores it in the request context. A stale cookie is
// cleared instead of failing the request.
func ActiveMerchantMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var active *ActiveMerchant

		cookie, err := e.Request.Cookie("active_merchant")
		if err == nil && cookie.Value != "" {
			rec, err := app.FindRecordById("merchants", cookie.Value)
			if err == nil {
				active = &ActiveMerchant{
					ID:   rec.Id,
					Name: rec.GetString("name"),
				}
			} else {
				log.Printf("middleware: active merchant %s not found, clearing cookie", cookie.Value)
				http.SetCookie(e.Response, &http.Cookie{
					Name:   "active_merchant",
					Value:  "",
					Path:   "/",
					MaxAge: -1,
				})
			}
		}

		ctx := context.WithValue(e.Request.Context(), ActiveMerchantKey, active)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}
