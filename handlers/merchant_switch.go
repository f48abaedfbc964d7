package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleMerchantActivate sets the active merchant cookie so subsequent
// requests operate in this merchant's onboarding session.
func HandleMerchantActivate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		merchantID := e.Request.PathValue("id")

		rec, err := app.FindRecordById("merchants", merchantID)
		if err != nil {
			return writeError(e, http.StatusNotFound, "merchant not found")
		}

		// 30-day expiry, HttpOnly
		http.SetCookie(e.Response, &http.Cookie{
			Name:     "active_merchant",
			Value:    merchantID,
			Path:     "/",
			MaxAge:   60 * 60 * 24 * 30,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		return e.JSON(http.StatusOK, map[string]any{
			"active": map[string]string{"id": rec.Id, "name": rec.GetString("name")},
		})
	}
}

// HandleMerchantDeactivate clears the active merchant cookie.
func HandleMerchantDeactivate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		http.SetCookie(e.Response, &http.Cookie{
			Name:   "active_merchant",
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})

		return e.JSON(http.StatusOK, map[string]any{"active": nil})
	}
}
