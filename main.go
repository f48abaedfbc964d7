package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchantonboarding/collections"
	"merchantonboarding/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateSingleLocationAssignments(app); err != nil {
			log.Printf("Warning: location assignment migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Apply active merchant middleware globally
		se.Router.BindFunc(handlers.ActiveMerchantMiddleware(app))

		// ── Merchant activation ──────────────────────────────────
		se.Router.POST("/merchants/{id}/activate", handlers.HandleMerchantActivate(app))
		se.Router.POST("/merchants/deactivate", handlers.HandleMerchantDeactivate(app))

		// ── Merchant CRUD ────────────────────────────────────────
		se.Router.GET("/merchants", handlers.HandleMerchantList(app))
		se.Router.POST("/merchants", handlers.HandleMerchantSave(app))
		se.Router.PATCH("/merchants/{id}", handlers.HandleMerchantUpdate(app))
		se.Router.DELETE("/merchants/{id}", handlers.HandleMerchantDelete(app))
		se.Router.GET("/merchants/{id}", handlers.HandleMerchantView(app))

		// ── Business locations ───────────────────────────────────
		se.Router.GET("/merchants/{merchantId}/locations", handlers.HandleLocationList(app))
		se.Router.POST("/merchants/{merchantId}/locations", handlers.HandleLocationSave(app))
		se.Router.PATCH("/merchants/{merchantId}/locations/{locationId}", handlers.HandleLocationUpdate(app))
		se.Router.DELETE("/merchants/{merchantId}/locations/{locationId}", handlers.HandleLocationDelete(app))

		// ── Location bulk import ─────────────────────────────────
		se.Router.GET("/merchants/{merchantId}/locations/import/template", handlers.HandleLocationTemplate(app))
		se.Router.POST("/merchants/{merchantId}/locations/import", handlers.HandleLocationValidate(app))
		se.Router.POST("/merchants/{merchantId}/locations/import/commit", handlers.HandleLocationImportCommit(app))

		// ── Catalog ──────────────────────────────────────────────
		se.Router.GET("/catalog", handlers.HandleCatalogList(app))

		// ── Document templates ───────────────────────────────────
		se.Router.GET("/templates", handlers.HandleTemplateList(app))
		se.Router.POST("/templates", handlers.HandleTemplateSave(app))
		se.Router.GET("/templates/{id}", handlers.HandleTemplateView(app))
		se.Router.PUT("/templates/{id}", handlers.HandleTemplateUpdate(app))
		se.Router.DELETE("/templates/{id}", handlers.HandleTemplateDelete(app))
		se.Router.PATCH("/templates/{id}/header", handlers.HandleTemplateHeader(app))
		se.Router.PATCH("/templates/{id}/footer", handlers.HandleTemplateFooter(app))
		se.Router.PATCH("/templates/{id}/styling", handlers.HandleTemplateStyling(app))
		se.Router.POST("/templates/{id}/defaults", handlers.HandleTemplateDefaults(app))

		// ── Template sections ────────────────────────────────────
		se.Router.POST("/templates/{id}/sections", handlers.HandleSectionAdd(app))
		se.Router.POST("/templates/{id}/sections/reorder", handlers.HandleSectionReorder(app))
		se.Router.PATCH("/templates/{id}/sections/{sectionId}", handlers.HandleSectionUpdate(app))
		se.Router.DELETE("/templates/{id}/sections/{sectionId}", handlers.HandleSectionRemove(app))

		// ── Table layout editing ─────────────────────────────────
		se.Router.POST("/templates/{id}/sections/{sectionId}/rows", handlers.HandleTableAddRow(app))
		se.Router.POST("/templates/{id}/sections/{sectionId}/columns", handlers.HandleTableAddColumn(app))
		se.Router.POST("/templates/{id}/sections/{sectionId}/merge", handlers.HandleTableMerge(app))
		se.Router.POST("/templates/{id}/sections/{sectionId}/cells/{cellId}/split", handlers.HandleTableSplit(app))
		se.Router.PATCH("/templates/{id}/sections/{sectionId}/cells/{cellId}", handlers.HandleTableCellContent(app))

		// ── Document rendering ───────────────────────────────────
		se.Router.POST("/templates/{id}/render", handlers.HandleDocumentRender(app))

		// ── Quote builder ────────────────────────────────────────
		se.Router.GET("/merchants/{merchantId}/quote", handlers.HandleQuoteView(app))
		se.Router.POST("/merchants/{merchantId}/quote/items", handlers.HandleQuoteItemAdd(app))
		se.Router.PATCH("/merchants/{merchantId}/quote/items/{itemId}", handlers.HandleQuoteItemUpdate(app))
		se.Router.DELETE("/merchants/{merchantId}/quote/items/{itemId}", handlers.HandleQuoteItemDelete(app))
		se.Router.POST("/merchants/{merchantId}/quote/items/{itemId}/addons", handlers.HandleQuoteAddonAdd(app))
		se.Router.DELETE("/merchants/{merchantId}/quote/addons/{addonId}", handlers.HandleQuoteAddonDelete(app))
		se.Router.DELETE("/merchants/{merchantId}/quote", handlers.HandleQuoteClear(app))

		// ── Quote finalize and export ────────────────────────────
		se.Router.POST("/merchants/{merchantId}/quote/finalize", handlers.HandleQuoteFinalize(app))
		se.Router.GET("/merchants/{merchantId}/quote/snapshots", handlers.HandleSnapshotList(app))
		se.Router.GET("/merchants/{merchantId}/quote/export/excel", handlers.HandleQuoteExportExcel(app))

		// ── Progressive selection flow ───────────────────────────
		se.Router.GET("/merchants/{merchantId}/selection", handlers.HandleSelectionState(app))
		se.Router.POST("/merchants/{merchantId}/selection/solution", handlers.HandleSelectionChooseSolution(app))
		se.Router.POST("/merchants/{merchantId}/selection/modules/toggle", handlers.HandleSelectionToggleModule(app))
		se.Router.POST("/merchants/{merchantId}/selection/modules/confirm", handlers.HandleSelectionConfirmModules(app))
		se.Router.POST("/merchants/{merchantId}/selection/system", handlers.HandleSelectionChooseSystem(app))
		se.Router.POST("/merchants/{merchantId}/selection/back", handlers.HandleSelectionBack(app))
		se.Router.POST("/merchants/{merchantId}/selection/apply", handlers.HandleSelectionApply(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
