package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// MigrateSingleLocationAssignments finds quote items without a location
// whose merchant has exactly one business location and assigns that location.
// Safe to call on every startup -- returns early if nothing to migrate.
func MigrateSingleLocationAssignments(app *pocketbase.PocketBase) error {
	itemsCol, err := app.FindCollectionByNameOrId("quote_items")
	if err != nil {
		return fmt.Errorf("migrate: could not find quote_items collection: %w", err)
	}

	unassigned, err := app.FindRecordsByFilter(
		itemsCol,
		"location = '' && parent_item = ''",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query unassigned quote items: %w", err)
	}
	if len(unassigned) == 0 {
		return nil
	}

	// Merchant -> sole location id, or "" when the merchant has zero or
	// several locations.
	soleLocation := make(map[string]string)
	migrated := 0

	for _, item := range unassigned {
		merchantID := item.GetString("merchant")

		locID, cached := soleLocation[merchantID]
		if !cached {
			locations, err := app.FindRecordsByFilter(
				"business_locations",
				"merchant = {:merchantId}",
				"",
				2,
				0,
				map[string]any{"merchantId": merchantID},
			)
			if err != nil {
				log.Printf("migrate: could not load locations for merchant %s: %v\n", merchantID, err)
				continue
			}
			if len(locations) == 1 {
				locID = locations[0].Id
			}
			soleLocation[merchantID] = locID
		}
		if locID == "" {
			continue
		}

		item.Set("location", locID)
		if err := app.Save(item); err != nil {
			log.Printf("migrate: failed to assign location to quote item %s: %v\n", item.Id, err)
			continue
		}
		migrated++
	}

	if migrated > 0 {
		log.Printf("migrate: assigned the sole location to %d quote item(s).\n", migrated)
	}
	return nil
}
