package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("events")

		collection.Fields.Add(
			&core.TextField{
				Name:     "title",
				Required: true,
				Max:      100,
			},
			&core.EditorField{
				Name: "description",
			},
			&core.DateField{
				Name:     "start_date",
				Required: true,
			},
			&core.DateField{
				Name:     "end_date",
				Required: true,
			},
			&core.NumberField{
				Name:     "max_participants",
				Required: true,
				OnlyInt:  true,
				Min:      types.Pointer(0.0),
			},
			&core.TextField{
				Name: "location_short",
				Max:  50,
			},
			&core.EditorField{
				Name: "location_long",
			},
			&core.URLField{
				Name: "google_maps_embed_url",
			},
			&core.BoolField{
				Name: "enable_selling",
			},
			&core.AutodateField{
				Name:     "created",
				OnCreate: true,
			},
			&core.AutodateField{
				Name:     "updated",
				OnCreate: true,
				OnUpdate: true,
			},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
