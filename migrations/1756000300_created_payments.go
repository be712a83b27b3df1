package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("payments")

		collection.Fields.Add(
			&core.NumberField{
				Name:     "total",
				Required: true,
				Min:      types.Pointer(0.0),
			},
			&core.SelectField{
				Name:      "currency",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"EUR"},
			},
			&core.TextField{
				Name: "description",
			},
			&core.TextField{
				Name: "billing_first_name",
				Max:  50,
			},
			&core.TextField{
				Name: "billing_last_name",
				Max:  50,
			},
			&core.SelectField{
				Name:      "status",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"open", "confirmed", "canceled", "expired", "failed"},
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
		collection, err := app.FindCollectionByNameOrId("payments")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
