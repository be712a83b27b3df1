package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		tickets, err := app.FindCollectionByNameOrId("tickets")
		if err != nil {
			return err
		}
		payments, err := app.FindCollectionByNameOrId("payments")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("participants")

		collection.Fields.Add(
			&core.TextField{
				Name:     "first_name",
				Required: true,
				Max:      50,
			},
			&core.TextField{
				Name:     "last_name",
				Required: true,
				Max:      50,
			},
			&core.EmailField{
				Name:     "mail",
				Required: true,
			},
			&core.BoolField{
				Name: "attended",
			},
			&core.TextField{
				Name: "description",
			},
			&core.RelationField{
				Name:         "ticket",
				Required:     true,
				CollectionId: tickets.Id,
				MaxSelect:    1,
			},
			&core.RelationField{
				Name:         "payment",
				CollectionId: payments.Id,
				MaxSelect:    1,
			},
			&core.TextField{
				Name: "random_seed",
				Min:  10,
				Max:  10,
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
		collection, err := app.FindCollectionByNameOrId("participants")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
