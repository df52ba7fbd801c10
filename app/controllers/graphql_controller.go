package controllers

import (
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/agrisetu/agrisetu/app/models"
	"github.com/agrisetu/agrisetu/app/repositories"
	gqlhttp "github.com/agrisetu/agrisetu/pkg/graphql"
)

var cropType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Crop",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.String, Resolve: cropField(func(c models.Crop) any { return c.ID.Hex() })},
		"name":     &graphql.Field{Type: graphql.String, Resolve: cropField(func(c models.Crop) any { return c.Name })},
		"location": &graphql.Field{Type: graphql.String, Resolve: cropField(func(c models.Crop) any { return c.Location })},
		"quantity": &graphql.Field{Type: graphql.Float, Resolve: cropField(func(c models.Crop) any { return c.Quantity })},
		"unit":     &graphql.Field{Type: graphql.String, Resolve: cropField(func(c models.Crop) any { return c.Unit })},
		"price":    &graphql.Field{Type: graphql.Float, Resolve: cropField(func(c models.Crop) any { return c.Price })},
		"quality":  &graphql.Field{Type: graphql.String, Resolve: cropField(func(c models.Crop) any { return c.Quality })},
		"status":   &graphql.Field{Type: graphql.String, Resolve: cropField(func(c models.Crop) any { return string(c.Status) })},
	},
})

var storageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Storage",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.String, Resolve: storageField(func(s models.Storage) any { return s.ID.Hex() })},
		"name":        &graphql.Field{Type: graphql.String, Resolve: storageField(func(s models.Storage) any { return s.Name })},
		"location":    &graphql.Field{Type: graphql.String, Resolve: storageField(func(s models.Storage) any { return s.Location })},
		"capacity":    &graphql.Field{Type: graphql.Float, Resolve: storageField(func(s models.Storage) any { return s.Capacity })},
		"available":   &graphql.Field{Type: graphql.Float, Resolve: storageField(func(s models.Storage) any { return s.Available })},
		"pricePerTon": &graphql.Field{Type: graphql.Float, Resolve: storageField(func(s models.Storage) any { return s.PricePerTon })},
		"features":    &graphql.Field{Type: graphql.NewList(graphql.String), Resolve: storageField(func(s models.Storage) any { return s.Features })},
	},
})

var transportType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Transport",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.String, Resolve: transportField(func(v models.Transport) any { return v.ID.Hex() })},
		"name":         &graphql.Field{Type: graphql.String, Resolve: transportField(func(v models.Transport) any { return v.Name })},
		"location":     &graphql.Field{Type: graphql.String, Resolve: transportField(func(v models.Transport) any { return v.Location })},
		"vehicleType":  &graphql.Field{Type: graphql.String, Resolve: transportField(func(v models.Transport) any { return v.VehicleType })},
		"capacity":     &graphql.Field{Type: graphql.Float, Resolve: transportField(func(v models.Transport) any { return v.Capacity })},
		"pricePerKm":   &graphql.Field{Type: graphql.Float, Resolve: transportField(func(v models.Transport) any { return v.PricePerKm })},
		"availability": &graphql.Field{Type: graphql.String, Resolve: transportField(func(v models.Transport) any { return v.Availability })},
	},
})

func cropField(get func(models.Crop) any) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		if c, ok := p.Source.(models.Crop); ok {
			return get(c), nil
		}
		return nil, nil
	}
}

func storageField(get func(models.Storage) any) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		if s, ok := p.Source.(models.Storage); ok {
			return get(s), nil
		}
		return nil, nil
	}
}

func transportField(get func(models.Transport) any) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		if v, ok := p.Source.(models.Transport); ok {
			return get(v), nil
		}
		return nil, nil
	}
}

func stringArg(p graphql.ResolveParams, key string) string {
	if v, ok := p.Args[key].(string); ok {
		return v
	}
	return ""
}

func floatArg(p graphql.ResolveParams, key string) *float64 {
	if v, ok := p.Args[key].(float64); ok {
		return &v
	}
	return nil
}

// NewGraphQLHandler builds the read-only marketplace query endpoint.
// Filter arguments mirror the REST query params.
func NewGraphQLHandler(crops CropStore, facilities StorageCatalogStore, vehicles TransportCatalogStore) (http.HandlerFunc, error) {
	root := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"crops": &graphql.Field{
				Type: graphql.NewList(cropType),
				Args: graphql.FieldConfigArgument{
					"name":     &graphql.ArgumentConfig{Type: graphql.String},
					"location": &graphql.ArgumentConfig{Type: graphql.String},
					"quality":  &graphql.ArgumentConfig{Type: graphql.String},
					"status":   &graphql.ArgumentConfig{Type: graphql.String},
					"minPrice": &graphql.ArgumentConfig{Type: graphql.Float},
					"maxPrice": &graphql.ArgumentConfig{Type: graphql.Float},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return crops.Find(p.Context, repositories.CropFilter{
						Name:     stringArg(p, "name"),
						Location: stringArg(p, "location"),
						Quality:  stringArg(p, "quality"),
						Status:   models.CropStatus(stringArg(p, "status")),
						MinPrice: floatArg(p, "minPrice"),
						MaxPrice: floatArg(p, "maxPrice"),
					})
				},
			},
			"storage": &graphql.Field{
				Type: graphql.NewList(storageType),
				Args: graphql.FieldConfigArgument{
					"location":     &graphql.ArgumentConfig{Type: graphql.String},
					"feature":      &graphql.ArgumentConfig{Type: graphql.String},
					"minAvailable": &graphql.ArgumentConfig{Type: graphql.Float},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return facilities.Find(p.Context, repositories.StorageFilter{
						Location:     stringArg(p, "location"),
						Feature:      stringArg(p, "feature"),
						MinAvailable: floatArg(p, "minAvailable"),
					})
				},
			},
			"transport": &graphql.Field{
				Type: graphql.NewList(transportType),
				Args: graphql.FieldConfigArgument{
					"location":     &graphql.ArgumentConfig{Type: graphql.String},
					"vehicleType":  &graphql.ArgumentConfig{Type: graphql.String},
					"availability": &graphql.ArgumentConfig{Type: graphql.String},
					"minCapacity":  &graphql.ArgumentConfig{Type: graphql.Float},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return vehicles.Find(p.Context, repositories.TransportFilter{
						Location:     stringArg(p, "location"),
						VehicleType:  stringArg(p, "vehicleType"),
						Availability: stringArg(p, "availability"),
						MinCapacity:  floatArg(p, "minCapacity"),
					})
				},
			},
		},
	})

	schema, err := gqlhttp.NewSchema(root)
	if err != nil {
		return nil, err
	}
	return gqlhttp.Handler(schema), nil
}
