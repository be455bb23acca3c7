package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/refdata-console/config"
	"github.com/oksasatya/refdata-console/internal/domain/entity"
	"github.com/oksasatya/refdata-console/internal/domain/repository"
	"github.com/oksasatya/refdata-console/internal/infrastructure/restapi"
	"github.com/oksasatya/refdata-console/pkg/helpers"
)

// seed inserts recs whose name is not present yet and returns name -> id
// for everything in the collection afterwards.
func seed[T entity.Referable](ctx context.Context, col repository.Collection[T], recs ...T) (map[string]int, error) {
	ids, err := names(ctx, col)
	if err != nil {
		return nil, err
	}
	added := 0
	for _, rec := range recs {
		if _, ok := ids[rec.Option().Name]; ok {
			continue
		}
		if err := col.Create(ctx, rec); err != nil {
			return nil, fmt.Errorf("seed %s %q: %w", col.Name(), rec.Option().Name, err)
		}
		added++
	}
	if ids, err = names(ctx, col); err != nil {
		return nil, err
	}
	fmt.Printf("%s: %d added, %d total\n", col.Name(), added, len(ids))
	return ids, nil
}

func names[T entity.Referable](ctx context.Context, col repository.Collection[T]) (map[string]int, error) {
	list, err := col.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", col.Name(), err)
	}
	out := make(map[string]int, len(list))
	for _, rec := range list {
		o := rec.Option()
		out[o.Name] = o.ID
	}
	return out, nil
}

// run seeds the reference lists parents first, since children point at
// the ids their parents got.
func run(ctx context.Context, cols *restapi.Collections) error {
	if _, err := seed[entity.Role](ctx, cols.Roles, entity.Role{Name: "admin"}, entity.Role{Name: "user"}); err != nil {
		return err
	}
	if _, err := seed[entity.Language](ctx, cols.Languages,
		entity.Language{Name: "English"}, entity.Language{Name: "Hindi"}, entity.Language{Name: "Marathi"}); err != nil {
		return err
	}

	countries, err := seed[entity.Country](ctx, cols.Countries, entity.Country{Name: "India"})
	if err != nil {
		return err
	}
	states, err := seed[entity.State](ctx, cols.States,
		entity.State{Name: "Maharashtra", CountryID: countries["India"]},
		entity.State{Name: "Goa", CountryID: countries["India"]})
	if err != nil {
		return err
	}
	_, err = seed[entity.District](ctx, cols.Districts,
		entity.District{Name: "Pune", StateID: states["Maharashtra"]},
		entity.District{Name: "Mumbai", StateID: states["Maharashtra"]},
		entity.District{Name: "North Goa", StateID: states["Goa"]})
	return err
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	cols := restapi.NewCollections(restapi.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout, logger))
	if err := run(context.Background(), cols); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}
	fmt.Printf("seeded reference data into %s\n", cfg.BackendBaseURL)
}
