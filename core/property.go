package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
	"golang.org/x/sync/errgroup"
)

// PropertyUpdate carries the fields to change on a property. Nil fields are left alone.
type PropertyUpdate struct {
	Name        *string
	Address     *string
	Postcode    *string
	Price       *int
	Agent       *string
	ViewingDate *string
	ListingURL  *string
	Notes       *string
}

// apply copies the set fields onto p.
func (u PropertyUpdate) apply(p *schema.Property) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&p.Name, u.Name)
	set(&p.Address, u.Address)
	set(&p.Postcode, u.Postcode)
	set(&p.Agent, u.Agent)
	set(&p.ViewingDate, u.ViewingDate)
	set(&p.ListingURL, u.ListingURL)
	set(&p.Notes, u.Notes)
	if u.Price != nil {
		p.Price = *u.Price
	}
}

// validateProperty checks the fields every stored property must have.
func validateProperty(p schema.Property) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("property name is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("price must be non-negative (received %d)", p.Price)
	}
	return nil
}

// locate fills the coordinates of p from its postcode. Lookup failures are
// logged and leave the property without coordinates.
func locate(ctx context.Context, geocoder contract.Geocoder, p *schema.Property) {
	if geocoder == nil || p.Postcode == "" {
		return
	}
	coords, err := geocoder.Lookup(ctx, p.Postcode)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Cannot locate postcode %s", p.Postcode), err)
		return
	}
	p.Coordinates = &coords
}

// AddProperty validates and stores a new property, looking up its
// coordinates when a geocoder is given.
func AddProperty(ctx context.Context, store contract.RecordStore, geocoder contract.Geocoder, p schema.Property) (int64, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Postcode = strings.TrimSpace(p.Postcode)
	if err := validateProperty(p); err != nil {
		return 0, err
	}
	if p.Answers == nil {
		p.Answers = make(schema.Answers)
	}
	if p.Coordinates == nil {
		locate(ctx, geocoder, &p)
	}
	id, err := store.CreateProperty(p)
	if err != nil {
		return 0, fmt.Errorf("failed to create property: %w", err)
	}
	return id, nil
}

// ExecuteAdd stores a new property and prints its id.
func ExecuteAdd(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, geocoder contract.Geocoder, p schema.Property) error {
	id, err := AddProperty(ctx, mgr.GetRecordStore(), geocoder, p)
	if err != nil {
		return err
	}
	logf(ctx, cfg, "🏠", "Added property #%d (%s)\n", id, p.Name)
	return nil
}

// UpdateProperty applies field changes to a stored property. A changed
// postcode clears the old coordinates and looks them up again.
func UpdateProperty(ctx context.Context, store contract.RecordStore, geocoder contract.Geocoder, id int64, update PropertyUpdate) (schema.Property, error) {
	p, err := store.GetProperty(id)
	if err != nil {
		return schema.Property{}, err
	}
	oldPostcode := p.Postcode
	update.apply(&p)
	if err := validateProperty(p); err != nil {
		return schema.Property{}, err
	}
	if contract.NormalizePostcode(p.Postcode) != contract.NormalizePostcode(oldPostcode) {
		p.Coordinates = nil
		locate(ctx, geocoder, &p)
	}
	if err := store.UpdateProperty(p); err != nil {
		return schema.Property{}, fmt.Errorf("failed to update property %d: %w", id, err)
	}
	return p, nil
}

// ExecuteUpdate changes fields of a stored property.
func ExecuteUpdate(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, geocoder contract.Geocoder, id int64, update PropertyUpdate) error {
	p, err := UpdateProperty(ctx, mgr.GetRecordStore(), geocoder, id, update)
	if err != nil {
		return err
	}
	logf(ctx, cfg, "✏️ ", "Updated property #%d (%s)\n", p.ID, p.Name)
	return nil
}

// ExecuteDelete removes a property.
func ExecuteDelete(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, id int64) error {
	if err := mgr.GetRecordStore().DeleteProperty(id); err != nil {
		return fmt.Errorf("failed to delete property %d: %w", id, err)
	}
	logf(ctx, cfg, "🗑️ ", "Deleted property #%d\n", id)
	return nil
}

// AnswerProperty parses and stores answers for a property, returning the
// updated property.
func AnswerProperty(cfg *contract.Config, store contract.RecordStore, id int64, args []string) (schema.Property, error) {
	updates, err := ParseAnswerArgs(cfg.Catalog, args)
	if err != nil {
		return schema.Property{}, err
	}
	p, err := store.GetProperty(id)
	if err != nil {
		return schema.Property{}, err
	}
	p.Answers = ApplyAnswers(p.Answers, updates)
	if err := store.UpdateProperty(p); err != nil {
		return schema.Property{}, fmt.Errorf("failed to save answers for property %d: %w", id, err)
	}
	return p, nil
}

// ExecuteAnswer stores answers and prints the new overall score.
func ExecuteAnswer(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, id int64, args []string) error {
	store := mgr.GetRecordStore()
	p, err := AnswerProperty(cfg, store, id, args)
	if err != nil {
		return err
	}
	weights, _, _, err := effectiveWeights(cfg, store)
	if err != nil {
		return err
	}
	sp := scoreProperty(cfg.Catalog, p, weights)
	logf(ctx, cfg, "📝", "Saved %d answer(s) for #%d: overall %d (%s), %d%% complete\n",
		len(args), id, sp.Score.OverallScore, contract.GetPlainLabel(sp.Score.OverallScore), sp.Completion)
	return nil
}

// LocateProperties geocodes every property without coordinates, at most
// cfg.Workers lookups at a time. Unknown postcodes are skipped; other errors
// stop the run.
func LocateProperties(ctx context.Context, cfg *contract.Config, store contract.RecordStore, geocoder contract.Geocoder) (located, skipped int, err error) {
	if geocoder == nil {
		return 0, 0, errors.New("geocoding is disabled, enable it with --geocode")
	}
	props, err := store.ListProperties()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list properties: %w", err)
	}

	var nLocated, nSkipped atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for _, p := range props {
		if p.Coordinates != nil {
			continue
		}
		if p.Postcode == "" {
			nSkipped.Add(1)
			continue
		}
		g.Go(func() error {
			coords, err := geocoder.Lookup(gctx, p.Postcode)
			if errors.Is(err, contract.ErrPostcodeNotFound) {
				contract.LogWarn(fmt.Sprintf("Cannot locate property #%d", p.ID), err)
				nSkipped.Add(1)
				return nil
			}
			if err != nil {
				return fmt.Errorf("lookup failed for property %d: %w", p.ID, err)
			}
			p.Coordinates = &coords
			if err := store.UpdateProperty(p); err != nil {
				return fmt.Errorf("failed to save coordinates for property %d: %w", p.ID, err)
			}
			nLocated.Add(1)
			return nil
		})
	}
	err = g.Wait()
	return int(nLocated.Load()), int(nSkipped.Load()), err
}

// ExecuteLocate geocodes properties and prints a summary.
func ExecuteLocate(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, geocoder contract.Geocoder) error {
	located, skipped, err := LocateProperties(ctx, cfg, mgr.GetRecordStore(), geocoder)
	if err != nil {
		return err
	}
	logf(ctx, cfg, "📍", "Located %d properties (%d skipped)\n", located, skipped)
	return nil
}
