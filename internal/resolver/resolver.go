package resolver

import (
	"context"
	"strings"

	"suumosync/internal/config"
	"suumosync/internal/normalize"
	"suumosync/internal/translate"
)

// Store is the slice of the record store the resolver needs: exact-name
// lookup and lookup-or-create, both scoped to one table.
type Store interface {
	FindFirstByName(ctx context.Context, tableID, name string) (id string, found bool, err error)
	GetOrCreateByName(ctx context.Context, tableID, name string) (string, error)
}

// Translator converts source-language text to English, degrading to the
// input text on failure.
type Translator interface {
	Translate(ctx context.Context, text string) translate.Result
}

// Resolver turns extracted names into record IDs across the six
// reference tables. Stations and areas are open vocabularies that get
// created on a miss; layouts, categories, kinds and price ranges are
// closed sets that are only looked up. Empty input resolves to an empty
// ID without touching the store, and nothing is cached: the same name
// asked twice hits the store twice.
type Resolver struct {
	store      Store
	translator Translator
	tables     config.TablesConfig
	aliases    *Aliases
}

// New builds a Resolver over the given store and translator. A nil
// aliases falls back to the compiled-in tables.
func New(store Store, translator Translator, tables config.TablesConfig, aliases *Aliases) *Resolver {
	if aliases == nil {
		aliases = defaultAliases()
	}
	return &Resolver{
		store:      store,
		translator: translator,
		tables:     tables,
		aliases:    aliases,
	}
}

// StationID resolves a source-language station name, creating the
// record when no surface form matches. The canonical name comes from
// the curated aliases, or else from translation plus normalization.
// Both the hyphenated and the space-separated surface forms are
// accepted before falling back to creation.
func (r *Resolver) StationID(ctx context.Context, raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	name, ok := r.aliases.Stations[raw]
	if !ok {
		name = normalize.StationEN(r.translator.Translate(ctx, raw).Text)
	}

	id, found, err := r.store.FindFirstByName(ctx, r.tables.Stations, name)
	if err != nil {
		return "", err
	}
	if found {
		return id, nil
	}

	if alt := strings.ReplaceAll(name, "-", " "); alt != name {
		id, found, err = r.store.FindFirstByName(ctx, r.tables.Stations, alt)
		if err != nil {
			return "", err
		}
		if found {
			return id, nil
		}
	}

	return r.store.GetOrCreateByName(ctx, r.tables.Stations, name)
}

// AreaID resolves a ward name to its area record, creating the record
// when missing. The curated aliases win over machine translation.
func (r *Resolver) AreaID(ctx context.Context, wardJP string) (string, error) {
	if wardJP == "" {
		return "", nil
	}

	name, ok := r.aliases.Areas[wardJP]
	if !ok {
		name = normalize.TitleWords(r.translator.Translate(ctx, wardJP).Text)
	}

	return r.store.GetOrCreateByName(ctx, r.tables.Areas, name)
}

// LayoutID looks up a layout record. The ワンルーム idiom links to the
// Studio record; every other layout name links as-is. Layouts are never
// created here.
func (r *Resolver) LayoutID(ctx context.Context, layoutJP string) (string, error) {
	name := strings.TrimSpace(layoutJP)
	if name == "" {
		return "", nil
	}
	if name == "ワンルーム" {
		name = "Studio"
	}

	id, _, err := r.store.FindFirstByName(ctx, r.tables.Layouts, name)
	return id, err
}

// CategoryID looks up an English property-category record.
func (r *Resolver) CategoryID(ctx context.Context, categoryEN string) (string, error) {
	if categoryEN == "" {
		return "", nil
	}
	id, _, err := r.store.FindFirstByName(ctx, r.tables.PropTypes, categoryEN)
	return id, err
}

// KindID looks up the For Rent / For Buy record.
func (r *Resolver) KindID(ctx context.Context, kindEN string) (string, error) {
	if kindEN == "" {
		return "", nil
	}
	id, _, err := r.store.FindFirstByName(ctx, r.tables.PropKinds, kindEN)
	return id, err
}

// PriceRangeID looks up a price-range bucket record.
func (r *Resolver) PriceRangeID(ctx context.Context, label string) (string, error) {
	if label == "" {
		return "", nil
	}
	id, _, err := r.store.FindFirstByName(ctx, r.tables.PriceRanges, label)
	return id, err
}
