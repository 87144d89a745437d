// Package preferences persists the dashboard's unit, last city and favorites.
//
// Each setting is its own storage entry so that updating one never rewrites
// the others. There is no locking across the read-modify-write in
// ToggleFavorite: with a single user the last writer wins.
package preferences

import (
	"context"
	"slices"

	"github.com/fakhrymubarak/weather-dashboard/internal/kvstore"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

const (
	KeyLastCity  = "weather:lastCity"
	KeyFavorites = "weather:favorites"
	KeyUnit      = "weather:unit"
)

// Update is a partial write. Zero-valued fields (empty unit, empty city,
// nil or empty favorites) are treated as not provided and left untouched,
// as is a unit other than metric or imperial.
type Update struct {
	Unit      model.Unit
	Favorites []string
	LastCity  string
}

type Manager struct {
	store       *kvstore.Store
	defaultUnit model.Unit
}

// NewManager builds a Manager. An invalid defaultUnit becomes metric.
func NewManager(store *kvstore.Store, defaultUnit model.Unit) *Manager {
	if !defaultUnit.Valid() {
		defaultUnit = model.UnitMetric
	}
	return &Manager{store: store, defaultUnit: defaultUnit}
}

// Load reads all three settings, applying defaults for absent or unreadable values.
func (m *Manager) Load(ctx context.Context) model.Preferences {
	prefs := model.Preferences{
		Unit:      m.defaultUnit,
		Favorites: m.favorites(ctx),
	}
	if raw, ok := m.store.GetString(ctx, KeyUnit); ok {
		if unit, err := model.ParseUnit(raw); err == nil {
			prefs.Unit = unit
		}
	}
	if city, ok := m.store.GetString(ctx, KeyLastCity); ok {
		prefs.LastCity = city
	}
	return prefs
}

// Save writes the provided fields of u.
func (m *Manager) Save(ctx context.Context, u Update) {
	if u.Unit.Valid() {
		m.store.SetString(ctx, KeyUnit, string(u.Unit))
	}
	if len(u.Favorites) > 0 {
		m.store.SetJSON(ctx, KeyFavorites, dedupe(u.Favorites))
	}
	if u.LastCity != "" {
		m.store.SetString(ctx, KeyLastCity, u.LastCity)
	}
}

// ToggleFavorite adds city if absent or removes it if present, persists the
// result (even when it becomes empty) and returns it.
func (m *Manager) ToggleFavorite(ctx context.Context, city string) []string {
	current := m.favorites(ctx)

	var updated []string
	if i := slices.Index(current, city); i >= 0 {
		updated = slices.Delete(current, i, i+1)
	} else {
		updated = append(current, city)
	}

	m.store.SetJSON(ctx, KeyFavorites, updated)
	return updated
}

func (m *Manager) favorites(ctx context.Context) []string {
	return dedupe(kvstore.GetJSON(ctx, m.store, KeyFavorites, []string{}))
}

// dedupe keeps the first occurrence of each name. The result is never nil.
func dedupe(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}
