package repositories

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"goldantelope/internal/models"
)

// CatalogRepository persists one catalog document per country plus a
// best-effort aggregate snapshot of all countries. There is no
// cross-process locking: concurrent saves to the same country race and
// the last writer wins.
type CatalogRepository struct {
	DataDir  string
	ErrorLog *log.Logger
}

func (r *CatalogRepository) countryFile(country models.Country) string {
	return filepath.Join(r.DataDir, fmt.Sprintf("listings_%s.json", country))
}

func (r *CatalogRepository) aggregateFile() string {
	return filepath.Join(r.DataDir, "listings_data.json")
}

// Load returns the country's catalog with exactly the twelve canonical
// category keys. Three persisted shapes are tolerated: a category-keyed
// document, a legacy flat list of category-tagged items, and no file at
// all. A file that exists but cannot be decoded yields the empty default
// together with models.ErrCorruptData; read paths may serve the default,
// write paths must not save over the file.
func (r *CatalogRepository) Load(country models.Country) (models.Catalog, error) {
	data, err := os.ReadFile(r.countryFile(country))
	if err == nil {
		catalog, derr := decodeCatalog(data)
		if derr != nil {
			return models.NewCatalog(), fmt.Errorf("%w: %s: %v", models.ErrCorruptData, r.countryFile(country), derr)
		}
		return catalog, nil
	}
	if !os.IsNotExist(err) {
		return models.NewCatalog(), fmt.Errorf("%w: %s: %v", models.ErrCorruptData, r.countryFile(country), err)
	}

	// No per-country file: fall back to the aggregate snapshot.
	var all map[models.Country]json.RawMessage
	absent, aerr := readJSONFile(r.aggregateFile(), &all)
	if aerr != nil {
		return models.NewCatalog(), aerr
	}
	if !absent {
		if raw, ok := all[country]; ok {
			catalog, derr := decodeCatalog(raw)
			if derr != nil {
				return models.NewCatalog(), fmt.Errorf("%w: %s: %v", models.ErrCorruptData, r.aggregateFile(), derr)
			}
			return catalog, nil
		}
	}
	return models.NewCatalog(), nil
}

// decodeCatalog accepts either the category-keyed document shape or the
// legacy flat list. Missing canonical keys are filled, unknown keys and
// legacy category tags are bucketed through the alias table so no item
// is dropped.
func decodeCatalog(data []byte) (models.Catalog, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return models.NewCatalog(), nil
	}

	catalog := models.NewCatalog()
	if trimmed[0] == '[' {
		var items []models.Listing
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		for _, item := range items {
			key := models.LegacyCategory(string(item.Category))
			catalog[key] = append(catalog[key], item)
		}
		return catalog, nil
	}

	var doc map[string][]models.Listing
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	for rawKey, items := range doc {
		key := models.LegacyCategory(rawKey)
		catalog[key] = append(catalog[key], items...)
	}
	return catalog, nil
}

// Save writes the per-country document first, then merges it into the
// aggregate snapshot. The aggregate write is best-effort: its failure is
// logged and never surfaced, catalog correctness depends only on the
// per-country file.
func (r *CatalogRepository) Save(country models.Country, catalog models.Catalog) error {
	normalized := models.NewCatalog()
	for key, items := range catalog {
		normalized[models.LegacyCategory(string(key))] = append(normalized[models.LegacyCategory(string(key))], items...)
	}

	if err := writeJSONFile(r.countryFile(country), normalized); err != nil {
		return err
	}

	if err := r.mergeAggregate(country, normalized); err != nil && r.ErrorLog != nil {
		r.ErrorLog.Printf("aggregate snapshot sync failed for %s: %v", country, err)
	}
	return nil
}

func (r *CatalogRepository) mergeAggregate(country models.Country, catalog models.Catalog) error {
	all := make(map[models.Country]models.Catalog)
	if _, err := readJSONFile(r.aggregateFile(), &all); err != nil {
		return err
	}
	all[country] = catalog
	return writeJSONFile(r.aggregateFile(), all)
}
