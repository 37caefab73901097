// Package seed defines the catalog applied to a fresh database: initial
// categories and products plus the default admin account.
//
// The default catalog is embedded; deployments can override it with a YAML
// file of the same shape. Every catalog, embedded or not, is validated
// against an embedded CUE schema before the store sees it, so a malformed
// seed aborts initialization instead of inserting junk rows.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/hmtran/storefront/internal/model"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

//go:embed catalog_schema.cue
var catalogSchemaCUE string

// Catalog is the seed data for a fresh store.
type Catalog struct {
	Categories []Category `yaml:"categories" json:"categories"`
	Products   []Product  `yaml:"products" json:"products"`
	Admin      Admin      `yaml:"admin" json:"admin"`
}

// Category is one seed category row.
type Category struct {
	ID   int64  `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Product is one seed product row. Category references a seed category id.
type Product struct {
	ID       int64  `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Price    string `yaml:"price" json:"price"`
	Image    string `yaml:"image" json:"image"`
	Category int64  `yaml:"category" json:"category"`
}

// Admin is the default admin account, created only if no user named
// admin exists yet. The password is hashed before storage.
type Admin struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Default returns the embedded catalog.
// Panics if the embedded catalog fails its own schema; that is a build
// defect, not a runtime condition.
func Default() Catalog {
	cat, err := parse(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded seed catalog invalid: %v", err))
	}
	return cat
}

// LoadFile reads and validates a catalog override from a YAML file.
func LoadFile(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read seed catalog: %w", err)
	}
	cat, err := parse(raw)
	if err != nil {
		return Catalog{}, fmt.Errorf("seed catalog %s: %w", path, err)
	}
	return cat, nil
}

// parse decodes YAML and runs both validation passes.
func parse(raw []byte) (Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return Catalog{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := Validate(cat); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// Validate checks a catalog against the CUE schema, then verifies that
// every product references a category defined in the same catalog.
func Validate(cat Catalog) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(catalogSchemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile seed schema: %w", err)
	}

	data := ctx.Encode(cat)
	if err := data.Err(); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	if err := schema.Unify(data).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("seed schema violation: %w", err)
	}

	known := make(map[int64]bool, len(cat.Categories))
	for _, c := range cat.Categories {
		known[c.ID] = true
	}
	for _, p := range cat.Products {
		if !known[p.Category] {
			return fmt.Errorf("seed product %q references unknown category %d", p.Name, p.Category)
		}
	}

	return nil
}

// ModelCategories converts seed rows to model entities.
func (c Catalog) ModelCategories() []model.Category {
	out := make([]model.Category, len(c.Categories))
	for i, sc := range c.Categories {
		out[i] = model.Category{ID: sc.ID, Name: sc.Name}
	}
	return out
}

// ModelProducts converts seed rows to model entities.
func (c Catalog) ModelProducts() []model.Product {
	out := make([]model.Product, len(c.Products))
	for i, sp := range c.Products {
		out[i] = model.Product{
			ID:         sp.ID,
			Name:       sp.Name,
			Price:      sp.Price,
			Image:      sp.Image,
			CategoryID: sp.Category,
		}
	}
	return out
}
