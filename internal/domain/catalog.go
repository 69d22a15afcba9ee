package domain

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultRegion is the region used for jurisdictions the catalog does not map.
const DefaultRegion = "DEFAULT"

//go:embed regions.yaml
var regionsYAML []byte

// defaultCatalog is parsed once at start-up; a malformed embedded file panics.
var defaultCatalog = MustLoadCatalog(regionsYAML)

// DefaultCatalog returns the embedded region catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// Region is a named group of jurisdictions sharing one weight vector.
type Region struct {
	Name          string      `json:"name"`
	Description   string      `json:"description,omitempty"`
	Jurisdictions []string    `json:"jurisdictions"`
	Weights       RiskWeights `json:"weights"`
}

// Catalog maps jurisdictions to regions. It is immutable after loading and safe
// for concurrent use.
type Catalog struct {
	regions        []Region
	byName         map[string]int
	byJurisdiction map[string]int
}

type catalogFile struct {
	Regions []struct {
		Name          string             `yaml:"name"`
		Description   string             `yaml:"description"`
		Jurisdictions []string           `yaml:"jurisdictions"`
		Weights       map[string]float64 `yaml:"weights"`
	} `yaml:"regions"`
}

// LoadCatalog parses and validates a YAML region catalog. All validation
// failures are reported together.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode region catalog: %w", err)
	}

	cat := &Catalog{
		byName:         make(map[string]int, len(file.Regions)),
		byJurisdiction: make(map[string]int),
	}

	var errs []error
	for _, fr := range file.Regions {
		name := strings.ToUpper(strings.TrimSpace(fr.Name))
		if name == "" {
			errs = append(errs, errors.New("region with empty name"))
			continue
		}
		if _, dup := cat.byName[name]; dup {
			errs = append(errs, fmt.Errorf("region %s: defined twice", name))
			continue
		}

		weights := make(RiskWeights, len(Categories))
		for k, v := range fr.Weights {
			c, err := ParseCategory(k)
			if err != nil {
				errs = append(errs, fmt.Errorf("region %s: %w", name, err))
				continue
			}
			if v < 0 || math.IsNaN(v) {
				errs = append(errs, fmt.Errorf("region %s: %s weight %v is negative", name, c, v))
			}
			weights[c] = v
		}
		for _, c := range Categories {
			if _, ok := weights[c]; !ok {
				errs = append(errs, fmt.Errorf("region %s: missing %s weight", name, c))
			}
		}
		if !weights.IsValid() {
			errs = append(errs, fmt.Errorf("region %s: weights sum to %.4f, want 1.0", name, weights.Sum()))
		}

		idx := len(cat.regions)
		region := Region{Name: name, Description: fr.Description, Weights: weights}
		for _, j := range fr.Jurisdictions {
			j = normalizeJurisdiction(j)
			if prev, dup := cat.byJurisdiction[j]; dup {
				errs = append(errs, fmt.Errorf("jurisdiction %s: mapped to both %s and %s", j, cat.regions[prev].Name, name))
				continue
			}
			cat.byJurisdiction[j] = idx
			region.Jurisdictions = append(region.Jurisdictions, j)
		}
		cat.byName[name] = idx
		cat.regions = append(cat.regions, region)
	}

	if _, ok := cat.byName[DefaultRegion]; !ok {
		errs = append(errs, fmt.Errorf("region catalog has no %s region", DefaultRegion))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid region catalog: %w", err)
	}
	return cat, nil
}

// LoadCatalogFile reads a catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open region catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// MustLoadCatalog is LoadCatalog for catalogs compiled into the binary.
func MustLoadCatalog(data []byte) *Catalog {
	cat, err := LoadCatalog(strings.NewReader(string(data)))
	if err != nil {
		panic(err)
	}
	return cat
}

// Regions returns every region in file order.
func (c *Catalog) Regions() []Region {
	out := make([]Region, len(c.regions))
	for i, r := range c.regions {
		out[i] = r
		out[i].Weights = r.Weights.Normalize()
	}
	return out
}

// Region looks up a region by name.
func (c *Catalog) Region(name string) (Region, bool) {
	idx, ok := c.byName[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Region{}, false
	}
	r := c.regions[idx]
	r.Weights = r.Weights.Normalize()
	return r, true
}

// RegionOf maps a jurisdiction code to its region name. Codes are
// case-insensitive and may carry a "US-" prefix or a county suffix ("FL-12086").
// Unknown codes map to DefaultRegion.
func (c *Catalog) RegionOf(jurisdiction string) string {
	if idx, ok := c.byJurisdiction[normalizeJurisdiction(jurisdiction)]; ok {
		return c.regions[idx].Name
	}
	return DefaultRegion
}

// RegionWeights returns a copy of the jurisdiction's regional weight vector as
// written in the catalog.
func (c *Catalog) RegionWeights(jurisdiction string) RiskWeights {
	idx := c.byName[c.RegionOf(jurisdiction)]
	return c.regions[idx].Weights.WithOverride(nil)
}

// ResolveWeights returns the normalized weight vector for a jurisdiction with
// override entries applied first.
func (c *Catalog) ResolveWeights(jurisdiction string, override RiskWeights) RiskWeights {
	return c.RegionWeights(jurisdiction).WithOverride(override).Normalize()
}

func normalizeJurisdiction(code string) string {
	s := strings.ToUpper(strings.TrimSpace(code))
	s = strings.TrimPrefix(s, "US-")
	if i := strings.IndexByte(s, '-'); i >= 0 {
		s = s[:i]
	}
	return s
}
