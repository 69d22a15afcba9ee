package domain

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_WeightSums(t *testing.T) {
	regions := DefaultCatalog().Regions()
	require.NotEmpty(t, regions)

	for _, r := range regions {
		t.Run(r.Name, func(t *testing.T) {
			assert.Len(t, r.Weights, len(Categories))
			assert.InDelta(t, 1.0, r.Weights.Sum(), weightTolerance)
			for _, c := range Categories {
				assert.GreaterOrEqual(t, r.Weights[c], 0.0, string(c))
			}
		})
	}
}

func TestDefaultCatalog_HasNamedRegions(t *testing.T) {
	for _, name := range []string{
		"COASTAL_HURRICANE", "GULF_COAST", "ATLANTIC_COAST", "SEISMIC_WEST",
		"MOUNTAIN_WEST", "KARST_INTERIOR", "RADON_BELT", DefaultRegion,
	} {
		_, ok := DefaultCatalog().Region(name)
		assert.True(t, ok, name)
	}
}

func TestRegionOf(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"FL", "COASTAL_HURRICANE"},
		{"fl", "COASTAL_HURRICANE"},
		{" us-fl ", "COASTAL_HURRICANE"},
		{"FL-12086", "COASTAL_HURRICANE"},
		{"CA", "SEISMIC_WEST"},
		{"TX", "GULF_COAST"},
		{"KY", "KARST_INTERIOR"},
		{"PA", "RADON_BELT"},
		{"CO", "MOUNTAIN_WEST"},
		{"NC", "ATLANTIC_COAST"},
		{"MA", DefaultRegion},
		{"", DefaultRegion},
		{"ZZ-999", DefaultRegion},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, RegionOf(tt.code))
		})
	}
}

func TestResolveWeights_CoastalProfile(t *testing.T) {
	w := ResolveWeights("FL", nil)
	assert.True(t, w.IsValid())
	assert.Greater(t, w[Hurricane], w[Radon])
}

func TestResolveWeights_FloodOverride(t *testing.T) {
	w := ResolveWeights("FL", RiskWeights{Flood: 0.9})

	assert.InDelta(t, 1.0, w.Sum(), weightTolerance)
	assert.Equal(t, Flood, w.Largest())
	for _, c := range Categories[1:] {
		assert.Less(t, w[c], w[Flood], string(c))
	}
}

func TestResolveWeights_AlwaysNormalized(t *testing.T) {
	for _, code := range []string{"FL", "CA", "unknown", "US-PA"} {
		w := ResolveWeights(code, RiskWeights{Radon: 3, Slope: 0})
		assert.InDelta(t, 1.0, w.Sum(), 1e-9, code)
	}
}

const validCatalog = `
regions:
  - name: coastal
    jurisdictions: [fl, us-ga]
    weights: {flood: 0.3, hurricane: 0.3, earthquake: 0.05, sinkhole: 0.05, wildfire: 0.05, environmental: 0.1, radon: 0.05, slope: 0.1}
  - name: DEFAULT
    weights: {flood: 0.125, hurricane: 0.125, earthquake: 0.125, sinkhole: 0.125, wildfire: 0.125, environmental: 0.125, radon: 0.125, slope: 0.125}
`

func TestLoadCatalog(t *testing.T) {
	cat, err := LoadCatalog(strings.NewReader(validCatalog))
	require.NoError(t, err)

	assert.Equal(t, "COASTAL", cat.RegionOf("GA"))
	assert.Equal(t, DefaultRegion, cat.RegionOf("CA"))
	assert.InDelta(t, 0.125, cat.ResolveWeights("CA", nil)[Radon], 1e-12)
}

func TestLoadCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "missing default",
			yaml: `
regions:
  - name: ONLY
    weights: {flood: 0.125, hurricane: 0.125, earthquake: 0.125, sinkhole: 0.125, wildfire: 0.125, environmental: 0.125, radon: 0.125, slope: 0.125}
`,
			wantErr: "no DEFAULT region",
		},
		{
			name: "bad sum",
			yaml: `
regions:
  - name: DEFAULT
    weights: {flood: 0.5, hurricane: 0.125, earthquake: 0.125, sinkhole: 0.125, wildfire: 0.125, environmental: 0.125, radon: 0.125, slope: 0.125}
`,
			wantErr: "weights sum to 1.3750",
		},
		{
			name: "missing category",
			yaml: `
regions:
  - name: DEFAULT
    weights: {flood: 0.25, hurricane: 0.25, earthquake: 0.25, sinkhole: 0.25}
`,
			wantErr: "missing wildfire weight",
		},
		{
			name: "negative weight",
			yaml: `
regions:
  - name: DEFAULT
    weights: {flood: -0.125, hurricane: 0.375, earthquake: 0.125, sinkhole: 0.125, wildfire: 0.125, environmental: 0.125, radon: 0.125, slope: 0.125}
`,
			wantErr: "is negative",
		},
		{
			name: "unknown category",
			yaml: `
regions:
  - name: DEFAULT
    weights: {drought: 0.0, flood: 0.125, hurricane: 0.125, earthquake: 0.125, sinkhole: 0.125, wildfire: 0.125, environmental: 0.125, radon: 0.125, slope: 0.125}
`,
			wantErr: `unknown hazard category "drought"`,
		},
		{
			name: "duplicate jurisdiction",
			yaml: `
regions:
  - name: A
    jurisdictions: [FL]
    weights: {flood: 0.125, hurricane: 0.125, earthquake: 0.125, sinkhole: 0.125, wildfire: 0.125, environmental: 0.125, radon: 0.125, slope: 0.125}
  - name: DEFAULT
    jurisdictions: [fl]
    weights: {flood: 0.125, hurricane: 0.125, earthquake: 0.125, sinkhole: 0.125, wildfire: 0.125, environmental: 0.125, radon: 0.125, slope: 0.125}
`,
			wantErr: "mapped to both A and DEFAULT",
		},
		{
			name:    "unknown field",
			yaml:    "regions:\n  - name: DEFAULT\n    colour: red\n",
			wantErr: "decode region catalog",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validCatalog), 0o600))

	cat, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Len(t, cat.Regions(), 2)

	_, err = LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestMustLoadCatalog_Panics(t *testing.T) {
	assert.Panics(t, func() { MustLoadCatalog([]byte("regions: []")) })
}
