package domain_test

import (
	"errors"
	"math"
	"testing"

	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(continent, country string, year int, renew, fossil, share float64) domain.Record {
	return domain.Record{
		Continent: continent, Country: country, Year: year,
		Geo:        domain.Geo{Lat: 10, Lon: 20},
		Renewables: renew, Fossil: fossil, PctShare: share,
		Nuclear: 1, Biofuel: 2, Hydro: 3, Solar: 4, Wind: 5, OtherRenewable: 6,
	}
}

func fixture() *domain.Dataset {
	noGeo := rec("Africa", "Kenya", 2003, 5, 1, 80)
	noGeo.Geo = domain.NoGeo
	missingShare := rec("Europe", "France", 2003, 70, 50, math.NaN())
	missingFossil := rec("Europe", "France", 2004, 80, math.NaN(), 15)

	return domain.NewDataset([]domain.Record{
		rec("Europe", "Germany", 2002, 40, 400, 9),
		rec("Europe", "France", 2001, 60, 55, 10),
		rec("Asia", "Japan", 2001, 100, 800, 11),
		rec("Europe", "Germany", 2001, 35, 410, 8),
		missingShare,
		missingFossil,
		noGeo,
		rec("Europe", "France", 2010, 99, 40, 20),
	})
}

func TestDataset_Continents_FirstAppearanceOrder(t *testing.T) {
	assert.Equal(t, []string{"Europe", "Asia", "Africa"}, fixture().Continents())
}

func TestDataset_Countries(t *testing.T) {
	d := fixture()
	assert.Equal(t, []string{"Germany", "France"}, d.Countries("Europe"))
	assert.Equal(t, []string{"Japan"}, d.Countries("Asia"))
	assert.Empty(t, d.Countries(""))
	assert.Empty(t, d.Countries("Antarctica"))
}

func TestDataset_Countries_ReturnsCopy(t *testing.T) {
	d := fixture()
	got := d.Countries("Europe")
	got[0] = "Mutated"
	assert.Equal(t, "Germany", d.Countries("Europe")[0])
}

func TestDataset_YearBounds(t *testing.T) {
	lo, hi := fixture().YearBounds()
	assert.Equal(t, 2001, lo)
	assert.Equal(t, 2010, hi)

	lo, hi = domain.NewDataset(nil).YearBounds()
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func TestYearRange_HalfOpen(t *testing.T) {
	r := domain.YearRange{Start: 2001, End: 2010}
	assert.True(t, r.Contains(2001))
	assert.True(t, r.Contains(2009))
	assert.False(t, r.Contains(2010))
	assert.False(t, r.Contains(2000))
}

func TestYearRange_Validate(t *testing.T) {
	require.NoError(t, domain.YearRange{Start: 2005, End: 2005}.Validate())
	err := domain.YearRange{Start: 2006, End: 2005}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidRange))
}

func TestDataset_EnergyMix(t *testing.T) {
	got := fixture().EnergyMix("Europe", "France", domain.YearRange{Start: 2001, End: 2010})

	want := []domain.EnergyPoint{
		{Year: 2001, Renewables: 60, Fossil: 55},
		{Year: 2003, Renewables: 70, Fossil: 50},
		{Year: 2004, Renewables: 80, Fossil: 0}, // NaN skipped by the sum
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("energy mix mismatch (-want +got):\n%s", diff)
	}
}

func TestDataset_EnergyMix_WrongContinentIsEmpty(t *testing.T) {
	got := fixture().EnergyMix("Asia", "France", domain.YearRange{Start: 2000, End: 2020})
	assert.Empty(t, got)
}

func TestDataset_RenewableShare(t *testing.T) {
	got := fixture().RenewableShare("Europe", "France", domain.YearRange{Start: 2001, End: 2011})

	require.Len(t, got, 4)
	assert.Equal(t, 2001, got[0].Year)
	assert.InDelta(t, 10, got[0].Share, 1e-9)
	assert.Equal(t, 2003, got[1].Year)
	assert.True(t, math.IsNaN(got[1].Share), "all-missing group has a missing mean")
	assert.InDelta(t, 15, got[2].Share, 1e-9)
	assert.Equal(t, 2010, got[3].Year)
}

func TestDataset_GenerationByCountry(t *testing.T) {
	got := fixture().GenerationByCountry(domain.YearRange{Start: 2001, End: 2004})

	var names []string
	for _, g := range got {
		names = append(names, g.Country)
	}
	// Kenya has no coordinates; order is continent, country, year.
	assert.Equal(t, []string{"Japan", "France", "France", "Germany", "Germany"}, names)
	assert.InDelta(t, 900, got[0].Total(), 1e-9)
	assert.Equal(t, 2001, got[1].Year)
	assert.Equal(t, 2003, got[2].Year)
}

func TestDataset_SourceMix(t *testing.T) {
	m := fixture().SourceMix(domain.G7, domain.YearRange{Start: 2001, End: 2003})

	assert.Equal(t, []string{"France", "Germany", "Japan"}, m.Countries)
	assert.Equal(t, []string{"nuclear", "biofuel", "hydro", "solar", "wind", "other"}, m.Sources)
	// Germany has two rows in range.
	assert.Equal(t, []float64{2, 4, 6, 8, 10, 12}, m.Values[1])
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, m.Values[0])
}

func TestDataset_SourceMix_Empty(t *testing.T) {
	m := fixture().SourceMix(domain.G7, domain.YearRange{Start: 1900, End: 1950})
	assert.Empty(t, m.Countries)
	assert.Empty(t, m.Values)
	assert.Len(t, m.Sources, 6)
}

func TestDataset_RecordsFor(t *testing.T) {
	d := fixture()
	all := d.RecordsFor(domain.Selection{Years: domain.YearRange{Start: 2000, End: 2100}})
	assert.Len(t, all, d.Len())

	fr := d.RecordsFor(domain.Selection{Continent: "Europe", Country: "France", Years: domain.YearRange{Start: 2001, End: 2005}})
	assert.Len(t, fr, 3)
}
