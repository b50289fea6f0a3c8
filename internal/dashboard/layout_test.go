package dashboard_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/couchcryptid/energy-dashboard-service/internal/dashboard"
	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	svc, _ := newService(t, fixture())

	l, err := svc.Layout(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dashboard.HeaderTitle, l.Header.Title)
	assert.Equal(t, 1999, l.YearSlider.Min)
	assert.Equal(t, 2012, l.YearSlider.Max)
	assert.Equal(t, [2]int{2001, 2010}, l.YearSlider.Value)
	assert.Equal(t, map[string]string{"1999": "1999", "2003": "2003", "2007": "2007", "2011": "2011"}, l.YearSlider.Marks)

	assert.Equal(t, "Europe", l.Continent.Value)
	assert.True(t, l.Continent.Clearable)
	assert.Len(t, l.Continent.Options, 3)
	assert.Equal(t, "Germany", l.Country.Value)

	require.Len(t, l.Graphs, 4)
	assert.Equal(t, "bar_line_1", l.Graphs[0].ID)
	assert.Equal(t, "heat", l.Graphs[3].ID)

	again, err := svc.Layout(context.Background())
	require.NoError(t, err)
	assert.Same(t, l, again)

	_, err = json.Marshal(l)
	require.NoError(t, err)
}

func TestLayout_ClampsDefaults(t *testing.T) {
	ds := domain.NewDataset([]domain.Record{
		rec("Oceania", "Australia", 2005, 10, 200),
		rec("Oceania", "Australia", 2007, 12, 190),
	})
	svc, _ := newService(t, ds)

	sel, err := svc.DefaultSelection()
	require.NoError(t, err)
	assert.Equal(t, domain.Selection{
		Continent: "Oceania",
		Country:   "Australia",
		Years:     domain.YearRange{Start: 2005, End: 2007},
	}, sel)

	l, err := svc.Layout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"2005": "2005"}, l.YearSlider.Marks)
}
