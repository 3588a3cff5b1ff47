package portals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/logger"
)

const epoptavkaListingFixture = `<html><body>
<div class="demand-item">
	<h2><a href="/poptavka/123456-tvorba-eshopu">Tvorba e-shopu na míru</a></h2>
	<p class="demand-description">Hledáme dodavatele pro vývoj nového e-shopu.</p>
	<span class="demand-region">Praha</span>
	<span class="demand-budget">250 000 Kč</span>
	<span class="demand-deadline">15. 9. 2026</span>
</div>
<div class="demand-item">
	<h3><a href="/poptavka/123789-redesign-webu">Redesign firemního webu</a></h3>
	<p class="demand-description">Kompletní redesign prezentace.</p>
	<span class="demand-region">Brno</span>
</div>
<div class="demand-item">
	<h2><a href="/poptavka/999111-bez-nazvu"></a></h2>
</div>
</body></html>`

func TestEpoptavkaParseListing(t *testing.T) {
	e := NewEpoptavka(testFetcher(), logger.NewNopLogger())

	signals, err := e.parseListing([]byte(epoptavkaListingFixture))
	require.NoError(t, err)
	require.Len(t, signals, 2)

	first := signals[0]
	assert.Equal(t, "epoptavka", first.SourceName)
	assert.Equal(t, "123456", first.ExternalID)
	assert.Equal(t, domain.SignalRFP, first.Type)
	assert.Equal(t, "Tvorba e-shopu na míru", first.Title)
	assert.Equal(t, "Hledáme dodavatele pro vývoj nového e-shopu.", first.Description)
	assert.Equal(t, "https://www.epoptavka.cz/poptavka/123456-tvorba-eshopu", first.URL)
	assert.Equal(t, "Praha", first.Location)
	assert.Equal(t, int64(250_000), first.ValueCZK)
	assert.Equal(t, "2026-09-15", first.Deadline.Format("2006-01-02"))
	assert.False(t, first.HarvestedAt.IsZero())

	second := signals[1]
	assert.Equal(t, "123789", second.ExternalID)
	assert.Equal(t, "Redesign firemního webu", second.Title)
	assert.Equal(t, "Brno", second.Location)
	assert.Zero(t, second.ValueCZK)
	assert.True(t, second.Deadline.IsZero())
}

func TestEpoptavkaParseListingEmptyPage(t *testing.T) {
	e := NewEpoptavka(testFetcher(), logger.NewNopLogger())

	signals, err := e.parseListing([]byte(`<html><body><p>Žádné poptávky.</p></body></html>`))
	require.NoError(t, err)
	assert.Empty(t, signals)
}
