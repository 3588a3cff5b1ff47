package portals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/logger"
)

const vestnikTableFixture = `<html><body>
<table id="SearchGrid">
<thead>
<tr><th>Číslo</th><th>Název</th><th>Zadavatel</th><th>Hodnota</th><th>Lhůta</th></tr>
</thead>
<tbody>
<tr>
	<td>Z2026-031234</td>
	<td><a href="/Form/Display/123456">Modernizace webových stránek města</a></td>
	<td>Město Kolín</td>
	<td>1 800 000 Kč</td>
	<td>12. 10. 2026</td>
</tr>
<tr>
	<td>Z2026-031299</td>
	<td><a href="/Form/Display/123499">Dodávka IT služeb</a></td>
	<td>Ministerstvo financí</td>
	<td>neuvedeno</td>
	<td></td>
</tr>
<tr>
	<td></td>
	<td>Řádek bez čísla</td>
	<td>X</td>
	<td>Y</td>
	<td>Z</td>
</tr>
<tr>
	<td colspan="5">Zkrácený řádek</td>
</tr>
</tbody>
</table>
</body></html>`

func TestVestnikParseTable(t *testing.T) {
	v := NewVestnik(testFetcher(), logger.NewNopLogger())

	signals, err := v.parseTable([]byte(vestnikTableFixture))
	require.NoError(t, err)
	require.Len(t, signals, 2)

	first := signals[0]
	assert.Equal(t, "vestnik", first.SourceName)
	assert.Equal(t, "Z2026-031234", first.ExternalID)
	assert.Equal(t, domain.SignalTender, first.Type)
	assert.Equal(t, "Modernizace webových stránek města", first.Title)
	assert.Equal(t, "https://vestnikverejnychzakazek.cz/Form/Display/123456", first.URL)
	assert.Equal(t, "Město Kolín", first.CompanyName)
	assert.Equal(t, int64(1_800_000), first.ValueCZK)
	assert.Equal(t, "2026-10-12", first.Deadline.Format("2006-01-02"))

	second := signals[1]
	assert.Equal(t, "Z2026-031299", second.ExternalID)
	assert.Zero(t, second.ValueCZK)
	assert.True(t, second.Deadline.IsZero())
}

func TestVestnikParseTableNoGrid(t *testing.T) {
	v := NewVestnik(testFetcher(), logger.NewNopLogger())

	signals, err := v.parseTable([]byte(`<html><body><p>Nenalezeny žádné formuláře.</p></body></html>`))
	require.NoError(t, err)
	assert.Empty(t, signals)
}
