package portals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/logger"
)

const aaaListingFixture = `<html><body><ul>
<li class="poptavka-row">
	<a class="poptavka-title" href="/poptavka/55123-novy-web">Nový web pro autoservis</a>
	<span class="region">Jihomoravský kraj</span>
</li>
<li class="poptavka-row">
	<a class="poptavka-title" href="/poptavka/55200-marketing">Správa marketingových kampaní</a>
	<span class="region">Praha</span>
</li>
<li class="poptavka-row">
	<a class="poptavka-title" href=""></a>
</li>
</ul></body></html>`

const aaaDetailFixture = `<html><body>
<div class="poptavka-text">Potřebujeme nový web pro autoservis včetně
rezervačního systému.</div>
<span class="zadavatel">Autoservis Novák</span>
<p>Rozpočet: 120 000 Kč</p>
<p>Termín dodání: 30.9.2026</p>
<p>Kontakt: jan.novak@autoservis-novak.cz, tel. +420 777 123 456</p>
<p>IČO: 45317054</p>
</body></html>`

func TestAaapoptavkaParseListing(t *testing.T) {
	a := NewAaapoptavka(testFetcher(), logger.NewNopLogger())

	signals, err := a.parseListing([]byte(aaaListingFixture))
	require.NoError(t, err)
	require.Len(t, signals, 2)

	first := signals[0]
	assert.Equal(t, "aaapoptavka", first.SourceName)
	assert.Equal(t, "55123", first.ExternalID)
	assert.Equal(t, domain.SignalRFP, first.Type)
	assert.Equal(t, "Nový web pro autoservis", first.Title)
	assert.Equal(t, "https://www.aaapoptavka.cz/poptavka/55123-novy-web", first.URL)
	assert.Equal(t, "Jihomoravský kraj", first.Location)

	assert.Equal(t, "55200", signals[1].ExternalID)
}

func TestAaapoptavkaEnrichFromDetail(t *testing.T) {
	a := NewAaapoptavka(testFetcher(), logger.NewNopLogger())

	sig := domain.Signal{SourceName: "aaapoptavka", ExternalID: "55123"}
	a.enrichFromDetail(&sig, []byte(aaaDetailFixture))

	assert.Equal(t, int64(120_000), sig.ValueCZK)
	assert.Equal(t, "2026-09-30", sig.Deadline.Format("2006-01-02"))
	assert.Equal(t, "Potřebujeme nový web pro autoservis včetně rezervačního systému.", sig.Description)
	assert.Equal(t, "Autoservis Novák", sig.CompanyName)
	assert.Equal(t, "jan.novak@autoservis-novak.cz", sig.ContactEmail)
	assert.Equal(t, "+420777123456", sig.ContactPhone)
	assert.Equal(t, "45317054", sig.ICO)
}

func TestAaapoptavkaEnrichKeepsExistingCompany(t *testing.T) {
	a := NewAaapoptavka(testFetcher(), logger.NewNopLogger())

	sig := domain.Signal{CompanyName: "Původní zadavatel"}
	a.enrichFromDetail(&sig, []byte(aaaDetailFixture))

	assert.Equal(t, "Původní zadavatel", sig.CompanyName)
}
