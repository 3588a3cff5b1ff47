package portals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/logger"
)

const startupJobsFixture = `{
	"resultSet": [
		{
			"id": 48210,
			"name": "Backend Developer (Go)",
			"companyName": "Fintech Studio",
			"city": "Praha",
			"url": "https://www.startupjobs.cz/nabidka/48210/backend-developer-go",
			"tags": ["Go", "PostgreSQL", "Kubernetes"],
			"publishedAt": "2026-08-18T09:00:00+02:00"
		},
		{
			"id": 48355,
			"name": "Marketing Manager",
			"companyName": "Eshop Group",
			"city": "Brno",
			"tags": []
		},
		{
			"id": 0,
			"name": "Nabídka bez identifikátoru"
		}
	]
}`

func TestStartupJobsParseResponse(t *testing.T) {
	s := NewStartupJobs(testFetcher(), logger.NewNopLogger())

	signals, err := s.parseResponse([]byte(startupJobsFixture))
	require.NoError(t, err)
	require.Len(t, signals, 2)

	first := signals[0]
	assert.Equal(t, "startupjobs", first.SourceName)
	assert.Equal(t, "48210", first.ExternalID)
	assert.Equal(t, domain.SignalHiring, first.Type)
	assert.Equal(t, "Backend Developer (Go)", first.Title)
	assert.Equal(t, "Technologie: Go, PostgreSQL, Kubernetes", first.Description)
	assert.Equal(t, "https://www.startupjobs.cz/nabidka/48210/backend-developer-go", first.URL)
	assert.Equal(t, "Praha", first.Location)
	assert.Equal(t, "Fintech Studio", first.CompanyName)
	assert.Equal(t, "2026-08-18", first.PublishedAt.Format("2006-01-02"))

	second := signals[1]
	assert.Equal(t, "48355", second.ExternalID)
	assert.Empty(t, second.Description)
	assert.Equal(t, "https://www.startupjobs.cz/nabidka/48355", second.URL)
	assert.True(t, second.PublishedAt.IsZero())
}

func TestStartupJobsParseResponseBadJSON(t *testing.T) {
	s := NewStartupJobs(testFetcher(), logger.NewNopLogger())

	_, err := s.parseResponse([]byte(`not json`))
	assert.Error(t, err)
}
