package outreach

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/goleads/internal/config"
	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/logger"
)

type stubSender struct {
	sent    []Message
	failFor string
}

func (s *stubSender) Send(_ context.Context, msg Message) error {
	if msg.To == s.failFor {
		return errors.New("mailbox unavailable")
	}
	s.sent = append(s.sent, msg)
	return nil
}

type memoryLog struct {
	entries []domain.OutreachEntry
	sent    map[string]bool
}

func newMemoryLog(sent ...string) *memoryLog {
	m := &memoryLog{sent: make(map[string]bool)}
	for _, addr := range sent {
		m.sent[addr] = true
	}
	return m
}

func (m *memoryLog) Append(_ context.Context, entry *domain.OutreachEntry) error {
	if entry.ID == "" {
		entry.ID = entry.Email
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryLog) MarkSent(_ context.Context, id string, _ time.Time) error {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries[i].Status = domain.OutreachSent
		}
	}
	return nil
}

func (m *memoryLog) MarkFailed(_ context.Context, id, deliveryErr string) error {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries[i].Status = domain.OutreachFailed
			m.entries[i].Error = deliveryErr
		}
	}
	return nil
}

func (m *memoryLog) SentEmails(context.Context) (map[string]bool, error) {
	return m.sent, nil
}

func testCampaign() *domain.Campaign {
	return &domain.Campaign{
		ID:      "camp-1",
		Name:    "jaro-2026",
		Subject: "Nabídka pro {{company}}",
		Body:    "Dobrý den,\nzaujala nás poptávka {{signal_title}}.",
	}
}

func TestRunnerRun_SendsAndLogs(t *testing.T) {
	sender := &stubSender{}
	outLog := newMemoryLog()
	runner := NewRunner(sender, outLog, logger.NewNopLogger())

	leads := []domain.Lead{
		{ID: "l1", CompanyName: "Moda Praha", Email: "obchod@modapraha.cz", Note: "Tvorba e-shopu"},
		{ID: "l2", CompanyName: "Bez Emailu s.r.o."},
	}

	report, err := runner.Run(context.Background(), testCampaign(), leads)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 1, report.Skipped)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "obchod@modapraha.cz", sender.sent[0].To)
	assert.Equal(t, "Nabídka pro Moda Praha", sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].Body, "Tvorba e-shopu")

	require.Len(t, outLog.entries, 1)
	assert.Equal(t, domain.OutreachSent, outLog.entries[0].Status)
}

func TestRunnerRun_SkipsContacted(t *testing.T) {
	sender := &stubSender{}
	outLog := newMemoryLog("obchod@modapraha.cz")
	runner := NewRunner(sender, outLog, logger.NewNopLogger())

	leads := []domain.Lead{
		// Address casing differs from the logged one.
		{ID: "l1", CompanyName: "Moda Praha", Email: "Obchod@ModaPraha.cz"},
	}

	report, err := runner.Run(context.Background(), testCampaign(), leads)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Sent)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, sender.sent)
}

func TestRunnerRun_RecordsFailures(t *testing.T) {
	sender := &stubSender{failFor: "dead@example.cz"}
	outLog := newMemoryLog()
	runner := NewRunner(sender, outLog, logger.NewNopLogger())

	leads := []domain.Lead{
		{ID: "l1", Email: "dead@example.cz"},
		{ID: "l2", CompanyName: "Kovo", Email: "info@kovo.cz"},
	}

	report, err := runner.Run(context.Background(), testCampaign(), leads)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 1, report.Failed)

	require.Len(t, outLog.entries, 2)
	assert.Equal(t, domain.OutreachFailed, outLog.entries[0].Status)
	assert.Equal(t, "mailbox unavailable", outLog.entries[0].Error)
	assert.Equal(t, domain.OutreachSent, outLog.entries[1].Status)
}

func TestRender_FallbackCompany(t *testing.T) {
	subject, body := Render(testCampaign(), &domain.Lead{Email: "x@y.cz"})

	assert.Equal(t, "Nabídka pro vaše firma", subject)
	assert.Contains(t, body, "zaujala nás poptávka")
}

func TestNewSenderDryRunWithoutHost(t *testing.T) {
	sender := NewSender(config.SMTPConfig{}, logger.NewNopLogger())

	_, ok := sender.(*logSender)
	assert.True(t, ok)
}
