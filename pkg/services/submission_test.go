package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sharma12321/SreeHari-Portfolio/pkg/clients/ipapi"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/clients/ipapico"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/metrics"
)

type pipelineFixture struct {
	geo      *MockGeolocationClient
	rep      *MockReputationClient
	telegram *MockTelegramClient
	metrics  *metrics.Metrics
	service  ContactSubmissionService
}

func newPipelineFixture() *pipelineFixture {
	f := &pipelineFixture{
		geo:      &MockGeolocationClient{},
		rep:      &MockReputationClient{},
		telegram: &MockTelegramClient{},
		metrics:  newTestMetrics(),
	}
	f.service = NewContactSubmissionService(
		NewGeolocationResolver(f.geo, nopLogger, f.metrics),
		NewRiskHeuristic(f.rep, nopLogger, f.metrics),
		f.telegram,
		f.metrics,
		nopLogger,
		func() time.Time { return submittedAt },
	)
	return f
}

// captureMessages records every text handed to Telegram
func (f *pipelineFixture) captureMessages(err error) *[]string {
	var sent []string
	f.telegram.On("SendMessage", mock.Anything, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sent = append(sent, args.String(1)) }).
		Return(err)
	return &sent
}

func TestSubmitValidationShortCircuits(t *testing.T) {
	f := newPipelineFixture()
	sub := validSubmission()
	sub.Email = ""

	err := f.service.Submit(context.Background(), sub)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"email"}, vErr.Fields)
	f.geo.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	f.rep.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	f.telegram.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Submissions.WithLabelValues(metrics.OutcomeInvalid)))
}

func TestSubmitHappyPath(t *testing.T) {
	f := newPipelineFixture()
	f.geo.On("Lookup", mock.Anything, "203.0.113.9").Return(&ipapi.Location{
		Status: "success", City: "Bengaluru", RegionName: "Karnataka", Country: "India",
		ISP: "Bharti Airtel", Org: "Airtel Broadband", Timezone: "Asia/Kolkata",
	}, nil)
	f.rep.On("Lookup", mock.Anything, "203.0.113.9").Return(&ipapico.IPInfo{Org: "Comcast Cable"}, nil)
	sent := f.captureMessages(nil)

	sub := validSubmission()
	sub.Name = "<script>"

	require.NoError(t, f.service.Submit(context.Background(), sub))

	require.Len(t, *sent, 1)
	msg := (*sent)[0]
	assert.Contains(t, msg, "• Name: &lt;script&gt;\n")
	assert.Contains(t, msg, "• City: Bengaluru\n")
	assert.Contains(t, msg, "• Threat Score: 0/100\n")
	assert.Contains(t, msg, "at 3:30:00 PM IST")
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Submissions.WithLabelValues(metrics.OutcomeSuccess)))
	f.geo.AssertExpectations(t)
	f.rep.AssertExpectations(t)
}

func TestSubmitGeolocationFailureStillDelivers(t *testing.T) {
	f := newPipelineFixture()
	f.geo.On("Lookup", mock.Anything, "203.0.113.9").Return(nil, errors.New("dial tcp: i/o timeout"))
	f.rep.On("Lookup", mock.Anything, "203.0.113.9").Return(&ipapico.IPInfo{Org: "VPN Provider Inc."}, nil)
	sent := f.captureMessages(nil)

	require.NoError(t, f.service.Submit(context.Background(), validSubmission()))

	require.Len(t, *sent, 1)
	msg := (*sent)[0]
	assert.Contains(t, msg, "• City: Unknown\n• Region: Unknown\n• Country: Unknown\n• ISP: Unknown\n")
	assert.Contains(t, msg, "• Timestamp: Thursday, October 15, 2026 at 10:00:00 AM UTC\n")
	assert.Contains(t, msg, "• Timezone: UTC\n")
	assert.Contains(t, msg, "• VPN/Proxy Detection: ⚠️ Detected\n")
	assert.Contains(t, msg, "• Threat Score: 50/100\n")
}

func TestSubmitDispatchFailure(t *testing.T) {
	f := newPipelineFixture()
	f.geo.On("Lookup", mock.Anything, mock.Anything).Return(nil, errors.New("down"))
	f.rep.On("Lookup", mock.Anything, mock.Anything).Return(nil, errors.New("down"))
	f.captureMessages(errors.New("telegram API error (status 400): Bad Request: chat not found"))

	err := f.service.Submit(context.Background(), validSubmission())

	var dErr *DispatchError
	require.True(t, errors.As(err, &dErr))
	assert.Contains(t, err.Error(), "chat not found")
	f.geo.AssertNumberOfCalls(t, "Lookup", 1)
	f.rep.AssertNumberOfCalls(t, "Lookup", 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Submissions.WithLabelValues(metrics.OutcomeDispatchFailed)))
}

func TestSubmitIdenticalPayloadsAreNotDeduplicated(t *testing.T) {
	f := newPipelineFixture()
	f.geo.On("Lookup", mock.Anything, mock.Anything).Return(nil, errors.New("down"))
	f.rep.On("Lookup", mock.Anything, mock.Anything).Return(nil, errors.New("down"))
	sent := f.captureMessages(nil)

	require.NoError(t, f.service.Submit(context.Background(), validSubmission()))
	require.NoError(t, f.service.Submit(context.Background(), validSubmission()))

	assert.Len(t, *sent, 2)
	f.telegram.AssertNumberOfCalls(t, "SendMessage", 2)
}

func TestSubmitDerivesMissingBrowserName(t *testing.T) {
	f := newPipelineFixture()
	f.geo.On("Lookup", mock.Anything, mock.Anything).Return(nil, errors.New("down"))
	f.rep.On("Lookup", mock.Anything, mock.Anything).Return(nil, errors.New("down"))
	sent := f.captureMessages(nil)

	sub := validSubmission()
	sub.DeviceInfo.BrowserName = ""

	require.NoError(t, f.service.Submit(context.Background(), sub))

	assert.Contains(t, (*sent)[0], "• Browser: Firefox\n")
	assert.Empty(t, sub.DeviceInfo.BrowserName, "caller's bundle is not modified")
}

func TestSubmitMissingIPDegradesBothLookups(t *testing.T) {
	f := newPipelineFixture()
	f.geo.On("Lookup", mock.Anything, "").Return(nil, errors.New("no IP address to look up"))
	f.rep.On("Lookup", mock.Anything, "").Return(nil, errors.New("no IP address to look up"))
	sent := f.captureMessages(nil)

	sub := validSubmission()
	sub.DeviceInfo.IP = nil

	require.NoError(t, f.service.Submit(context.Background(), sub))

	assert.Contains(t, (*sent)[0], "• IP Address: N/A\n")
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.DegradedLookups.WithLabelValues(metrics.LookupGeolocation)))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.DegradedLookups.WithLabelValues(metrics.LookupReputation)))
}

func TestSubmitRunsLookupsConcurrently(t *testing.T) {
	f := newPipelineFixture()

	// each lookup waits for the other to start; a sequential pipeline times out
	var started sync.WaitGroup
	started.Add(2)
	both := make(chan struct{})
	go func() {
		started.Wait()
		close(both)
	}()
	var timedOut atomic.Bool
	rendezvous := func(mock.Arguments) {
		started.Done()
		select {
		case <-both:
		case <-time.After(2 * time.Second):
			timedOut.Store(true)
		}
	}

	f.geo.On("Lookup", mock.Anything, mock.Anything).Run(rendezvous).Return(nil, errors.New("down"))
	f.rep.On("Lookup", mock.Anything, mock.Anything).Run(rendezvous).Return(nil, errors.New("down"))
	f.captureMessages(nil)

	require.NoError(t, f.service.Submit(context.Background(), validSubmission()))

	assert.False(t, timedOut.Load(), "lookups did not overlap")
}
