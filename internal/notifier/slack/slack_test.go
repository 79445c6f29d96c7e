package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/collector"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/metrics"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func testSummary() collector.Summary {
	return collector.Summary{
		RunID:          "run-abc",
		Attempted:      120,
		Succeeded:      100,
		Empty:          15,
		Failed:         5,
		RecordsWritten: 4200,
		PairsSkipped:   30,
		Duration:       90 * time.Second,
	}
}

func TestSendRunSummary_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	err := notifier.SendRunSummary(testSummary(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.NotifSent())
}

func TestSendRunSummary_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.SendRunSummary(testSummary(), false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.NotifSent())
	assert.Equal(t, 0, metrics.NotifFailed())
}

func TestSendRunSummary_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.SendRunSummary(testSummary(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.NotifSent())
	assert.Equal(t, 1, metrics.NotifFailed())
}

func TestFormatRunSummary(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	msg := client.formatRunSummary(testSummary())
	require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "Expected first block to be a HeaderBlock")
	assert.Equal(t, "Collection run finished with failures", header.Text.Text)

	counts, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok, "Expected second block to be a SectionBlock")
	assert.Contains(t, counts.Text.Text, "Succeeded: 100")
	assert.Contains(t, counts.Text.Text, "Failed: 5")

	details, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok, "Expected third block to be a SectionBlock")
	assert.Contains(t, details.Text.Text, "Records written: 4200")
}

func TestFormatRunSummary_CleanRun(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	summary := testSummary()
	summary.Failed = 0

	msg := client.formatRunSummary(summary)
	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, "Collection run finished", header.Text.Text)
}
