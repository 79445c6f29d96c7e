package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/collector"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/metrics"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/notifier"
	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier posts run summaries to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// SendRunSummary announces a finished collection run.
func (s *Notifier) SendRunSummary(summary collector.Summary, dryRun bool) error {
	msg := s.formatRunSummary(summary)
	return s.sendMessage(msg, dryRun)
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) error {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return nil
}

// formatRunSummary creates the Slack message for a finished run using Block Kit.
func (s *Notifier) formatRunSummary(summary collector.Summary) slack.Message {
	blocks := make([]slack.Block, 0)

	headerLabel := "Collection run finished"
	if summary.Failed > 0 {
		headerLabel = "Collection run finished with failures"
	}
	headerText := slack.NewTextBlockObject("plain_text", headerLabel, false, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	countsText := fmt.Sprintf("Tasks: %d\nSucceeded: %d\nEmpty: %d\nFailed: %d",
		summary.Attempted,
		summary.Succeeded,
		summary.Empty,
		summary.Failed,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", countsText, false, false), nil, nil))

	detailsText := fmt.Sprintf("Records written: %d\nPairs skipped: %d\nDuration: %s",
		summary.RecordsWritten,
		summary.PairsSkipped,
		summary.Duration.Round(time.Second),
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, false, false), nil, nil))

	footer := slack.NewContextBlock(
		"",
		slack.NewTextBlockObject("plain_text", fmt.Sprintf("Run ID: %s", summary.RunID), false, false),
	)
	blocks = append(blocks, footer)

	return slack.NewBlockMessage(blocks...)
}
