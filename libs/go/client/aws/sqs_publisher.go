package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/cenkalti/backoff/v4"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"go.uber.org/zap"
)

// SQSAPI is the part of the SQS client the publisher uses
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// RetryConfig controls how a failed send is retried
type RetryConfig struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryConfig is used when NewSQSEventPublisher is given a zero config
var DefaultRetryConfig = RetryConfig{
	MaxRetries:      3,
	InitialInterval: 100 * time.Millisecond,
	MaxInterval:     2 * time.Second,
	MaxElapsedTime:  10 * time.Second,
}

// SQSEventPublisher hands discount events to the accounting bridge queue
type SQSEventPublisher struct {
	client   SQSAPI
	queueURL string
	retry    RetryConfig
	logger   *zap.Logger
}

// NewSQSEventPublisher creates a publisher for queueURL
func NewSQSEventPublisher(client SQSAPI, queueURL string, retry RetryConfig, logger *zap.Logger) *SQSEventPublisher {
	if retry.MaxRetries == 0 && retry.InitialInterval == 0 {
		retry = DefaultRetryConfig
	}
	return &SQSEventPublisher{
		client:   client,
		queueURL: queueURL,
		retry:    retry,
		logger:   logger,
	}
}

// Publish sends the event, retrying transient failures with exponential backoff.
// Messages are grouped per transaction so a FIFO queue keeps their order.
func (p *SQSEventPublisher) Publish(ctx context.Context, event business.DiscountEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal discount event: %w", err)
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"EventType": {
				StringValue: aws.String(event.EventType),
				DataType:    aws.String("String"),
			},
			"WorkspaceID": {
				StringValue: aws.String(event.WorkspaceID.String()),
				DataType:    aws.String("String"),
			},
		},
	}
	if isFIFOQueue(p.queueURL) {
		input.MessageGroupId = aws.String(event.WorkspaceID.String() + ":" + event.TransactionType + ":" + event.TransactionID)
		input.MessageDeduplicationId = aws.String(event.EventID.String())
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = p.retry.InitialInterval
	expBackoff.MaxInterval = p.retry.MaxInterval
	expBackoff.MaxElapsedTime = p.retry.MaxElapsedTime

	attempt := 0
	operation := func() error {
		attempt++
		_, sendErr := p.client.SendMessage(ctx, input)
		if sendErr != nil {
			p.logger.Warn("SQS send failed",
				zap.String("event_id", event.EventID.String()),
				zap.Int("attempt", attempt),
				zap.Error(sendErr))
		}
		return sendErr
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(expBackoff, p.retry.MaxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	p.logger.Debug("Discount event queued",
		zap.String("event_id", event.EventID.String()),
		zap.String("event_type", event.EventType),
		zap.Int("attempts", attempt))
	return nil
}

func isFIFOQueue(url string) bool {
	return strings.HasSuffix(url, ".fifo")
}
