// Package cloud wraps the AWS clients used when USE_CLOUD_SERVICES is on.
package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSClient wraps AWS SNS client for notification operations
type SNSClient struct {
	svc      *sns.Client
	topicArn string
}

// NewSNSClient creates a new SNS client instance
func NewSNSClient(region, topicArn string) (*SNSClient, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &SNSClient{
		svc:      sns.NewFromConfig(cfg),
		topicArn: topicArn,
	}, nil
}

// SendAlert sends an alert notification via SNS
func (c *SNSClient) SendAlert(ctx context.Context, subject, message string) error {
	input := &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	}

	if _, err := c.svc.Publish(ctx, input); err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}
	return nil
}

// SendOverPowerAlert notifies that a plug reported a power sample above
// the configured threshold.
func (c *SNSClient) SendOverPowerAlert(ctx context.Context, deviceID string, power, threshold float64) error {
	subject := fmt.Sprintf("Smart Plug Alert: High Power Draw on %s", deviceID)
	message := fmt.Sprintf(
		"Over-Power Alert\n\n"+
			"Device: %s\n"+
			"Power: %.2f W\n"+
			"Threshold: %.2f W\n"+
			"Time: %s\n\n"+
			"Please check the connected load.",
		deviceID,
		power,
		threshold,
		time.Now().Format(time.RFC3339),
	)

	return c.SendAlert(ctx, subject, message)
}
