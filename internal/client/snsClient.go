package client

import (
	"context"
	"fmt"
	"log"
	"najia-backend/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sns"
)

// SMSSender delivers OTP codes. Backed by AWS SNS in deployment; the log
// sender is used in development where no AWS credentials exist.
type SMSSender interface {
	SendSMS(ctx context.Context, phoneNumber, message string) error
}

type snsSenderImpl struct {
	sns      *sns.SNS
	senderID string
}

func NewSNSSender(cfg *config.AWS) (SMSSender, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	return &snsSenderImpl{
		sns:      sns.New(sess),
		senderID: cfg.SNSSenderID,
	}, nil
}

func (s *snsSenderImpl) SendSMS(ctx context.Context, phoneNumber, message string) error {
	_, err := s.sns.PublishWithContext(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(phoneNumber),
		Message:     aws.String(message),
		MessageAttributes: map[string]*sns.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(s.senderID),
			},
			"AWS.SNS.SMS.SMSType": {
				DataType:    aws.String("String"),
				StringValue: aws.String("Transactional"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}

type logSMSSender struct{}

// NewLogSMSSender returns a sender that only logs, for local development.
func NewLogSMSSender() SMSSender {
	return &logSMSSender{}
}

func (s *logSMSSender) SendSMS(_ context.Context, phoneNumber, message string) error {
	log.Printf("[dev sms] to=%s message=%q", phoneNumber, message)
	return nil
}
