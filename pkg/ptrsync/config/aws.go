package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/ptrsync/pkg/awsutil/secretsmgr"
	"github.com/Cloud-Foundations/ptrsync/pkg/dns"
	"github.com/Cloud-Foundations/ptrsync/pkg/dns/route53"
	"github.com/Cloud-Foundations/ptrsync/pkg/ptrsync"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials/stscreds"
	"github.com/aws/aws-sdk-go/aws/session"
)

func awsCreateSession(config *Config) (*session.Session, error) {
	var awsSession *session.Session
	var err error
	awsConfig := aws.Config{Region: aws.String(config.region())}
	if config.MaxRetries > 0 {
		awsConfig.MaxRetries = aws.Int(config.MaxRetries)
	}
	if config.AwsProfile == "" {
		awsSession, err = session.NewSession(&awsConfig)
	} else {
		awsSession, err = session.NewSessionWithOptions(session.Options{
			Config:  awsConfig,
			Profile: config.AwsProfile,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("error creating session: %s", err)
	}
	if awsSession == nil {
		return nil, errors.New("awsSession == nil")
	}
	if config.AwsAssumeRoleArn == "" {
		return awsSession, nil
	}
	awsConfig.Credentials = stscreds.NewCredentials(awsSession,
		config.AwsAssumeRoleArn)
	assumedSession, err := session.NewSession(&awsConfig)
	if err != nil {
		return nil, fmt.Errorf("error creating assumed role session: %s", err)
	}
	if assumedSession == nil {
		return nil, errors.New("assumedSession == nil")
	}
	return assumedSession, nil
}

func newAwsProviderFactory(config Config, logger log.DebugLogger) (
	ptrsync.ProviderFactory, error) {
	config.setDefaults()
	awsSession, err := awsCreateSession(&config)
	if err != nil {
		return nil, err
	}
	routeParams := route53.Params{
		CallTimeout: config.CallTimeout,
		Logger:      logger,
	}
	return func(scope ptrsync.Scope) (dns.Provider, error) {
		if scope.Region == "" {
			return route53.New(awsSession, routeParams), nil
		}
		logger.Debugf(1, "creating Route 53 client for region: %s\n",
			scope.Region)
		regionSession := awsSession.Copy(&aws.Config{
			Region: aws.String(scope.Region),
		})
		return route53.New(regionSession, routeParams), nil
	}, nil
}

func (c *Config) applySecret(ctx context.Context, secretId string,
	logger log.DebugLogger) error {
	awsSession, err := awsCreateSession(c)
	if err != nil {
		return err
	}
	variables, err := secretsmgr.GetAwsSecret(ctx, awsSession, secretId,
		logger)
	if err != nil {
		return err
	}
	if err := c.ApplyVariables(variables); err != nil {
		return fmt.Errorf("secret: %s: %s", secretId, err)
	}
	logger.Debugf(0, "applied configuration from secret: %s\n", secretId)
	return nil
}
