package secretsmgr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/arn"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
)

func getAwsSecret(ctx context.Context, awsSession *session.Session,
	secretId string, logger log.DebugLogger) (map[string]string, error) {
	if region := getRegion(secretId); region != "" {
		awsSession = awsSession.Copy(&aws.Config{Region: aws.String(region)})
	}
	return getSecret(ctx, secretsmanager.New(awsSession), secretId, logger)
}

func getSecret(ctx context.Context,
	awsService secretsmanageriface.SecretsManagerAPI, secretId string,
	logger log.DebugLogger) (map[string]string, error) {
	input := secretsmanager.GetSecretValueInput{SecretId: aws.String(secretId)}
	output, err := awsService.GetSecretValueWithContext(ctx, &input)
	if err != nil {
		return nil,
			fmt.Errorf("error calling secretsmanager:GetSecretValue: %s", err)
	}
	if output.SecretString == nil {
		return nil, errors.New("no SecretString in secret")
	}
	var secrets map[string]string
	if err := json.Unmarshal([]byte(*output.SecretString), &secrets); err != nil {
		return nil, fmt.Errorf("error unmarshaling secret: %s", err)
	}
	logger.Debugf(1, "fetched AWS Secret: %s\n", secretId)
	return secrets, nil
}

func getRegion(secretId string) string {
	if parsed, err := arn.Parse(secretId); err == nil {
		return parsed.Region
	}
	return ""
}
