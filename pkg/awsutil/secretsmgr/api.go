/*
Package secretsmgr fetches key/value secrets stored as JSON objects in AWS
Secrets Manager.
*/
package secretsmgr

import (
	"context"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
)

// GetAwsSecret fetches the secret using the specified session. If secretId is
// an ARN, the region of the ARN is used.
func GetAwsSecret(ctx context.Context, awsSession *session.Session,
	secretId string, logger log.DebugLogger) (map[string]string, error) {
	return getAwsSecret(ctx, awsSession, secretId, logger)
}

// GetSecret fetches the secret using an existing Secrets Manager client.
func GetSecret(ctx context.Context,
	awsService secretsmanageriface.SecretsManagerAPI, secretId string,
	logger log.DebugLogger) (map[string]string, error) {
	return getSecret(ctx, awsService, secretId, logger)
}

// Region returns the region in a secret ARN, or "" if secretId is not an ARN.
func Region(secretId string) string {
	return getRegion(secretId)
}
