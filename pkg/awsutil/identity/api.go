/*
Package identity reports the AWS identity that the running process acts as.
*/
package identity

import (
	"context"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type Identity struct {
	Account string
	Arn     arn.ARN
	RoleArn arn.ARN // Zero value if not using an assumed role.
	UserId  string
}

// StsClient is the subset of *sts.Client which is used.
type StsClient interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput,
		optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Get returns the caller identity. If client is nil a client is created from
// the default configuration.
func Get(ctx context.Context, client StsClient) (Identity, error) {
	return getIdentity(ctx, client)
}

// NewClient creates an STS client from the default configuration, using the
// shared configuration profile if not empty.
func NewClient(ctx context.Context, profile string) (*sts.Client, error) {
	return newClient(ctx, profile)
}

// Log logs the caller identity. Failures are logged and otherwise ignored.
func Log(ctx context.Context, client StsClient, logger log.DebugLogger) {
	logIdentity(ctx, client, logger)
}

// NormaliseARN will normalise an AWS IAM ARN (i.e. an ARN returned from
// sts:GetCallerIdentity), returning the actual role ARN, rather than an ARN
// showing how the credentials were obtained (such as by assuming the role).
// The ARN will have the form: arn:aws:iam::$AccountId:role/$RoleName
func NormaliseARN(input arn.ARN) (arn.ARN, error) {
	return normaliseARN(input)
}

func (i Identity) String() string {
	if i.RoleArn.Resource != "" {
		return i.RoleArn.String()
	}
	return i.Arn.String()
}
