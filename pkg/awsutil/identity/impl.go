package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

func newClient(ctx context.Context, profile string) (*sts.Client, error) {
	optFns := []func(*config.LoadOptions) error{config.WithEC2IMDSRegion()}
	if profile != "" {
		optFns = append(optFns, config.WithSharedConfigProfile(profile))
	}
	awsConfig, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, err
	}
	return sts.NewFromConfig(awsConfig), nil
}

func getIdentity(ctx context.Context, client StsClient) (Identity, error) {
	if client == nil {
		stsClient, err := newClient(ctx, "")
		if err != nil {
			return Identity{}, err
		}
		client = stsClient
	}
	output, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Identity{}, fmt.Errorf("error calling sts:GetCallerIdentity: %s",
			err)
	}
	if output.Arn == nil {
		return Identity{}, errors.New("no ARN in caller identity")
	}
	parsedArn, err := arn.Parse(*output.Arn)
	if err != nil {
		return Identity{}, err
	}
	identity := Identity{
		Account: aws.ToString(output.Account),
		Arn:     parsedArn,
		UserId:  aws.ToString(output.UserId),
	}
	if roleArn, err := normaliseARN(parsedArn); err == nil {
		identity.RoleArn = roleArn
	}
	return identity, nil
}

func logIdentity(ctx context.Context, client StsClient,
	logger log.DebugLogger) {
	identity, err := getIdentity(ctx, client)
	if err != nil {
		logger.Printf("unable to determine caller identity: %s\n", err)
		return
	}
	logger.Printf("Account: %s, ARN: %s, Identity: %s\n",
		identity.Account, identity.Arn, identity)
	logger.Debugf(1, "UserId: %s\n", identity.UserId)
}

func normaliseARN(input arn.ARN) (arn.ARN, error) {
	switch input.Service {
	case "iam", "sts":
	default:
		return arn.ARN{}, fmt.Errorf("unsupported service: %s", input.Service)
	}
	splitResource := strings.Split(input.Resource, "/")
	if len(splitResource) < 2 || splitResource[0] != "assumed-role" {
		return arn.ARN{}, fmt.Errorf("invalid resource: %s", input.Resource)
	}
	return arn.ARN{
		Partition: input.Partition,
		Service:   "iam",
		AccountID: input.AccountID,
		Resource:  "role/" + splitResource[1],
	}, nil
}
