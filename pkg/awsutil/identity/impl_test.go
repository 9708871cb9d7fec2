package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/Cloud-Foundations/Dominator/lib/log/testlogger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSts struct {
	arn string
	err error
}

func (f fakeSts) GetCallerIdentity(ctx context.Context,
	params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (
	*sts.GetCallerIdentityOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &sts.GetCallerIdentityOutput{
		Account: aws.String("123456789012"),
		Arn:     aws.String(f.arn),
		UserId:  aws.String("AROAEXAMPLE:ptrsync"),
	}, nil
}

func TestAssumedRole(t *testing.T) {
	identity, err := Get(context.Background(), fakeSts{
		arn: "arn:aws:sts::123456789012:assumed-role/ptrsync/session",
	})
	require.NoError(t, err)
	assert.Equal(t, "123456789012", identity.Account)
	assert.Equal(t, "arn:aws:iam::123456789012:role/ptrsync", identity.String())
}

func TestUser(t *testing.T) {
	identity, err := Get(context.Background(), fakeSts{
		arn: "arn:aws:iam::123456789012:user/operator",
	})
	require.NoError(t, err)
	assert.Equal(t, "", identity.RoleArn.Resource)
	assert.Equal(t, "arn:aws:iam::123456789012:user/operator",
		identity.String())
}

func TestErrors(t *testing.T) {
	_, err := Get(context.Background(), fakeSts{err: errors.New("denied")})
	assert.Error(t, err)
	_, err = Get(context.Background(), fakeSts{arn: "not-an-arn"})
	assert.Error(t, err)
	Log(context.Background(), fakeSts{err: errors.New("denied")},
		testlogger.New(t))
}

func TestNormaliseARN(t *testing.T) {
	tests := []struct {
		input   arn.ARN
		wantErr bool
	}{
		{arn.ARN{Service: "iam", Resource: "no-slashes"}, true},
		{arn.ARN{Service: "iam", Resource: "role/aRole"}, true},
		{arn.ARN{Service: "ec2", Resource: "assumed-role/SomeRole"}, true},
		{arn.ARN{Service: "iam", Resource: "assumed-role/SomeRole"}, false},
		{arn.ARN{Service: "sts", Resource: "assumed-role/SomeRole/aUser"},
			false},
	}
	for _, test := range tests {
		output, err := NormaliseARN(test.input)
		if test.wantErr {
			assert.Error(t, err, test.input.String())
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, "role/SomeRole", output.Resource)
		assert.Equal(t, "iam", output.Service)
	}
}
