package metadata

import (
	"errors"
	"sync"

	"github.com/aws/aws-sdk-go/aws/ec2metadata"
	"github.com/aws/aws-sdk-go/aws/session"
)

var (
	metadataLock        sync.Mutex
	metadataClient      *ec2metadata.EC2Metadata
	metadataClientError error
	region              string
)

func getMetadataClient() (*ec2metadata.EC2Metadata, error) {
	metadataLock.Lock()
	defer metadataLock.Unlock()
	return getMetadataClientLocked()
}

func getMetadataClientLocked() (*ec2metadata.EC2Metadata, error) {
	if metadataClient != nil {
		return metadataClient, nil
	}
	if metadataClientError != nil {
		return nil, metadataClientError
	}
	awsSession, err := session.NewSession()
	if err != nil {
		metadataClientError = err
		return nil, err
	}
	client := ec2metadata.New(awsSession)
	if !client.Available() {
		metadataClientError = errors.New(
			"not running on AWS or metadata is not available")
		return nil, metadataClientError
	}
	metadataClient = client
	return metadataClient, nil
}

func getRegion() (string, error) {
	metadataLock.Lock()
	defer metadataLock.Unlock()
	if region != "" {
		return region, nil
	}
	client, err := getMetadataClientLocked()
	if err != nil {
		return "", err
	}
	if region, err = client.Region(); err != nil {
		return "", err
	}
	return region, nil
}
