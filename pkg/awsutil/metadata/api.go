package metadata

import (
	"github.com/aws/aws-sdk-go/aws/ec2metadata"
)

// GetMetadataClient returns a shared EC2 metadata client. An error is returned
// if not running on AWS.
func GetMetadataClient() (*ec2metadata.EC2Metadata, error) {
	return getMetadataClient()
}

// GetRegion returns the region of the running instance.
func GetRegion() (string, error) {
	return getRegion()
}
