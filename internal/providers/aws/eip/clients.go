package eip

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2svc "github.com/aws/aws-sdk-go-v2/service/ec2"
)

// addressClient covers the single EC2 operation the collector needs.
// The real *ec2.Client satisfies it automatically; tests substitute a stub.
type addressClient interface {
	DescribeAddresses(
		ctx context.Context,
		params *ec2svc.DescribeAddressesInput,
		optFns ...func(*ec2svc.Options),
	) (*ec2svc.DescribeAddressesOutput, error)
}

// addressClientFactory creates an addressClient from a region-scoped
// aws.Config. Swap this in tests to inject a mock.
type addressClientFactory func(cfg aws.Config) addressClient

// newDefaultAddressClient is the production addressClientFactory.
func newDefaultAddressClient(cfg aws.Config) addressClient {
	return ec2svc.NewFromConfig(cfg)
}
