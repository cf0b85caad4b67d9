// Package eip collects allocated Elastic IP addresses region by region and
// converts them into internal models. It performs no classification; that is
// the classify package's job.
package eip

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2svc "github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/opsaudit/eipaudit/internal/models"
)

// Collector fetches all allocated Elastic IPs for one region.
// Implementations must use the AWS SDK v2 only and must not retry: a failed
// region query is the caller's signal to skip that region.
type Collector interface {
	// CollectRegion lists every address allocated in the region that cfg is
	// scoped to. The returned slice preserves DescribeAddresses order.
	CollectRegion(ctx context.Context, cfg aws.Config, region string) ([]models.ElasticIP, error)
}

// DefaultCollector is the production implementation of Collector.
//
// Inject a custom addressClientFactory via NewDefaultCollectorWithFactory to
// replace the real SDK client with a mock in unit tests.
type DefaultCollector struct {
	factory addressClientFactory
}

// NewDefaultCollector returns a collector backed by the real AWS SDK.
func NewDefaultCollector() *DefaultCollector {
	return &DefaultCollector{factory: newDefaultAddressClient}
}

// NewDefaultCollectorWithFactory returns a collector that uses f to create
// its EC2 client. Pass a mock factory in tests.
func NewDefaultCollectorWithFactory(f addressClientFactory) *DefaultCollector {
	return &DefaultCollector{factory: f}
}

// CollectRegion implements Collector. A fresh client is built from cfg on
// every call so concurrent per-region scans share no client state.
//
// DescribeAddresses is not paginated; one call returns every address in the
// region.
func (d *DefaultCollector) CollectRegion(ctx context.Context, cfg aws.Config, region string) ([]models.ElasticIP, error) {
	client := d.factory(cfg)

	out, err := client.DescribeAddresses(ctx, &ec2svc.DescribeAddressesInput{})
	if err != nil {
		return nil, fmt.Errorf("DescribeAddresses in %s: %w", region, err)
	}

	addrs := make([]models.ElasticIP, 0, len(out.Addresses))
	for _, addr := range out.Addresses {
		addrs = append(addrs, toElasticIP(addr, region))
	}
	return addrs, nil
}

// toElasticIP converts an SDK address to the internal model. Optional fields
// stay empty strings when the SDK returns nil pointers.
func toElasticIP(addr ec2types.Address, region string) models.ElasticIP {
	return models.ElasticIP{
		PublicIP:           aws.ToString(addr.PublicIp),
		AllocationID:       aws.ToString(addr.AllocationId),
		AssociationID:      aws.ToString(addr.AssociationId),
		InstanceID:         aws.ToString(addr.InstanceId),
		NetworkInterfaceID: aws.ToString(addr.NetworkInterfaceId),
		Region:             region,
	}
}
