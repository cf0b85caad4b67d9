package eip

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2svc "github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// stubAddressClient satisfies addressClient with canned data.
type stubAddressClient struct {
	out *ec2svc.DescribeAddressesOutput
	err error
}

func (s *stubAddressClient) DescribeAddresses(
	ctx context.Context,
	params *ec2svc.DescribeAddressesInput,
	optFns ...func(*ec2svc.Options),
) (*ec2svc.DescribeAddressesOutput, error) {
	return s.out, s.err
}

func collectorWith(stub *stubAddressClient) *DefaultCollector {
	return NewDefaultCollectorWithFactory(func(cfg aws.Config) addressClient { return stub })
}

func TestCollectRegion_ConvertsAddresses(t *testing.T) {
	stub := &stubAddressClient{
		out: &ec2svc.DescribeAddressesOutput{
			Addresses: []ec2types.Address{
				{
					PublicIp:           aws.String("203.0.113.1"),
					AllocationId:       aws.String("eipalloc-1"),
					AssociationId:      aws.String("eipassoc-1"),
					InstanceId:         aws.String("i-1"),
					NetworkInterfaceId: aws.String("eni-1"),
				},
				{
					// Legacy address: no allocation ID, no bindings.
					PublicIp: aws.String("203.0.113.2"),
				},
			},
		},
	}

	addrs, err := collectorWith(stub).CollectRegion(context.Background(), aws.Config{}, "eu-west-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(addrs) != 2 {
		t.Fatalf("len = %d; want 2", len(addrs))
	}

	first := addrs[0]
	if first.PublicIP != "203.0.113.1" || first.AllocationID != "eipalloc-1" ||
		first.InstanceID != "i-1" || first.NetworkInterfaceID != "eni-1" {
		t.Errorf("first address not converted faithfully: %+v", first)
	}
	if first.Region != "eu-west-1" {
		t.Errorf("Region = %q; want eu-west-1", first.Region)
	}

	second := addrs[1]
	if second.AllocationID != "" || second.InstanceID != "" || second.NetworkInterfaceID != "" {
		t.Errorf("nil SDK pointers must convert to empty strings: %+v", second)
	}
}

func TestCollectRegion_EmptyRegion(t *testing.T) {
	stub := &stubAddressClient{out: &ec2svc.DescribeAddressesOutput{}}

	addrs, err := collectorWith(stub).CollectRegion(context.Background(), aws.Config{}, "us-east-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(addrs) != 0 {
		t.Fatalf("len = %d; want 0", len(addrs))
	}
}

func TestCollectRegion_ServiceErrorWrapsRegion(t *testing.T) {
	cause := errors.New("UnauthorizedOperation")
	stub := &stubAddressClient{err: cause}

	_, err := collectorWith(stub).CollectRegion(context.Background(), aws.Config{}, "ap-south-1")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, cause) {
		t.Errorf("error must wrap the SDK error; got %v", err)
	}
}
