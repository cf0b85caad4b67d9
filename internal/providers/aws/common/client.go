package common

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// ProfileConfig is a resolved AWS profile with its SDK configuration and
// initialised service clients. It is the unit passed from the CLI into the
// auditor.
type ProfileConfig struct {
	// ProfileName is the name from ~/.aws/credentials or "default".
	ProfileName string

	// AccountID is the resolved AWS account ID for this profile (via STS).
	AccountID string

	// Region is the home region for this profile configuration.
	Region string

	// Config is the fully loaded AWS SDK v2 configuration.
	Config aws.Config

	// Clients holds initialised service clients scoped to this profile's
	// home region. Use AWSClientProvider.ConfigForRegion to obtain
	// region-scoped configs for per-region scanning.
	Clients *ClientSet
}

// AWSClientProvider loads AWS configurations and resolves active regions.
// It is the sole entry point for AWS credential and region management.
//
// Implementations must use the AWS SDK v2 only.
type AWSClientProvider interface {
	// LoadProfile returns a ProfileConfig for the named profile.
	// Pass an empty string to load the default profile.
	LoadProfile(ctx context.Context, profile string) (*ProfileConfig, error)

	// GetActiveRegions returns all regions that are enabled for the account
	// associated with cfg. The list drives the per-region audit loop.
	GetActiveRegions(ctx context.Context, cfg *ProfileConfig) ([]string, error)

	// ConfigForRegion clones cfg with the target region set. Each scan gets
	// its own config value so concurrent scans share no mutable client state.
	ConfigForRegion(cfg *ProfileConfig, region string) aws.Config
}
