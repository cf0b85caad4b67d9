// Package classify holds the pure decision logic that determines whether an
// Elastic IP counts as unassociated. It is stateless, makes no network calls,
// and is safe to call concurrently.
package classify

import (
	"github.com/opsaudit/eipaudit/internal/exclusion"
	"github.com/opsaudit/eipaudit/internal/models"
)

// IsUnassociated reports whether addr is an allocated address with no active
// use. An address is in use when it is bound to an EC2 instance or to a
// network interface; either binding counts. Addresses on the exclusion list
// are treated as associated so operators can hold them deliberately.
//
// The exclusion lookup runs last so it is only paid for addresses that are
// otherwise candidates.
func IsUnassociated(addr models.ElasticIP, exclusions exclusion.Set) bool {
	if addr.InstanceID != "" {
		return false
	}
	if addr.NetworkInterfaceID != "" {
		return false
	}
	return !exclusions.Contains(addr.PublicIP)
}
