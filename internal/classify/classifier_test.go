package classify

import (
	"testing"

	"github.com/opsaudit/eipaudit/internal/exclusion"
	"github.com/opsaudit/eipaudit/internal/models"
)

func TestIsUnassociated(t *testing.T) {
	excluded := exclusion.NewSet("198.51.100.7")

	cases := []struct {
		name string
		addr models.ElasticIP
		set  exclusion.Set
		want bool
	}{
		{
			name: "bound to instance",
			addr: models.ElasticIP{PublicIP: "203.0.113.1", InstanceID: "i-0abc"},
			set:  exclusion.Set{},
			want: false,
		},
		{
			name: "bound to network interface only",
			addr: models.ElasticIP{PublicIP: "203.0.113.2", NetworkInterfaceID: "eni-0abc"},
			set:  exclusion.Set{},
			want: false,
		},
		{
			name: "bound to both",
			addr: models.ElasticIP{PublicIP: "203.0.113.3", InstanceID: "i-0abc", NetworkInterfaceID: "eni-0abc"},
			set:  exclusion.Set{},
			want: false,
		},
		{
			name: "unbound and not excluded",
			addr: models.ElasticIP{PublicIP: "203.0.113.4"},
			set:  exclusion.Set{},
			want: true,
		},
		{
			name: "unbound legacy address without allocation id",
			addr: models.ElasticIP{PublicIP: "203.0.113.5", AllocationID: ""},
			set:  exclusion.Set{},
			want: true,
		},
		{
			name: "unbound but excluded",
			addr: models.ElasticIP{PublicIP: "198.51.100.7"},
			set:  excluded,
			want: false,
		},
		{
			name: "bound to instance and excluded stays associated",
			addr: models.ElasticIP{PublicIP: "198.51.100.7", InstanceID: "i-0abc"},
			set:  excluded,
			want: false,
		},
		{
			name: "nil exclusion set is a valid empty set",
			addr: models.ElasticIP{PublicIP: "203.0.113.6"},
			set:  nil,
			want: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUnassociated(tc.addr, tc.set); got != tc.want {
				t.Errorf("IsUnassociated(%+v) = %v; want %v", tc.addr, got, tc.want)
			}
		})
	}
}

// Binding always wins over exclusion set contents: an address with a non-empty
// InstanceID or NetworkInterfaceID is associated no matter what the set holds.
func TestIsUnassociated_BindingBeatsExclusionContents(t *testing.T) {
	sets := []exclusion.Set{
		nil,
		exclusion.Set{},
		exclusion.NewSet("203.0.113.9"),
	}
	bound := []models.ElasticIP{
		{PublicIP: "203.0.113.9", InstanceID: "i-1"},
		{PublicIP: "203.0.113.9", NetworkInterfaceID: "eni-1"},
	}
	for _, set := range sets {
		for _, addr := range bound {
			if IsUnassociated(addr, set) {
				t.Errorf("bound address %+v classified unassociated with set %v", addr, set)
			}
		}
	}
}
