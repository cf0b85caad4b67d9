// Package exclusion loads the operator-maintained allow-list of Elastic IPs
// that are intentionally held unassociated and must not be reported.
package exclusion

import (
	"fmt"
	"os"
	"strings"

	"github.com/inconshreveable/log15"
	"gopkg.in/yaml.v3"
)

// Set holds the excluded public IPs. Membership is exact, case-sensitive
// string match. The zero value (nil) is a valid empty set.
type Set map[string]struct{}

// Contains reports whether ip is excluded from the audit.
func (s Set) Contains(ip string) bool {
	_, ok := s[ip]
	return ok
}

// Len returns the number of excluded addresses.
func (s Set) Len() int { return len(s) }

// NewSet builds a Set from ips, trimming whitespace and dropping empty
// entries and duplicates.
func NewSet(ips ...string) Set {
	set := make(Set, len(ips))
	for _, ip := range ips {
		ip = strings.TrimSpace(ip)
		if ip == "" {
			continue
		}
		set[ip] = struct{}{}
	}
	return set
}

// ipList accepts the excludeFromCheck value either as a YAML sequence or as a
// single comma-separated scalar, so both of these parse to the same list:
//
//	excludeFromCheck: [198.51.100.7, 203.0.113.9]
//	excludeFromCheck: "198.51.100.7, 203.0.113.9"
type ipList []string

func (l *ipList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var ips []string
		if err := node.Decode(&ips); err != nil {
			return err
		}
		*l = ips
		return nil
	case yaml.ScalarNode:
		var raw string
		if err := node.Decode(&raw); err != nil {
			return err
		}
		*l = strings.Split(raw, ",")
		return nil
	default:
		return fmt.Errorf("excludeFromCheck must be a list or a comma-separated string (line %d)", node.Line)
	}
}

// exclusionFile is the on-disk shape of the optional exclusion list.
// excludeFromCheck is the only recognised key.
type exclusionFile struct {
	ExcludeFromCheck ipList `yaml:"excludeFromCheck"`
}

// Load reads the exclusion file at path and returns the resulting Set.
//
// The file is an optional override mechanism, so every failure mode is
// fail-open: a missing, unreadable, or malformed file yields an empty set and
// a log line rather than an error. A configuration typo must never fail the
// audit itself.
func Load(path string, logger log15.Logger) Set {
	logger.Info("loading EIP exclusion list (optional)", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no exclusion file found, auditing without exclusions", "path", path)
		} else {
			logger.Error("exclusion file unreadable, auditing without exclusions", "path", path, "error", err)
		}
		return Set{}
	}

	var cfg exclusionFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("exclusion file malformed, auditing without exclusions", "path", path, "error", err)
		return Set{}
	}

	set := NewSet(cfg.ExcludeFromCheck...)
	if set.Len() == 0 {
		logger.Info("no excluded EIPs found", "path", path)
	} else {
		logger.Info("loaded excluded EIPs", "path", path, "count", set.Len())
	}
	return set
}
