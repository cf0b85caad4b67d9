// Command eipaudit audits an AWS account for allocated-but-unassociated
// Elastic IP addresses across all active regions. It is built to run as a
// build or deployment pipeline step, so its exit code is the primary signal:
//
//	0 — audit ran, no unassociated EIPs
//	2 — audit ran, unassociated EIPs found (the count and estimated daily
//	    cost are printed to stderr)
//	1 — execution error: the audit could not run at all
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/opsaudit/eipaudit/internal/audit"
)

const (
	exitOK             = 0
	exitExecutionError = 1
	exitFindings       = 2
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "eipaudit:", err)
	}
	os.Exit(exitCodeFor(err))
}

// exitCodeFor maps the command error to the process exit code. A findings
// failure is an expected outcome with its own code; everything else non-nil
// means the audit could not run.
func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}
	var findings *audit.FindingsError
	if errors.As(err, &findings) {
		return exitFindings
	}
	return exitExecutionError
}
