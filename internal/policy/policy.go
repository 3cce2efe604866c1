// Package policy holds the process-wide governance configuration. A
// Policy is read once at startup and treated as immutable for the life
// of the process; there is no runtime reconfiguration path.
package policy

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Policy struct {
	Version string `yaml:"version"`
	// PIIRedaction controls whether request content is sanitized before
	// classification and logging.
	PIIRedaction bool `yaml:"pii_redaction"`
	// BlockHighRisk hard-denies high-risk requests before they reach the
	// model. When false, high-risk requests fall through to the approval
	// gate instead.
	BlockHighRisk bool `yaml:"block_high_risk"`
	// RequireApprovalHighRisk requires explicit human approval before a
	// high-risk request proceeds.
	RequireApprovalHighRisk bool `yaml:"require_approval_high_risk"`
}

func DefaultPolicy() Policy {
	return Policy{
		Version:                 "0.1",
		PIIRedaction:            true,
		BlockHighRisk:           false,
		RequireApprovalHighRisk: true,
	}
}

// Load reads a policy file. A missing file yields the default policy
// rather than an error, so a fresh install is usable without setup.
func Load(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPolicy(), nil
		}
		return Policy{}, err
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, err
	}

	if p.Version == "" {
		p.Version = "0.1"
	}
	return p, nil
}
