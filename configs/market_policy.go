package configs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/IsmaelSWO/league-backend/internal/rules"
	"github.com/IsmaelSWO/league-backend/internal/utils"
)

// MarketPolicyFile is the optional YAML override for the market rules.
// Empty fields keep the environment values.
type MarketPolicyFile struct {
	Timezone        string         `yaml:"timezone"`
	AdminTeam       string         `yaml:"admin_team"`
	UnassignedTeam  string         `yaml:"unassigned_team"`
	ProtectedTitles []string       `yaml:"protected_titles"`
	Windows         []rules.Window `yaml:"windows"`
}

// LoadMarketPolicyFile reads and validates a policy file
func LoadMarketPolicyFile(path string) (*MarketPolicyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read market policy: %w", err)
	}

	var file MarketPolicyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse market policy %s: %w", path, err)
	}

	for i, w := range file.Windows {
		if w.State == "" {
			return nil, fmt.Errorf("market policy window %d: state is required", i)
		}
		if w.Start.Day < 1 || w.End.Day < 1 {
			return nil, fmt.Errorf("market policy window %s: days start at 1", w.State)
		}
		if !w.AllowClausulazo && !w.AllowTransfers {
			return nil, fmt.Errorf("market policy window %s admits no action", w.State)
		}
	}
	return &file, nil
}

// BuildTransferPolicy assembles the transfer policy from the environment and,
// when MARKET_POLICY_FILE is set, the YAML overrides.
func BuildTransferPolicy(cfg MarketConfig) (*rules.TransferPolicy, error) {
	timezone := cfg.Timezone
	adminTeam := cfg.AdminTeam
	unassignedTeam := cfg.UnassignedTeam
	protected := cfg.ProtectedTitles
	var windows []rules.Window

	if cfg.PolicyFile != "" {
		file, err := LoadMarketPolicyFile(cfg.PolicyFile)
		if err != nil {
			return nil, err
		}
		if file.Timezone != "" {
			timezone = file.Timezone
		}
		if file.AdminTeam != "" {
			adminTeam = file.AdminTeam
		}
		if file.UnassignedTeam != "" {
			unassignedTeam = file.UnassignedTeam
		}
		if file.ProtectedTitles != nil {
			protected = file.ProtectedTitles
		}
		windows = file.Windows
	}

	policy := rules.NewTransferPolicy(rules.NewMarketCalendar(windows, utils.LoadLocation(timezone)))
	if adminTeam != "" {
		policy.AdminTeam = adminTeam
	}
	if unassignedTeam != "" {
		policy.UnassignedTeam = unassignedTeam
	}
	if protected != nil {
		policy.ProtectedTitles = protected
	}
	return policy, nil
}
