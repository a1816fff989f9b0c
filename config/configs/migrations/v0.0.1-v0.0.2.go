package configMigrations

import (
	"github.com/hardkit-labs/hardkit-cli/pkg/migration"

	"gopkg.in/yaml.v3"
)

func Migration_0_0_1_to_0_0_2(user, old, new *yaml.Node) (*yaml.Node, error) {
	engine := migration.PatchEngine{
		Old:  old,
		New:  new,
		User: user,
		Rules: []migration.PatchRule{
			// Add default_network selector (leave unchanged if the user already picked one)
			{Path: []string{"config", "project", "default_network"}, Condition: migration.IfUnchanged{}},
			// Add project_uuid field (empty string by default)
			{Path: []string{"config", "project", "project_uuid"}, Condition: migration.Always{}},
			// Add telemetry_enabled field (false by default)
			{Path: []string{"config", "project", "telemetry_enabled"}, Condition: migration.Always{}},
		},
	}
	err := engine.Apply()
	if err != nil {
		return nil, err
	}

	// bump version node
	if v := migration.ResolveNode(user, []string{"version"}); v != nil {
		v.Value = "0.0.2"
	}
	return user, nil
}
