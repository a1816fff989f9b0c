package networkMigrations

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
			// Add the mempool ordering policy (fifo by default); an existing
			// user-set order must be preserved exactly for reproducible runs
			{Path: []string{"network", "mining", "mempool"}, Condition: migration.IfUnchanged{}},
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
