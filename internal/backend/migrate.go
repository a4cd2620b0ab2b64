package backend

import "github.com/jaywm/jayd/internal/scene"

// WsMoveConfig parameterizes one workspace migration, grounded on the
// Rust WsMoveConfig in tasks/connector.rs.
type WsMoveConfig struct {
	// MakeVisibleIfEmpty makes the migrated workspace the target
	// output's visible workspace.
	MakeVisibleIfEmpty bool
	// SourceIsDestroyed skips detaching from the source output — set
	// when the source node is itself mid-teardown, so the migration
	// does not touch the vanishing node (spec.md §4.7 Disconnected
	// transition).
	SourceIsDestroyed bool
}

// MoveWorkspaceToOutput migrates ws onto target, per cfg. The workspace
// keeps its name, container, and DesiredOutput preference; only its
// output attachment (and, per cfg, its visibility) changes.
func MoveWorkspaceToOutput(ws *scene.WorkspaceNode, target *scene.OutputNode, cfg WsMoveConfig) {
	if !cfg.SourceIsDestroyed {
		if src := ws.Output(); src != nil {
			src.RemoveWorkspace(ws)
		}
	}
	target.AddWorkspace(ws)
	ws.SetOutput(target)
	if cfg.MakeVisibleIfEmpty {
		target.SetVisibleWorkspace(ws)
	}
}
