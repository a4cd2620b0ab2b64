package backend

import (
	"sync/atomic"

	"github.com/jaywm/jayd/internal/geom"
	"github.com/jaywm/jayd/internal/globals"
	"github.com/jaywm/jayd/internal/scene"
)

// Handle spawns the per-connector handler task for connector: it
// registers an on_change callback, replays any already-queued events,
// then parks until the next one, exactly mirroring
// original_source/src/tasks/connector.rs's `handle` entrypoint.
//
// The handler runs on its own goroutine because it spends most of its
// life blocked waiting for hardware events the engine's single
// goroutine must stay free to service other clients during; every
// protocol-state mutation it performs is still funneled through
// state.Engine.Do so it only ever runs interleaved with other tasks at
// well-defined points, preserving spec.md §5's atomicity guarantee.
func Handle(state *State, connector Connector) {
	data := &ConnectorData{
		Connector: connector,
		Name:      connector.KernelID(),
		signal:    make(chan struct{}, 1),
	}
	state.SetConnectorData(connector.ID(), data)
	h := &connectorHandler{id: connector.ID(), state: state, data: data, connector: connector}
	go h.run()
}

// connectorHandler is the unexported runtime counterpart to
// ConnectorData, grounded on the Rust ConnectorHandler.
type connectorHandler struct {
	id        ConnectorID
	state     *State
	data      *ConnectorData
	connector Connector

	connected atomic.Bool
}

func (h *connectorHandler) run() {
	h.connector.OnChange(func() {
		select {
		case h.data.signal <- struct{}{}:
		default:
		}
	})
	if cfg := h.state.Config(); cfg != nil {
		cfg.NewConnector(h.id)
	}

outer:
	for {
		for {
			ev, ok := h.connector.Event()
			if !ok {
				break
			}
			switch ev.Kind {
			case EventRemoved:
				break outer
			case EventConnected:
				h.handleConnected(ev.Monitor)
			default:
				// Unreachable in the original for a freshly-handled
				// connector; an implementer that receives one anyway
				// ignores it rather than aborting (spec.md §9 Open
				// Question).
			}
		}
		<-h.data.signal
	}

	if cfg := h.state.Config(); cfg != nil {
		cfg.DelConnector(h.id)
	}
	h.state.SetConnectorData(h.id, nil)
}

func (h *connectorHandler) handleConnected(info MonitorInfo) {
	h.state.Log.Info().Str("connector", h.data.Name).Msg("connector connected")
	h.connected.Store(true)
	h.data.Connected = true

	identity := scene.OutputIdentity{
		Connector:    h.data.Name,
		Manufacturer: info.Manufacturer,
		Product:      info.Product,
		Serial:       info.SerialNumber,
	}
	if info.NonDesktop {
		h.handleNonDesktopConnected(info)
	} else {
		h.handleDesktopConnected(info, identity)
	}

	h.connected.Store(false)
	h.data.Connected = false
	h.state.Log.Info().Str("connector", h.data.Name).Msg("connector disconnected")
}

func (h *connectorHandler) handleDesktopConnected(info MonitorInfo, identity scene.OutputIdentity) {
	var on *scene.OutputNode
	var global *globals.Global
	var persisted *PersistentOutputState

	h.state.Engine.Do(func() {
		x1 := h.state.Root.RightmostX2()
		persisted = h.state.Persistent.GetOrCreate(identity, geom.Point{X: x1, Y: 0})

		global = h.state.Globals.Insert("wl_output", 4, false)

		on = scene.NewOutputNode(identity)
		on.GlobalName = global.Name
		pos := persisted.GetPosition()
		on.ChangeExtents(geom.NewRect(pos.X, pos.Y, int(info.InitialMode.Width), int(info.InitialMode.Height)))

		h.state.AddOutputScale(persisted.Scale)
		h.state.SetOutputData(h.id, &OutputData{Connector: h.connector, MonitorInfo: info, Node: on})

		h.state.Root.AddOutput(on)

		var wsToMove []*scene.WorkspaceNode
		if len(h.state.Root.Outputs()) == 1 {
			center := on.AbsolutePosition().Center()
			for _, seat := range h.state.Seats() {
				seat.SetPosition(center)
				seat.SetOutput(on)
			}
			for _, ws := range h.state.DummyOutput.Workspaces() {
				if ws.IsDummyWorkspace {
					continue
				}
				wsToMove = append(wsToMove, ws)
			}
		}
		for _, source := range h.state.Root.Outputs() {
			if source.ID() == on.ID() {
				continue
			}
			for _, ws := range source.Workspaces() {
				if ws.IsDummyWorkspace {
					continue
				}
				if ws.DesiredOutput == identity {
					wsToMove = append(wsToMove, ws)
				}
			}
		}
		for i, ws := range wsToMove {
			makeVisible := (ws.VisibleOnDesiredOutput && ws.DesiredOutput == identity) || i == len(wsToMove)-1
			MoveWorkspaceToOutput(ws, on, WsMoveConfig{MakeVisibleIfEmpty: makeVisible})
		}

		if cfg := h.state.Config(); cfg != nil {
			cfg.ConnectorConnected(h.id)
		}
		h.state.TreeChanged()
	})

loop:
	for {
		for {
			ev, ok := h.connector.Event()
			if !ok {
				break
			}
			switch ev.Kind {
			case EventDisconnected:
				break loop
			case EventHardwareCursor:
				h.state.Engine.Do(func() {
					h.state.Damage()
				})
			case EventModeChanged:
				h.state.Engine.Do(func() {
					if data, ok := h.state.OutputDataFor(h.id); ok {
						data.MonitorInfo.InitialMode = ev.Mode
					}
					h.state.Damage()
				})
			default:
				// Unreachable per the original: a desktop-connected
				// connector only reports Disconnected/ModeChanged/
				// HardwareCursor. Ignored rather than aborted (spec.md
				// §9 Open Question).
			}
		}
		<-h.data.signal
	}

	h.state.Engine.Do(func() {
		if cfg := h.state.Config(); cfg != nil {
			cfg.ConnectorDisconnected(h.id)
		}

		h.state.Globals.Remove(global.Name)
		h.state.Root.RemoveOutput(on)

		var target *scene.OutputNode
		if remaining := h.state.Root.Outputs(); len(remaining) > 0 {
			target = remaining[0]
		} else {
			target = h.state.DummyOutput
		}

		for _, ws := range on.Workspaces() {
			if ws.DesiredOutput == identity {
				ws.VisibleOnDesiredOutput = ws.Visible()
			}
			MoveWorkspaceToOutput(ws, target, WsMoveConfig{
				MakeVisibleIfEmpty: ws.Visible(),
				SourceIsDestroyed:  true,
			})
		}

		tpos := target.AbsolutePosition().Center()
		for _, seat := range h.state.Seats() {
			if seat.Output() == on {
				seat.SetPosition(tpos)
				seat.SetOutput(target)
			}
		}

		h.state.RemoveOutputScale(persisted.Scale)
		h.state.SetOutputData(h.id, nil)
		h.state.TreeChanged()
		h.state.Damage()
	})
}

func (h *connectorHandler) handleNonDesktopConnected(info MonitorInfo) {
	h.state.Engine.Do(func() {
		h.state.SetOutputData(h.id, &OutputData{Connector: h.connector, MonitorInfo: info})
		if cfg := h.state.Config(); cfg != nil {
			cfg.ConnectorConnected(h.id)
		}
	})

loop:
	for {
		for {
			ev, ok := h.connector.Event()
			if !ok {
				break
			}
			switch ev.Kind {
			case EventDisconnected:
				break loop
			case EventAvailable, EventUnavailable:
				// No scene-tree presence to update (spec.md §4.7
				// NonDesktop "mirrors the structure but does not
				// build a scene node").
			default:
			}
		}
		<-h.data.signal
	}

	h.state.Engine.Do(func() {
		h.state.SetOutputData(h.id, nil)
		if cfg := h.state.Config(); cfg != nil {
			cfg.ConnectorDisconnected(h.id)
		}
	})
}
