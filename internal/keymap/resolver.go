package keymap

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action   // key -> action
	byAction map[Action][]string // action -> keys, for help output
}

// NewResolver builds a resolver from the default bindings with per-action
// overrides applied. An override replaces the action's whole key list;
// override entries naming unknown actions are ignored.
func NewResolver(overrides map[string]string) *Resolver {
	bindings := Defaults()
	for i, b := range bindings {
		if key, ok := overrides[string(b.Action)]; ok && key != "" {
			bindings[i].Keys = []string{key}
		}
	}

	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	return r
}

// Resolve returns the action bound to a key, ActionNone if unbound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}
