package retained

// ============================================================================
// Environment
// ============================================================================
//
// Ambient values (theme colors, disabled state, text scale) travel through
// the tree as an immutable snapshot on the traversal contexts instead of
// being looked up from globals. Each pass resolves its snapshot once; a
// container that overrides a value wraps the snapshot for its subtree.

// EnvKey names one ambient value. Declare keys as package-level variables so
// identity, not string comparison, scopes them.
type EnvKey struct{ name string }

// NewEnvKey declares an ambient-value key with a diagnostic name.
func NewEnvKey(name string) *EnvKey { return &EnvKey{name: name} }

func (k *EnvKey) String() string { return k.name }

// Environment is an immutable chain of key/value overrides. The zero value
// is the empty environment.
type Environment struct {
	parent *Environment
	key    *EnvKey
	value  any
}

// With returns a snapshot extending e with one override.
func (e Environment) With(key *EnvKey, value any) Environment {
	parent := e
	return Environment{parent: &parent, key: key, value: value}
}

// Get returns the innermost value for key, or nil when unset.
func (e Environment) Get(key *EnvKey) any {
	for cur := &e; cur != nil; cur = cur.parent {
		if cur.key == key {
			return cur.value
		}
	}
	return nil
}

// EnvValue resolves a typed ambient value, falling back to def when the key
// is unset or holds a different type.
func EnvValue[T any](e Environment, key *EnvKey, def T) T {
	if v, ok := e.Get(key).(T); ok {
		return v
	}
	return def
}
