package lang

// Env implements a lexical environment chain. Bindings are owned copies.
type Env struct {
	parent *Env
	values map[string]*Value
}

// NewEnv creates an environment with optional parent.
func NewEnv(parent *Env) *Env {
	return &Env{
		parent: parent,
		values: make(map[string]*Value),
	}
}

// Define binds name to a copy of val in the current frame.
func (e *Env) Define(name string, val *Value) {
	if old, ok := e.values[name]; ok {
		old.Del()
	}
	e.values[name] = val.Copy()
}

// Def binds name to a copy of val in the outermost frame.
func (e *Env) Def(name string, val *Value) {
	for e.parent != nil {
		e = e.parent
	}
	e.Define(name, val)
}

// Get returns a copy of the binding for name, searching parents if
// necessary. An unbound name yields an Error value.
func (e *Env) Get(name string) *Value {
	if val, ok := e.values[name]; ok {
		return val.Copy()
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Errorf("Unbound Symbol '%s'", name)
}

// Parent returns the parent environment.
func (e *Env) Parent() *Env {
	return e.parent
}
