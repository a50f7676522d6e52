package eval

import (
	"fmt"
	"sync"

	"lambdatron.dev/lambdatron/internal/value"
)

// Var is a mutable binding cell living inside a Namespace (spec.md §3). Its
// identity, not its contents, is what equality/hashing compare (spec.md
// §4.4's "identity-based" rule for Var/Function/Macro), matching why it
// embeds value.Embed instead of living in the value package: Var holds a
// back-reference to its owning Namespace, and value can't import eval
// without a cycle.
type Var struct {
	value.Embed
	Namespace string
	Name      string
	mu        sync.RWMutex
	bound     bool
	val       value.Value
}

func (*Var) Kind() value.Kind { return value.KindVar }

func (v *Var) String() string { return fmt.Sprintf("#'%s/%s", v.Namespace, v.Name) }

// NewUnboundVar creates a Var with no value bound yet.
func NewUnboundVar(namespace, name string) *Var {
	return &Var{Namespace: namespace, Name: name}
}

// Get returns the bound value and whether the Var is currently bound.
func (v *Var) Get() (value.Value, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.val, v.bound
}

// Set binds the Var to val.
func (v *Var) Set(val value.Value) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.val = val
	v.bound = true
}

// Namespace is a thread-safe table of name -> Var (spec.md §4.6). Grounded
// on the teacher's internal/eval/namespace.go RWMutex-guarded map,
// generalized from a flat name->Expr table to name->*Var plus refers and
// aliases so qualified symbol resolution (spec.md §4.4) has somewhere to
// look.
type Namespace struct {
	Name string

	mu      sync.RWMutex
	vars    map[string]*Var
	refers  map[string]*Var    // name -> Var referred in from another namespace
	aliases map[string]*Ns2NS  // alias -> target namespace name
}

// Ns2NS is a placeholder for a resolved namespace alias target, kept
// distinct from a bare string so future alias metadata has somewhere to go.
type Ns2NS struct {
	Target string
}

// NewNamespace creates an empty namespace named name.
func NewNamespace(name string) *Namespace {
	return &Namespace{
		Name:    name,
		vars:    make(map[string]*Var),
		refers:  make(map[string]*Var),
		aliases: make(map[string]*Ns2NS),
	}
}

// Intern returns the Var for name, creating an unbound one if absent.
func (n *Namespace) Intern(name string) *Var {
	n.mu.Lock()
	defer n.mu.Unlock()
	if v, ok := n.vars[name]; ok {
		return v
	}
	v := NewUnboundVar(n.Name, name)
	n.vars[name] = v
	return v
}

// Lookup resolves name within this namespace's own Vars, then its refers.
func (n *Namespace) Lookup(name string) (*Var, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if v, ok := n.vars[name]; ok {
		return v, true
	}
	if v, ok := n.refers[name]; ok {
		return v, true
	}
	return nil, false
}

// Refer makes target visible unqualified in this namespace under name.
func (n *Namespace) Refer(name string, target *Var) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.refers[name] = target
}

// Alias records that alias refers to the namespace named target.
func (n *Namespace) Alias(alias, target string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.aliases[alias] = &Ns2NS{Target: target}
}

// ResolveAlias returns the namespace name an alias points to.
func (n *Namespace) ResolveAlias(alias string) (string, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	a, ok := n.aliases[alias]
	if !ok {
		return "", false
	}
	return a.Target, true
}

// Registry owns every Namespace the interpreter knows about, keyed by name.
type Registry struct {
	mu    sync.RWMutex
	byName map[string]*Namespace
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Namespace)}
}

// FindOrCreate returns the namespace named name, creating it if absent.
func (r *Registry) FindOrCreate(name string) *Namespace {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ns, ok := r.byName[name]; ok {
		return ns
	}
	ns := NewNamespace(name)
	r.byName[name] = ns
	return ns
}

// Find returns the namespace named name, if it exists.
func (r *Registry) Find(name string) (*Namespace, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ns, ok := r.byName[name]
	return ns, ok
}
