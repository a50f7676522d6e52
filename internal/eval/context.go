package eval

import "lambdatron.dev/lambdatron/internal/value"

// Context is a lexical scope frame (spec.md §3, §4.4): a chain of binding
// frames rooted at the current namespace. Symbol resolution walks frames
// innermost-first, then falls back to the namespace's own Vars, its
// refers, and finally aliased namespaces.
type Context struct {
	parent *Context
	binds  map[string]value.Value
	ns     *Namespace
	reg    *Registry
}

// NewRootContext creates the outermost Context for namespace ns.
func NewRootContext(reg *Registry, ns *Namespace) *Context {
	return &Context{ns: ns, reg: reg}
}

// Child creates a new lexical frame nested inside c.
func (c *Context) Child() *Context {
	return &Context{parent: c, ns: c.ns, reg: c.reg}
}

// WithNamespace creates a child frame evaluating in a different current
// namespace (used by the reader-expander-facing API to switch ns, and by
// host functions that need a context bound to a specific namespace).
func (c *Context) WithNamespace(ns *Namespace) *Context {
	return &Context{parent: c, ns: ns, reg: c.reg}
}

// Namespace returns the current namespace for this context.
func (c *Context) Namespace() *Namespace { return c.ns }

// Registry returns the shared namespace registry.
func (c *Context) Registry() *Registry { return c.reg }

// Bind introduces name into this exact frame (not a parent). Call on a
// freshly created Child frame for `let`/`fn`/`loop` parameter binding.
func (c *Context) Bind(name string, v value.Value) {
	if c.binds == nil {
		c.binds = make(map[string]value.Value)
	}
	c.binds[name] = v
}

// Lookup resolves name: lexical frames innermost-first, then the current
// namespace's own Vars and refers (spec.md §4.4).
func (c *Context) Lookup(name string) (value.Value, bool) {
	for fr := c; fr != nil; fr = fr.parent {
		if fr.binds != nil {
			if v, ok := fr.binds[name]; ok {
				return v, true
			}
		}
	}
	if v, ok := c.ns.Lookup(name); ok {
		return v, true
	}
	return nil, false
}

// LookupQualified resolves ns/name: a direct namespace-registry lookup, an
// alias resolved through the current namespace, or (if ns equals the
// current namespace's own name) a direct Var lookup.
func (c *Context) LookupQualified(ns, name string) (value.Value, bool) {
	if target, ok := c.reg.Find(ns); ok {
		if v, ok := target.Lookup(name); ok {
			return v, true
		}
	}
	if target, ok := c.ns.ResolveAlias(ns); ok {
		if targetNs, ok := c.reg.Find(target); ok {
			if v, ok := targetNs.Lookup(name); ok {
				return v, true
			}
		}
	}
	return nil, false
}
