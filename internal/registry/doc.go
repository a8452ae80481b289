// Package registry is the catalog of importable modules for an expression
// dialect.
//
// Modules are compiled into the binary. Each one implements Module and adds
// its Definition to a Registry when the application starts; the import loader
// then resolves user-requested names against that Registry only. A name that
// is not registered cannot be imported.
package registry
