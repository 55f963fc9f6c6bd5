// Package validation statically checks a parsed configuration before it is
// ever applied.
//
// The validator never fails and never stops early: it returns every finding,
// ordered by declaration and then by rule, and an empty result means the
// configuration is clean. A declaration that breaks two rules yields two
// issues. The only filesystem access is the existence check of sources and
// scripts inside the repository.
package validation
