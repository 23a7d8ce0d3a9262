/*
Package manifest provides declarative key bindings for sfactory registries.

A manifest is a small YAML document aliasing deployment-facing keys to
producer keys registered in code:

	version: 1
	generatedAt: 2025-06-01T12:00:00Z
	bindings:
	  - key: cache
	    provider: ${CACHE_BACKEND}
	    doc: selected per environment
	  - key: codec
	    provider: codec-v2

Binding keys and providers support ${VAR} environment expansion, so one
manifest can serve several environments.

Usage:

	m, err := manifest.Load("bindings.yaml")
	if err != nil {
	    return err
	}
	if err := manifest.Apply(m, sfactory.For[Cache]()); err != nil {
	    return err
	}

Apply installs each binding with Factory.Alias, which copies the provider's
registered producers across every shape and signature. Aliases are therefore
snapshots: producers registered under the provider key after Apply are not
picked up by the alias.
*/
package manifest
