/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package manifest

import (
	"fmt"
)

// Target is the factory surface a manifest needs: string-keyed aliasing.
// *sfactory.Factory[B, string] satisfies it.
type Target interface {
	Alias(dst, src string) error
}

// Apply validates the manifest and installs every binding on the target.
// Bindings apply in order; the first failure aborts and reports the binding
// that caused it. Earlier bindings stay installed, matching the registry's
// no-deregistration contract.
func Apply(m *Manifest, t Target) error {
	if err := m.Validate(); err != nil {
		return err
	}
	for _, b := range m.Bindings {
		if err := t.Alias(b.Key, b.Provider); err != nil {
			return fmt.Errorf("binding %q -> %q: %w", b.Key, b.Provider, err)
		}
	}
	return nil
}
