// Package lifecycle holds process-wide lifecycle constants.
package lifecycle

import "time"

// DefaultTimeout bounds startup probes and graceful shutdown hooks.
const DefaultTimeout = 10 * time.Second
