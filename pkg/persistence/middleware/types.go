// Package middleware provides RunStore decorators for protecting captured
// answers at rest: AES-GCM encryption with key rotation and PII masking.
package middleware

import "github.com/mbarros/inquira/pkg/ports"

// Middleware allows wrapping a RunStore to add behavior.
type Middleware func(ports.RunStore) ports.RunStore
