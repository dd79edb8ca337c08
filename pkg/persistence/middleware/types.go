// Package middleware wraps a ResponseStore with at-rest protections for
// the guest data: AES-GCM encryption of the stored payload and pattern
// based masking of answer fields.
package middleware

import "github.com/kdvornichenko/birthday/pkg/ports"

// Middleware allows wrapping a ResponseStore to add behavior.
type Middleware func(ports.ResponseStore) ports.ResponseStore
