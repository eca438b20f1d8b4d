// Package utils provides generic decorators wrapped around concrete
// handlers: write isolation via savepoints and panic recovery.
package utils
