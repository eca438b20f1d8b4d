/*
Package errors implements custom error interfaces for the engine.

The idea is to reuse as many errors from this package as possible and
define custom package errors only when absolutely necessary. Errors are
categorized by registered root errors. Use Wrap to provide context and
Is to test the category of a failure.
*/
package errors
