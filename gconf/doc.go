/*
Package gconf provides a toolset for managing an extension
configuration. Each extension can store a single configuration record,
a singleton keyed by the package name, loaded from the genesis options
and validated before every write.
*/
package gconf
