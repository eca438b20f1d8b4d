// Package streamtest provides test doubles and fixtures shared by the
// test suites of this project. Nothing in this package is intended for
// production use.
package streamtest
