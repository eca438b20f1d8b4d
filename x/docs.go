/*
Package x contains interfaces shared by the extensions.

Actual extensions live in subpackages. Helpers that require no state,
like the Authenticator contract, are declared here so extensions can
depend on them without depending on each other.
*/
package x
