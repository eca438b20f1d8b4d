/*
Package tide defines all common interfaces that tie the subpackages of
the streaming distribution engine together, as well as implementations
of some of the simpler components (when interfaces would be too much
overhead).

The root package carries no business logic. It provides the storage
interfaces (KVStore and friends), the message/transaction/handler
contracts that extensions implement, addresses and conditions, and the
per-call context helpers (block time, logger).

The actual distribution engine lives in x/stream. Custody of tokens is
handled by x/cash, token metadata by x/token.
*/
package tide
