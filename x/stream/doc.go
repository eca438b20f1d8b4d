/*
Package stream implements continuous, time weighted token distribution.

A stream sells a fixed pot of an "out" token for an "in" token over a
bounded time window. Participants subscribe by depositing the in token
and receive shares. As time passes the engine draws down the remaining
pot and the staked supply proportionally to the fraction of the
remaining window that elapsed, and advances a cumulative out-per-share
distribution index. A position earns `shares * indexDelta` out tokens
since its last reconciliation, with sub-unit fractions carried forward
so truncation delays but never loses an entitlement.

A stream moves through Waiting, Bootstrapping, Active and Ended phases
purely as a function of time. Cancelled, FinalizedStreamed and
FinalizedRefunded are terminal.

All arithmetic is integer only and rounds in favour of the pool, so no
value can be created by rounding. Every handler mutation is all or
nothing, a failed operation leaves stream and position untouched.
*/
package stream
