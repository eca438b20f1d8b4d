/*
Package cash defines a simple wallet extension to keep track of token
balances per address and to move tokens between wallets.

Other extensions depend on the Controller interface to perform custody,
so the wallet storage details stay in this package.
*/
package cash
