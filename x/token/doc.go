/*
Package token keeps track of the tokens known to the engine. Every
token is identified by its ticker and carries the number of decimal
places of its base unit. The decimals lookup is used by x/stream when
normalizing amounts of two different tokens to a common scale.
*/
package token
