/*
Package vaultswap defines the common interfaces that tie the extensions of
this module together: the key value store the state lives in, messages and
transactions, handlers and decorators, and the context values passed between
them.

A vault is a two party, single shot escrow. An initializer locks an amount of
one token in a custody account controlled by a program derived address and
asks for an amount of another token in exchange. A taker may settle the ask,
swapping atomically, or the initializer may cancel and reclaim the funds.
The escrow itself lives in the x/vault extension, the token ledger it moves
funds with in x/token.

We pass context through context.Context between app, middleware, and
handlers. There should exist two functions for every XYZ of type T that we
want to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, chain id).
*/
package vaultswap
