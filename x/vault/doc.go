/*
Package vault implements a two party token escrow.

An initializer locks an amount of token A in a custody account and names
the amount of token B they want for it. A taker settles the vault by
paying token B and receiving the custody balance, or the initializer
cancels and takes the locked tokens back. Either way the vault record and
its custody account are closed and their rent deposits are returned to
the initializer.

The vault record lives at a program derived address computed from a
namespace tag and the initializer chosen seed. The custody account is the
associated token account of that address. No private key exists for it;
the vault handlers release custody by re-deriving the record address from
its stored seed and bump and authenticating it for the duration of the
call.
*/
package vault
