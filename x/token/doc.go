/*
Package token implements fungible tokens: mints, holding accounts and the
checked transfer primitive the vault relies on.

A holding account belongs to exactly one mint and one owner. The owner is
either a human key, authenticated by its signature, or a program derived
address, authenticated by the program that derived it. The canonical
holding account of an owner for a mint is its associated account, an
address any client can compute with AssociatedAddress.

Every new mint and holding account pays a rent deposit that is returned to
a chosen destination when the account is closed.
*/
package token
