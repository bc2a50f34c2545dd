/*
Package rent keeps the native (lamport) balance of every address.

Creating a record or a token holding account costs a deposit that is
proportional to its stored size. The deposit is moved from the payer to
the new account and is returned to a chosen destination when the account
is closed. The price is a gconf singleton stored under the "rent" key.
*/
package rent
