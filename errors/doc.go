/*
Package errors implements the coded errors shared by all vaultswap extensions.

Reuse the errors declared here whenever possible and register a custom one in
an extension only when the failure reason is specific to it. Every root error
carries an ABCI code that lets clients tell failures apart without parsing
messages.

Register a root error with Register(code, description). Extend it at the
point of failure with Wrap/Wrapf, which attaches a stack trace at the
innermost wrap only. Test for a kind with ErrXyz.Is(err).

Once you have an error, you can use fmt.Printf/Sprintf to get more context
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
