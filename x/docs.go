/*
Package x contains the extensions of the application.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together in the app package. This package
holds the pieces shared between them, mostly authentication.
*/
package x
