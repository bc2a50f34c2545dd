/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration object stored under the
"_c:<package name>" key. It is loaded from the genesis file (the "conf"
section, keyed by package name) and can be updated later by its owner using
an UpdateConfigurationHandler.
*/
package gconf
