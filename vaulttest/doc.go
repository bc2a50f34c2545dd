/*
Package vaulttest provides mocks and helpers for testing extensions.
*/
package vaulttest
