/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension stores a single configuration object under its package name.
The configuration is loaded from the genesis file "conf" section with
InitConfig and read back with Load.
*/
package gconf
