/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each package keeps a single configuration entity stored under a key derived
from the package name. A configuration is loaded from the genesis file with
InitConfig and can later be changed by its owner with a message handled by
UpdateConfigurationHandler.
*/
package gconf
