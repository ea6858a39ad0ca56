// Package model defines the parameter descriptions, the boundary limit
// marker, and the error taxonomy shared by all posonly packages.
package model
