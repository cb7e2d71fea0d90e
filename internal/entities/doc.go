// Package entities holds the types shared by every roller: roll results
// and quick buttons.
package entities
