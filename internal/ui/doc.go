// Package ui holds the plain console interactions of an import run: drop
// approval (forced countdown or typed confirmation) and the key press
// pause used by StayOpen.
package ui
