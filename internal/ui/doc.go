// Package ui provides the Bubble Tea control surface for knurl: arrow keys
// emulate rotary detents, m/space/enter the mute press and tap, and the view
// renders the engine's pushed volume/mute state as a bar with transient
// alert banners.
package ui
