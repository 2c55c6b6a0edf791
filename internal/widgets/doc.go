// Package widgets holds stateless render primitives shared by the pages:
// bordered cards, stacks, the funding bar and the popup compositor.
// Key handling and page state live in package tui.
package widgets
