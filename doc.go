// Package vtcore implements the core of a VT100/VT220-class ANSI terminal
// emulator: a UTF-8 byte decoder, a DEC/ANSI escape-sequence parser, a grid
// model addressed through a scrolling ring buffer, a dispatch layer that
// turns parser events into grid mutations, and a dirty-span flush pipeline.
//
// The package owns no pseudo-terminal, no display backend, and no decoding
// of raw keyboard input (HandleKeypress takes an already-resolved Keysym and
// translates it through a static table): those are external collaborators
// reached only through the callbacks an Engine is constructed with. See cmd/vtdemo for a terminal
// that wires a real PTY and a real host TTY around an Engine.
package vtcore
