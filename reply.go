package vtcore

import "fmt"

// Reply byte sequences the core emits, bit-exact per §6.

const replyDA = "\x1b[?1;0c"

func replyDSRStatus() string {
	return "\x1b[0n"
}

func replyDSRCursor(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dR", row, col)
}

func replyDSRPrinter() string {
	return "\x1b[?11n"
}
