package model

import (
	"bufio"
	"io"
	"strings"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	ansiClear   = "\x1b[H\x1b[2J"
	ansiReverse = "\x1b[7m"
	ansiReset   = "\x1b[0m"

	// raw terminals do not translate \n
	lineBreak = "\r\n"
)

// Frame is everything the renderer draws in one pass
type Frame struct {
	// Board is the serialized board, as produced by Board.String
	Board      string
	Cursor     Point
	ShowCursor bool
	Status     []string
	// Help replaces the board when not empty
	Help []string
}

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct{}

// Display renders the frame to w
func (r *TerminalRenderer) Display(w io.Writer, f Frame) error {
	bw := bufio.NewWriter(w)

	if len(f.Help) > 0 {
		for _, line := range f.Help {
			bw.WriteString(line)
			bw.WriteString(lineBreak)
		}
	} else {
		for x, row := range strings.Split(strings.TrimSuffix(f.Board, "\n"), "\n") {
			for y, c := range row {
				cursorHere := f.ShowCursor && f.Cursor.X == x && f.Cursor.Y == y
				if cursorHere {
					bw.WriteString(ansiReverse)
				}
				if c == aliveChar {
					bw.WriteString(gridPosBlock)
				} else {
					bw.WriteString(gridPosEmpty)
				}
				if cursorHere {
					bw.WriteString(ansiReset)
				}
			}
			bw.WriteString(lineBreak)
		}
	}

	for _, line := range f.Status {
		bw.WriteString(line)
		bw.WriteString(lineBreak)
	}
	return bw.Flush()
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear(w io.Writer) error {
	_, err := io.WriteString(w, ansiClear)
	return err
}
