package diag

import (
	mtoken "modernc.org/token"
)

// Locator converts byte offsets of one source text into line/column
// positions.
type Locator struct {
	file *mtoken.File
}

// NewLocator indexes the line starts of src.
func NewLocator(name, src string) *Locator {
	f := mtoken.NewFile(name, len(src))
	f.SetLinesForContent([]byte(src))
	return &Locator{file: f}
}

// Position returns the 1-based line and column of offset. Offsets past the
// end are clamped to the end of the source.
func (l *Locator) Position(offset int) mtoken.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > l.file.Size() {
		offset = l.file.Size()
	}
	pos := l.file.Position(l.file.Pos(offset))
	if pos.Line == 0 {
		// empty source has no line table
		pos.Line, pos.Column = 1, 1
	}
	return pos
}

// Name returns the source name the locator was built for.
func (l *Locator) Name() string { return l.file.Name() }
