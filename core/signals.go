package core

type Signal any

type YankSignal struct {
	content string
}

func (y YankSignal) Value() string {
	return y.content
}

type PasteSignal struct {
	content string
}

func (p PasteSignal) Value() string {
	return p.content
}

type DeleteSignal struct {
	content string
}

func (d DeleteSignal) Value() string {
	return d.content
}

type UndoSignal struct{}

type RedoSignal struct{}

type MessageSignal struct {
	id    string
	value string
}

func (m MessageSignal) Value() (id, message string) {
	id = m.id
	message = m.value

	return id, message
}

// SaveSignal is emitted after the buffer was handed to the writer, or in place
// of it when no writer is configured.
type SaveSignal struct {
	lines   []string
	written bool
}

func (s SaveSignal) Value() (lines []string, written bool) {
	return s.lines, s.written
}

type QuitSignal struct{}

type ErrorSignal EditorError

func (e ErrorSignal) Value() (id ErrorId, err error) {
	id = e.id
	err = e.err

	return id, err
}

type ModeSignal struct {
	mode Mode
}

func (m ModeSignal) Value() Mode {
	return m.mode
}

type RelativeNumbersSignal struct {
	enabled bool
}

func (r RelativeNumbersSignal) Value() bool {
	return r.enabled
}

func (e *editor) DispatchSignal(signal Signal) {
	select {
	case e.updateSignal <- signal:
	default: // Ignore if the channel is full
	}
}
