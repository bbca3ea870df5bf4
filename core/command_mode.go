package core

import "errors"

func enterCommand(e *editor, _ Key) Mode {
	e.count = 0
	e.commandInput = nil
	e.UpdateCommand(":") // Show prompt
	return NoMode
}

func commandInput(e *editor, k Key) Mode {
	e.commandInput = append(e.commandInput, k.Rune)
	e.UpdateCommand(":" + string(e.commandInput))
	return NoMode
}

// commandBackspace on an empty command line goes back to normal mode
func commandBackspace(e *editor, _ Key) Mode {
	if len(e.commandInput) == 0 {
		e.UpdateCommand("")
		return NormalMode
	}
	e.commandInput = e.commandInput[:len(e.commandInput)-1]
	e.UpdateCommand(":" + string(e.commandInput))
	return NoMode
}

func commandExecute(e *editor, _ Key) Mode {
	cmd := string(e.commandInput)
	e.commandInput = nil
	e.UpdateCommand("")

	err := e.ExecuteCommand(cmd)
	var reported *EditorError
	switch {
	case err == nil, errors.As(err, &reported):
	case errors.Is(err, ErrNoChangesToSave):
		e.DispatchError(ErrNoChangesToSaveId, err)
	default:
		e.DispatchError(ErrInvalidCommandId, err)
	}
	e.cursor = e.cursor.ClampNormal(e.buffer)
	return NoMode
}
