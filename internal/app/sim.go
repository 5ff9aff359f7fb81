package app

import (
	"github.com/relabs-tech/starrun/internal/accel"
	"github.com/relabs-tech/starrun/internal/input"
	"github.com/relabs-tech/starrun/internal/output"
)

// RunSim plays the game against the mock accelerometer with all commands
// logged to the console. No hardware needed; the difficulty menu auto-locks
// after the inactivity timeout and the swaying mock source does the rest.
func RunSim() error {
	src := accel.NewMockSource()
	encoder := &input.ScriptedEncoder{}
	return RunLoop(src, encoder, output.ConsoleSink{})
}
