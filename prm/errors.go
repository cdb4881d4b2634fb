package prm

import (
	"fmt"

	crimm "github.com/stanislc/crimm"
)

//errDecorate asserts that the error implements crimm.Error and decorates
//it with the caller's name before returning it. Calling it with an error
//from another package is a programming mistake and panics.
func errDecorate(err error, caller string) error {
	err2 := err.(crimm.Error)
	err2.Decorate(caller)
	return err2
}

// Error is the general structure for parameter-file errors. It fulfills
// crimm.Error.
type Error struct {
	message  string
	filename string //the file with problems, or the empty string
	line     int    //the offending line number, or 0
	deco     []string
}

func (err Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("prm: %s", err.message)
	}
	if err.line > 0 {
		return fmt.Sprintf("prm: file %s, line %d: %s", err.filename, err.line, err.message)
	}
	return fmt.Sprintf("prm: file %s: %s", err.filename, err.message)
}

func (err Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since err.deco is a slice, and hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the name of the file the error relates to, if any.
func (err Error) FileName() string { return err.filename }
