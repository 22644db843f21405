package commands

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Example will be written out to a file, .json and .bin
// Filename should have no path and no extension
type Example struct {
	Filename string
	Obj      custody.Persistent
}

// TestGenCmd generates sample binary and json encodings
// of various objects so that clients can test against them.
func TestGenCmd(examples []Example, args []string) error {
	outdir := "testdata"
	if len(args) > 0 {
		outdir = args[0]
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	for _, ex := range examples {
		js, err := json.MarshalIndent(ex.Obj, "", "  ")
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "%s: %s", ex.Filename, err)
		}
		if err := write(outdir, ex.Filename+".json", js); err != nil {
			return err
		}

		bin, err := custody.Marshal(ex.Obj)
		if err != nil {
			return errors.Wrap(err, ex.Filename)
		}
		if err := write(outdir, ex.Filename+".bin", bin); err != nil {
			return err
		}
	}
	return nil
}

func write(dir, name string, data []byte) error {
	if err := ioutil.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
