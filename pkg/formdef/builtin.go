package formdef

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed forms/*.yaml
var builtinFS embed.FS

var (
	builtinOnce  sync.Once
	builtinStore *Store
	builtinErr   error
)

func builtinFiles() fs.FS {
	sub, err := fs.Sub(builtinFS, "forms")
	if err != nil {
		return builtinFS
	}
	return sub
}

// Builtin returns the embedded demo forms.
func Builtin() (*Store, error) {
	builtinOnce.Do(func() {
		builtinStore, builtinErr = LoadFS(builtinFiles())
	})
	return builtinStore, builtinErr
}
