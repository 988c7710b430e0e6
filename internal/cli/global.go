package cli

import (
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/viant/afs/url"
)

const changeRootFlag = "C"

type globalFlags struct {
	changeRoot string
	verbose    bool
}

func (g *globalFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&g.changeRoot, "change-root", changeRootFlag, "", "change root directory")
	flagSet.BoolVarP(&g.verbose, "verbose", "v", false, "log progress to stderr")
}

// root resolves the directory the document lives in. Absolute paths and
// storage URLs are kept as given; relative paths are joined to wd.
func (g *globalFlags) root(wd string) (string, error) {
	if url.Scheme(g.changeRoot, "") != "" || filepath.IsAbs(g.changeRoot) {
		return g.changeRoot, nil
	}
	return filepath.Abs(filepath.Join(wd, g.changeRoot))
}
