package cmd

import (
	"fmt"

	"github.com/go-drift/metaloader/pkg/loaders"
)

func init() {
	RegisterCommand(&Command{
		Name:  "list",
		Short: "List the available loaders",
		Long: `List every registered loader with its intrinsic size in logical
pixels and the curve and speed multiplier from the config. A curve of
"default" is the loader's own easing.`,
		Usage: "metaloader list",
		Run:   runList,
	})
}

func runList(env *Env, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("list takes no arguments")
	}
	for _, name := range loaders.Names() {
		l, err := loaders.New(name)
		if err != nil {
			return err
		}
		size := l.IntrinsicSize()
		curve := env.Config.Curve[name]
		if curve == "" {
			curve = "default"
		}
		fmt.Fprintf(env.Stdout, "  %-12s %7.1f x %-7.1f curve %-22s speed %.2g\n",
			name, size.Width, size.Height, curve, env.Config.SpeedFor(name))
	}
	return nil
}
