package main

import (
	"fmt"
	"os"

	"github.com/patthomasrick/kubernetes-json-schema/cmd"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/upgrade"
)

var version string

func main() {
	err := upgrade.SetVersion(version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid build version %q: %v\n", version, err)
	}

	os.Exit(cmd.Execute())
}
