package main

import (
	"os"
	_ "time/tzdata"

	"coursecal/internal/cli"
	appLog "coursecal/internal/log"
)

var version = "dev"

func main() {
	root := cli.NewRootCmd(version, nil)
	if err := root.Execute(); err != nil {
		appLog.Error("coursecal failed", err)
		_ = appLog.Default().Sync()
		os.Exit(1)
	}
}
