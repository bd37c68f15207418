package main

import (
	"fmt"
	"os"

	"github.com/patthomasrick/kubernetes-json-schema/cmd"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/factory"
	"github.com/spf13/viper"
)

func main() {
	// build the root command
	rootCmd, _ := cmd.NewRootCmd(factory.DefaultFactory(), viper.New())

	err := os.MkdirAll("completion", 0755)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	// generate the completions
	err = rootCmd.GenBashCompletionFile("completion/bash.sh")
	if err != nil {
		fmt.Println(err)
	}

	err = rootCmd.GenZshCompletionFile("completion/zsh-completion")
	if err != nil {
		fmt.Println(err)
	}
}
