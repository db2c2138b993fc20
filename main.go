package main

import "github.com/minishdev/minish/cmd"

func main() {
	cmd.Execute()
}
