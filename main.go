// Package main is the entry point of the pdvd-changelog service.
package main

import "github.com/ortelius/pdvd-changelog/cmd"

func main() {
	cmd.Execute()
}
