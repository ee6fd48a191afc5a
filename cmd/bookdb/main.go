/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ssargent/bookdb/cmd/bookdb/cmd"

func main() {
	cmd.Execute()
}
