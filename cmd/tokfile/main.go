/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ssargent/tokfile/cmd/tokfile/cmd"

func main() {
	cmd.Execute()
}
