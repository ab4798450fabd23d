/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/hemantthp85-ai/Civic-1/cmd"

func main() {
	cmd.Execute()
}
