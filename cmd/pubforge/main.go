// Package main is the entry point for pubforge.
package main

func main() {
	Execute()
}
