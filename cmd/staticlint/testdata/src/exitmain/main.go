package main

import "os"

func fail() {
	os.Exit(1) // want "os.Exit call outside func main"
}

func main() {
	defer fail()
	os.Exit(0)
}
