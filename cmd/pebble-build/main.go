package main

import (
	"os"

	internalcmd "github.com/YclepticStudios/pebble-build/internal/cmd"
)

func main() {
	os.Exit(internalcmd.Execute())
}
