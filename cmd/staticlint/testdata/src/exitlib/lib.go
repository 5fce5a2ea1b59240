package exitlib

import "os"

// Stop exits
func Stop() {
	os.Exit(2) // want "os.Exit call outside func main"
}
