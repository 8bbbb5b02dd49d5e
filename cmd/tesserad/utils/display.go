// Package utils contains utility functions for the Tessera daemon.
package utils

import (
	"fmt"
)

// DisplayLogo prints the Tessera ASCII logo with version information
func DisplayLogo(version string) {
	fmt.Println()
	fmt.Println(` ░░░░░░░░░░░░░░░░░░░░░░░░░░░░░
 ░▀█▀░█▀▀░█▀▀░█▀▀░█▀▀░█▀▄░█▀█░
 ░░█░░█▀▀░▀▀█░▀▀█░█▀▀░█▀▄░█▀█░
 ░░▀░░▀▀▀░▀▀▀░▀▀▀░▀▀▀░▀░▀░▀░▀░
 ░░░░░░░░░░░░░░░░░░░░░░░░░░░░░`)
	fmt.Printf("\n Tessera v%s - Decentralized Compute Network\n", version)
	fmt.Println(" Rent out computing power, get paid in GNT")
	fmt.Println()
}
