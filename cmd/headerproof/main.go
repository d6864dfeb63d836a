// Command headerproof verifies one Bitcoin block header read from stdin and
// writes the ABI encoded (hash, merkleRoot, prevBlockHash, work) envelope to
// stdout.
package main

import (
	"os"

	"github.com/bsv-blockchain/headerproof/cmd/headerproof/headerproof"
)

func main() {
	os.Exit(headerproof.Run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}
