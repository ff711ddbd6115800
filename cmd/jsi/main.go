// Command jsi runs scripts written in the interpreter's JavaScript
// subset.
package main

import "github.com/cwbudde/jsi/cmd/jsi/cmd"

func main() {
	cmd.Execute()
}
