// Command wheelctl renders, inspects and scores a wheel of life from the terminal.
package main

import "github.com/elektrokombinacija/lifewheel/internal/cli"

func main() {
	cli.Execute()
}
