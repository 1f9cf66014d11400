// Command tinyasm is the translator and virtual machine CLI for the
// tinyasm assembly language.
package main

func main() {
	Execute()
}
