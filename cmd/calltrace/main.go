// Command calltrace runs a traced sample call
package main

func main() {
	Execute()
}
