package main

// main is the entry point of the application. Command setup lives in root.go.
func main() {
	Execute()
}
