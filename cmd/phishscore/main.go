// Package main provides the entry point for the phishscore CLI.
//
// phishscore assigns a phishing-risk confidence score to URLs by combining
// lexical heuristics with an optional local classifier.
//
// Usage:
//
//	phishscore scan <url>
//	phishscore scan --list <file>
//	phishscore serve --addr :5000
//
// See --help for all available options.
package main

// main is the entry point for phishscore.
func main() {
	Execute()
}
