// Command animefmt runs the anime card formatter as a Telegram bot, an MCP
// server or a one-shot CLI.
package main

func main() {
	Execute()
}
