package main

import (
	"bufio"   // Read confirmation from stdin
	"fmt"     // Prompt output
	"os"      // Stdin
	"strings" // Trim the answer

	"amine_web/internal/config" // Custom import path (Config)
	"amine_web/internal/db"     // Custom import path (Database)
)

// Main entry point for the database reset.
// Drops every table and recreates the schema; requires typing YES to proceed.
func main() {
	cfg := config.LoadConfig() // Load configuration

	fmt.Println("WARNING: this will delete ALL data and rebuild the schema!")
	fmt.Print("Type YES to continue: ")
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	if strings.TrimSpace(answer) != "YES" {
		fmt.Println("Aborted.")
		return
	}
	db.Reset(cfg.DSN()) // Drop and recreate all tables
}
