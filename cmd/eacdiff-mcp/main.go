package main

import (
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ludo-technologies/eacdiff/internal/config"
	"github.com/ludo-technologies/eacdiff/internal/version"
	"github.com/ludo-technologies/eacdiff/mcp"
)

func main() {
	// Set up logging to stderr (MCP uses stdout for JSON-RPC)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// EACDIFF_CONFIG names a config file; otherwise one is discovered from
	// the working directory
	configPath := os.Getenv("EACDIFF_CONFIG")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("WARNING: Using default configuration: %v", err)
		cfg = config.DefaultConfig()
	}

	server := mcpserver.NewMCPServer(
		version.Name,
		version.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterToolsWith(server, mcp.NewHandlerSet(mcp.NewDependencies(cfg, configPath)))

	log.Printf("Starting %s MCP server v%s\n", version.Name, version.Version)
	log.Println("Registered tools:")
	log.Printf("  - %s: Compare two versions of C# source text\n", mcp.ToolCompareSources)
	log.Printf("  - %s: Compare two C# files or directory trees\n", mcp.ToolCompareFiles)
	log.Printf("  - %s: List the members compared across versions\n", mcp.ToolListMembers)
	log.Println("")
	log.Println("Server ready - waiting for MCP client connection...")

	// Blocks until the client disconnects
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
