// Package mcpserver exposes the assessment catalog and the scoring engine
// as MCP tools, so an assistant can list assessments, show their
// questions and score a set of answers.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/tracking"
)

const instructions = `careerfit runs career readiness assessments.
Call list_assessments to see what is available, describe_assessment to get
the questions and their options, then score_assessment with an answers
object mapping question IDs to values: numbers or option labels for scale
questions, an option label for single-choice questions, true/false for
boolean questions.`

// New creates the MCP server with every tool registered. tracker may be
// nil; when set, results scored with save=true are persisted.
func New(reg *catalog.Registry, tracker *tracking.Tracker, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"careerfit",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	list := NewListTool(reg)
	s.AddTool(list.Definition(), list.Handle)

	describe := NewDescribeTool(reg)
	s.AddTool(describe.Definition(), describe.Handle)

	score := NewScoreTool(reg, tracker)
	s.AddTool(score.Definition(), score.Handle)

	return s
}

// ServeStdio serves s over stdin/stdout until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
