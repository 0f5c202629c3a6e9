// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Boardhub tools for LLM integration via stdio transport.
// Every tool acts on behalf of one account.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Weesdome/Boardhub/internal/apperr"
	"github.com/Weesdome/Boardhub/internal/boardservice"
	"github.com/Weesdome/Boardhub/internal/models"
)

const outlineURI = "boardhub://outline-format"

// Server wraps the MCP server with Boardhub tools.
type Server struct {
	mcp  *server.MCPServer
	svc  *boardservice.Service
	user models.Session
}

// New creates an MCP server whose tools act as user.
func New(svc *boardservice.Service, user models.Session, version string) *Server {
	s := &Server{svc: svc, user: user}

	s.mcp = server.NewMCPServer(
		"Boardhub",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_boards",
		mcp.WithDescription("List the user's boards, newest first."),
	), s.listBoards)

	s.mcp.AddTool(mcp.NewTool("search_boards",
		mcp.WithDescription("Find boards whose title or description contains the query."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchBoards)

	s.mcp.AddTool(mcp.NewTool("get_board",
		mcp.WithDescription("Read a board with its lists and cards, in display order."),
		mcp.WithString("board_id", mcp.Required(), mcp.Description("Board ID")),
	), s.getBoard)

	s.mcp.AddTool(mcp.NewTool("create_board",
		mcp.WithDescription("Create an empty board."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Board title")),
		mcp.WithString("description", mcp.Description("Optional description")),
	), s.createBoard)

	s.mcp.AddTool(mcp.NewTool("create_list",
		mcp.WithDescription("Append a list to the end of a board."),
		mcp.WithString("board_id", mcp.Required(), mcp.Description("Board ID")),
		mcp.WithString("title", mcp.Required(), mcp.Description("List title")),
	), s.createList)

	s.mcp.AddTool(mcp.NewTool("create_card",
		mcp.WithDescription("Append a card to the end of a list."),
		mcp.WithString("board_id", mcp.Required(), mcp.Description("Board ID")),
		mcp.WithString("list_id", mcp.Required(), mcp.Description("List ID")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Card title")),
		mcp.WithString("description", mcp.Description("Optional card description")),
	), s.createCard)

	s.mcp.AddTool(mcp.NewTool("move_item",
		mcp.WithDescription("Move a list or card the way a drag-and-drop would. "+
			"Dropping a list on a list takes that list's position. Dropping a card on a list "+
			"appends it there. Dropping a card on a card inserts it before that card."),
		mcp.WithString("board_id", mcp.Required(), mcp.Description("Board ID")),
		mcp.WithString("active_id", mcp.Required(), mcp.Description("ID of the list or card being moved")),
		mcp.WithString("over_id", mcp.Required(), mcp.Description("ID of the list or card it is dropped on")),
		mcp.WithBoolean("preview", mcp.Description("Return the result without saving it")),
	), s.moveItem)

	s.mcp.AddTool(mcp.NewTool("import_board",
		mcp.WithDescription("Create a board from a Markdown outline. "+
			"Read the format first via get_outline_contract or the "+outlineURI+" resource."),
		mcp.WithString("markdown", mcp.Required(), mcp.Description("Outline following the Boardhub outline format")),
	), s.importBoard)

	s.mcp.AddTool(mcp.NewTool("get_outline_contract",
		mcp.WithDescription("Returns the Markdown outline format accepted by import_board."),
	), s.getOutlineContract)

	s.mcp.AddResource(
		mcp.NewResource(outlineURI, "Outline Format",
			mcp.WithResourceDescription("Markdown outline format for importing boards."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readOutlineResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// jsonResult renders v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// errorResult turns a service error into a tool error message.
func errorResult(err error) (*mcp.CallToolResult, error) {
	if errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError("not found: " + err.Error()), nil
	}
	return mcp.NewToolResultError(err.Error()), nil
}

func (s *Server) listBoards(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boards, err := s.svc.ListBoards(ctx, s.user.UserID)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(boards)
}

func (s *Server) searchBoards(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	boards, err := s.svc.SearchBoards(ctx, s.user.UserID, query, 0)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(boards)
}

func (s *Server) getBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := s.svc.GetBoard(ctx, s.user.UserID, id)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(b)
}

func (s *Server) createBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := s.svc.CreateBoard(ctx, s.user.UserID, boardservice.BoardInput{
		Title:       title,
		Description: req.GetString("description", ""),
	})
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(b)
}

func (s *Server) createList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boardID, err := req.RequireString("board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	l, err := s.svc.CreateList(ctx, s.user.UserID, boardID, boardservice.ItemInput{Title: title})
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(l)
}

func (s *Server) createCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boardID, err := req.RequireString("board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	listID, err := req.RequireString("list_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, err := s.svc.CreateCard(ctx, s.user.UserID, boardID, listID, boardservice.ItemInput{
		Title:       title,
		Description: req.GetString("description", ""),
	})
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(c)
}

func (s *Server) moveItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boardID, err := req.RequireString("board_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	activeID, err := req.RequireString("active_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	overID, err := req.RequireString("over_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.Move(ctx, s.user.UserID, boardID, boardservice.MoveInput{
		ActiveID: activeID,
		OverID:   overID,
		Commit:   !req.GetBool("preview", false),
	})
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(res)
}

func (s *Server) importBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	md, err := req.RequireString("markdown")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := s.svc.ImportMarkdown(ctx, s.user.UserID, []byte(md))
	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("imported board %s (%s) with %d lists", b.ID, b.Title, len(b.Lists))), nil
}

func (s *Server) getOutlineContract(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(OutlineFormatContract), nil
}

func (s *Server) readOutlineResource(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      outlineURI,
			MIMEType: "text/markdown",
			Text:     OutlineFormatContract,
		},
	}, nil
}
