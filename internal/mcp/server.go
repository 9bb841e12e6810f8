// Package mcp exposes primer design, fragment tailing and Tm as Model
// Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"primertail/internal/appcore"
	"primertail/internal/output"
	"primertail/internal/service"
	"primertail/internal/store"
	"primertail/internal/version"
	"primertail/pkg/api"
)

// Server wraps the MCP server with the primertail tools.
type Server struct {
	mcpServer *server.MCPServer
	svc       service.Service
	store     *store.Store
	logger    *slog.Logger
}

// NewServer registers the tools. st may be nil, in which case list_primers
// is not offered.
func NewServer(settings appcore.Settings, st *store.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		svc:    service.Service{Settings: settings},
		store:  st,
		logger: logger,
	}
	mcpServer := server.NewMCPServer(
		"primertail",
		version.Version,
		server.WithToolCapabilities(true),
	)
	s.registerTools(mcpServer)
	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	concOpts := func(name, what string) mcp.ToolOption {
		return mcp.WithString(name, mcp.Description(what+`, e.g. "1uM" or "500nM"`))
	}

	designTool := mcp.NewTool("design_primers",
		mcp.WithDescription("Design PCR primers amplifying a whole template. Give at most one primer to design only its partner."),
		mcp.WithString("template", mcp.Required(), mcp.Description("Template sequence, 5'->3'")),
		mcp.WithString("template_id", mcp.Description("Template name used in primer descriptions")),
		mcp.WithString("forward", mcp.Description("Existing forward primer")),
		mcp.WithString("reverse", mcp.Description("Existing reverse primer")),
		mcp.WithNumber("target_tm", mcp.Description("Target melting temperature in °C (default 55)")),
		mcp.WithNumber("min_length", mcp.Description("Minimum primer length")),
		mcp.WithString("formula", mcp.Description("Tm formula: bresluc, breslauer86, santalucia or basic")),
		concOpts("fwd_conc", "Forward primer concentration"),
		concOpts("rev_conc", "Reverse primer concentration"),
		mcp.WithString("salt_conc", mcp.Description(`Monovalent salt, e.g. "50mM"`)),
		mcp.WithBoolean("figure", mcp.Description("Also return a text figure of the amplicon")),
	)
	mcpServer.AddTool(designTool, s.handleDesign)

	tailTool := mcp.NewTool("tail_fragments",
		mcp.WithDescription("Design primers for each template fragment and add tails so consecutive fragments overlap for assembly."),
		mcp.WithArray("fragments",
			mcp.Required(),
			mcp.Description("Fragments in assembly order. Each has name and either template (designed, optional forward/reverse/target_tm) or sequence (used as is)."),
			mcp.Items(map[string]any{"type": "object"}),
		),
		mcp.WithNumber("overlap", mcp.Description("Overlap between neighbours in bp (default 35)")),
		mcp.WithNumber("max_link", mcp.Description("Longest fixed fragment absorbed into a tail (default 40)")),
		mcp.WithBoolean("circular", mcp.Description("Also join the last fragment to the first")),
	)
	mcpServer.AddTool(tailTool, s.handleTail)

	tmTool := mcp.NewTool("melting_temperature",
		mcp.WithDescription("Melting temperature of one or more oligos"),
		mcp.WithArray("seqs",
			mcp.Required(),
			mcp.Description("Oligo sequences"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("formula", mcp.Description("Tm formula: bresluc, breslauer86, santalucia or basic")),
		concOpts("primer_conc", "Primer concentration"),
		mcp.WithString("salt_conc", mcp.Description(`Monovalent salt, e.g. "50mM"`)),
	)
	mcpServer.AddTool(tmTool, s.handleTm)

	if s.store != nil {
		listTool := mcp.NewTool("list_primers",
			mcp.WithDescription("List saved primers"),
			mcp.WithString("contains", mcp.Description("Only primers whose sequence contains this")),
		)
		mcpServer.AddTool(listTool, s.handleListPrimers)
	}
}

func (s *Server) handleDesign(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, err := request.RequireString("template"); err != nil {
		return mcp.NewToolResultError("template is required"), nil
	}
	var req api.DesignRequestV1
	if err := bind(request, &req); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := s.svc.Design(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := jsonResult(d.API())
	if err != nil {
		return nil, err
	}
	if request.GetBool("figure", false) {
		res.Content = append(res.Content, mcp.NewTextContent(d.Figure()))
	}
	return res, nil
}

func (s *Server) handleTail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var req api.TailRequestV1
	if err := bind(request, &req); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(req.Fragments) == 0 {
		return mcp.NewToolResultError("fragments is required"), nil
	}
	resp, err := s.svc.Tail(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(resp)
}

func (s *Server) handleTm(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var req api.TmRequestV1
	if err := bind(request, &req); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := s.svc.Tm(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

func (s *Server) handleListPrimers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.store.List(ctx, request.GetString("contains", ""))
	if err != nil {
		s.logger.Error("list primers", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := make([]api.PrimerV1, 0, len(list))
	for _, e := range list {
		out = append(out, output.ToAPIPrimer(e.Primer, "", nil))
	}
	return jsonResult(out)
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// bind decodes the tool arguments into dst through their JSON form, so the
// tools accept exactly the v1 request fields.
func bind(request mcp.CallToolRequest, dst any) error {
	raw, err := json.Marshal(request.GetArguments())
	if err != nil {
		return fmt.Errorf("arguments: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("arguments: %w", err)
	}
	return nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}
