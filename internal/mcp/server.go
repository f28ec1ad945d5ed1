// Package mcp exposes window session orchestration as MCP tools over
// stdio, so AI agents can load configurations and inspect the windows
// they produced.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/crashvb/xsessionp/internal/config"
	"github.com/crashvb/xsessionp/internal/session"
)

const (
	ServerName    = "xsessionp"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for declarative window instantiation.
type Server struct {
	mcpServer *mcpsdk.Server
	session   *session.Session
}

// NewServer creates an MCP server driving the given session.
func NewServer(sess *session.Session) *Server {
	s := &Server{session: sess}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "load_configuration",
		Description: "Load an xsessionp configuration by name or path: launch the declared commands, tag the resulting windows with metadata, and apply desktop, geometry, position, and tiling placement. Optionally restrict processing to specific window indexes.",
	}, s.handleLoadConfiguration)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_configurations",
		Description: "List the configuration files discoverable in the xsessionp configuration directories.",
	}, s.handleListConfigurations)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the windows previously instantiated by xsessionp, identified by the metadata property they carry.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Politely close an xsessionp-managed window by X window id.",
	}, s.handleCloseWindow)
}

type loadConfigurationInput struct {
	Config  string `json:"config" jsonschema:"configuration name or path"`
	Indexes string `json:"indexes,omitempty" jsonschema:"optional comma separated window index list, ranges allowed (e.g. 0,2,4-7)"`
}

type loadConfigurationOutput struct {
	Path      string `json:"path"`
	Processed int    `json:"processed"`
	Failures  int    `json:"failures"`
}

func (s *Server) handleLoadConfiguration(ctx context.Context, req *mcpsdk.CallToolRequest, args loadConfigurationInput) (*mcpsdk.CallToolResult, loadConfigurationOutput, error) {
	path, err := config.Resolve(args.Config)
	if err != nil {
		return nil, loadConfigurationOutput{}, err
	}
	document, err := config.Parse(path)
	if err != nil {
		return nil, loadConfigurationOutput{}, err
	}

	var options session.LoadOptions
	if strings.TrimSpace(args.Indexes) != "" {
		options.Indices, err = config.ParseIndexList([]string{args.Indexes})
		if err != nil {
			return nil, loadConfigurationOutput{}, err
		}
	}

	result, err := s.session.Load(document, options)
	if err != nil {
		return nil, loadConfigurationOutput{}, err
	}
	out := loadConfigurationOutput{
		Path:      path,
		Processed: result.Processed,
		Failures:  result.Failures,
	}
	if result.Failures > 0 {
		return nil, out, fmt.Errorf("%d of %d windows failed", result.Failures, result.Processed)
	}
	return nil, out, nil
}

type listConfigurationsInput struct{}

type listConfigurationsOutput struct {
	Configurations []string `json:"configurations"`
}

func (s *Server) handleListConfigurations(ctx context.Context, req *mcpsdk.CallToolRequest, args listConfigurationsInput) (*mcpsdk.CallToolResult, listConfigurationsOutput, error) {
	documents, err := config.ListDocuments()
	if err != nil {
		return nil, listConfigurationsOutput{}, err
	}
	return nil, listConfigurationsOutput{Configurations: documents}, nil
}

type listWindowsInput struct{}

type windowInfo struct {
	ID      uint32 `json:"id"`
	Name    string `json:"name,omitempty"`
	Title   string `json:"title,omitempty"`
	Desktop int    `json:"desktop"`
	PID     int    `json:"pid,omitempty"`
}

type listWindowsOutput struct {
	Windows []windowInfo `json:"windows"`
}

func (s *Server) handleListWindows(ctx context.Context, req *mcpsdk.CallToolRequest, args listWindowsInput) (*mcpsdk.CallToolResult, listWindowsOutput, error) {
	tagged, err := s.session.FindTaggedWindows()
	if err != nil {
		return nil, listWindowsOutput{}, err
	}

	backend := s.session.Backend()
	out := listWindowsOutput{Windows: make([]windowInfo, 0, len(tagged))}
	for _, window := range tagged {
		info := windowInfo{
			ID:   uint32(window.ID),
			Name: window.Metadata.Name(),
		}
		if title, err := backend.WindowName(window.ID); err == nil {
			info.Title = title
		}
		if desktop, err := backend.WindowDesktop(window.ID); err == nil {
			info.Desktop = desktop
		}
		if pid, err := backend.WindowPID(window.ID); err == nil {
			info.PID = pid
		}
		out.Windows = append(out.Windows, info)
	}
	return nil, out, nil
}

type closeWindowInput struct {
	WindowID uint32 `json:"window_id" jsonschema:"X window id of the window to close"`
}

type closeWindowOutput struct {
	Closed uint32 `json:"closed"`
}

func (s *Server) handleCloseWindow(ctx context.Context, req *mcpsdk.CallToolRequest, args closeWindowInput) (*mcpsdk.CallToolResult, closeWindowOutput, error) {
	windowID := xproto.Window(args.WindowID)
	if _, err := s.session.FindTaggedWindow(windowID); err != nil {
		return nil, closeWindowOutput{}, err
	}
	if err := s.session.Backend().CloseWindow(windowID); err != nil {
		return nil, closeWindowOutput{}, fmt.Errorf("failed to close window %d: %w", args.WindowID, err)
	}
	return nil, closeWindowOutput{Closed: args.WindowID}, nil
}
