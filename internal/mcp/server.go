package mcp

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a3tai/mcp-pdf-formfill/internal/config"
	"github.com/a3tai/mcp-pdf-formfill/internal/descriptions"
	"github.com/a3tai/mcp-pdf-formfill/internal/form"
	"github.com/a3tai/mcp-pdf-formfill/internal/pdf"
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, pdfService *pdf.Service) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		mcpServer:  mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	pathParam := mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Path to the PDF form, absolute or relative to the configured directory"),
	)
	outputParam := mcp.WithString("output",
		mcp.Description("Output file, relative to the output directory (defaults to <input>_filled.pdf)"),
	)

	s.mcpServer.AddTool(mcp.NewTool(
		"pdf_form_fields",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_form_fields")),
		pathParam,
	), s.handlePDFFormFields)

	s.mcpServer.AddTool(mcp.NewTool(
		"pdf_form_field_state",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_form_field_state")),
		pathParam,
		mcp.WithString("field",
			mcp.Required(),
			mcp.Description("Full name of the field, e.g. Person[0].Name"),
		),
	), s.handlePDFFormFieldState)

	s.mcpServer.AddTool(mcp.NewTool(
		"pdf_form_fill",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_form_fill")),
		pathParam,
		mcp.WithObject("values",
			mcp.Required(),
			mcp.Description("Field names mapped to values; a JSON object or a JSON string"),
		),
		outputParam,
	), s.handlePDFFormFill)

	s.mcpServer.AddTool(mcp.NewTool(
		"pdf_form_set_choice",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_form_set_choice")),
		pathParam,
		mcp.WithString("field",
			mcp.Required(),
			mcp.Description("Full name of the list box or combo box"),
		),
		mcp.WithArray("choices",
			mcp.Required(),
			mcp.Description("Options to select; empty clears the selection"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		outputParam,
	), s.handlePDFFormSetChoice)

	s.mcpServer.AddTool(mcp.NewTool(
		"pdf_validate_file",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_validate_file")),
		pathParam,
	), s.handlePDFValidateFile)

	s.mcpServer.AddTool(mcp.NewTool(
		"pdf_search_directory",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_search_directory")),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query for fuzzy matching"),
		),
		mcp.WithBoolean("forms_only",
			mcp.Description("Only report PDFs that carry a fillable form"),
		),
	), s.handlePDFSearchDirectory)
}

// Handler functions
func (s *Server) handlePDFFormFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.PDFFormFields(pdf.PDFFormFieldsRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatPDFFormFieldsResult(result)), nil
}

func (s *Server) handlePDFFormFieldState(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	field, err := request.RequireString("field")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.PDFFormFieldState(pdf.PDFFormFieldStateRequest{Path: path, Field: field})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatField(result.Field)), nil
}

func (s *Server) handlePDFFormFill(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	values, err := valuesArgument(args["values"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := pdf.PDFFormFillRequest{
		Path:   path,
		Values: values,
		Output: stringArgument(args, "output"),
	}
	result, err := s.pdfService.PDFFormFill(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatWriteResult("Filled", result)), nil
}

func (s *Server) handlePDFFormSetChoice(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	field, err := request.RequireString("field")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	choices, err := choicesArgument(args["choices"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := pdf.PDFFormSetChoiceRequest{
		Path:    path,
		Field:   field,
		Choices: choices,
		Output:  stringArgument(args, "output"),
	}
	result, err := s.pdfService.PDFFormSetChoice(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatWriteResult("Updated "+field+" in", result)), nil
}

func (s *Server) handlePDFValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.PDFValidateFile(pdf.PDFValidateFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	switch {
	case !result.Valid:
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	case result.HasForm:
		responseText = fmt.Sprintf("PDF file %s is valid (%d pages) and has a form with %d fields",
			result.Path, result.Pages, result.FieldCount)
	default:
		responseText = fmt.Sprintf("PDF file %s is valid (%d pages) but has no fillable form", result.Path, result.Pages)
	}
	if result.Permissions != "" {
		responseText += fmt.Sprintf("\nEncrypted, permitted operations: %s", result.Permissions)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handlePDFSearchDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	req := pdf.PDFSearchDirectoryRequest{
		Directory: stringArgument(args, "directory"),
		Query:     stringArgument(args, "query"),
	}
	if formsOnly, ok := args["forms_only"].(bool); ok {
		req.FormsOnly = formsOnly
	}

	result, err := s.pdfService.PDFSearchDirectory(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.TotalCount == 0 {
		responseText = fmt.Sprintf("No PDF files found in directory: %s", result.Directory)
		if result.SearchQuery != "" {
			responseText += fmt.Sprintf(" (searched for: %s)", result.SearchQuery)
		}
	} else {
		responseText = s.formatPDFSearchDirectoryResult(result)
	}

	return mcp.NewToolResultText(responseText), nil
}

// Argument helpers

func stringArgument(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// valuesArgument accepts an object or a JSON/YAML encoded string
func valuesArgument(v any) (map[string]string, error) {
	switch v := v.(type) {
	case map[string]any:
		return pdf.StringValues(v)
	case string:
		return pdf.ParseValues([]byte(v))
	case nil:
		return nil, fmt.Errorf("required argument \"values\" not found")
	default:
		return nil, fmt.Errorf("values must be an object, got %T", v)
	}
}

// choicesArgument accepts an array of strings or a single string
func choicesArgument(v any) ([]string, error) {
	switch v := v.(type) {
	case []any:
		choices := make([]string, 0, len(v))
		for _, c := range v {
			s, ok := c.(string)
			if !ok {
				return nil, fmt.Errorf("choices must be strings, got %T", c)
			}
			choices = append(choices, s)
		}
		return choices, nil
	case []string:
		return v, nil
	case string:
		return []string{v}, nil
	case nil:
		return nil, fmt.Errorf("required argument \"choices\" not found")
	default:
		return nil, fmt.Errorf("choices must be an array, got %T", v)
	}
}

// Formatting methods
func (s *Server) formatPDFFormFieldsResult(result *pdf.PDFFormFieldsResult) string {
	if result.TotalCount == 0 {
		return fmt.Sprintf("No fillable fields found in %s", result.Path)
	}

	text := fmt.Sprintf("Found %d field(s) in %s\n\n", result.TotalCount, result.Path)
	for i, field := range result.Fields {
		text += fmt.Sprintf("%d. %s", i+1, formatField(field))
	}
	return text
}

func formatField(field pdf.FieldInfo) string {
	text := fmt.Sprintf("%s (%s)\n", field.Name, field.Type)

	switch st := field.State.(type) {
	case form.TextState:
		text += fmt.Sprintf("   Value: %q\n", st.Text)
	case form.CheckBoxState:
		text += fmt.Sprintf("   Checked: %t\n", st.Checked)
	case form.RadioState:
		text += fmt.Sprintf("   Selected: %s\n", st.Selected)
		text += fmt.Sprintf("   Options: %s\n", strings.Join(st.Options, ", "))
	case form.ListBoxState:
		text += formatChoice(st.Selected, st.Options, st.MultiSelect)
	case form.ComboBoxState:
		text += formatChoice(st.Selected, st.Options, st.MultiSelect)
	case form.ButtonState:
		text += "   Push button, no value\n"
	}
	return text
}

func formatChoice(selected, options []string, multiSelect bool) string {
	text := fmt.Sprintf("   Selected: %s\n", strings.Join(selected, ", "))
	text += fmt.Sprintf("   Options: %s\n", strings.Join(options, ", "))
	if multiSelect {
		text += "   Multiple selection allowed\n"
	}
	return text
}

func formatWriteResult(verb string, result *pdf.PDFFormWriteResult) string {
	return fmt.Sprintf("%s %s\nOutput: %s\nSize: %d bytes\n", verb, result.Path, result.Output, result.Size)
}

func (s *Server) formatPDFSearchDirectoryResult(result *pdf.PDFSearchDirectoryResult) string {
	text := fmt.Sprintf("Found %d PDF file(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.SearchQuery != "" {
		text += fmt.Sprintf("Search query: %s\n", result.SearchQuery)
	}
	text += "\nFiles:\n"

	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if file.HasForm {
			text += fmt.Sprintf("   Form: %d field(s)\n", file.FieldCount)
		} else {
			text += "   Form: none\n"
		}
		if i < len(result.Files)-1 {
			text += "\n"
		}
	}

	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting PDF form MCP server in stdio mode")
		log.Printf("PDF directory: %s", s.config.PDFDirectory)
		log.Printf("Output directory: %s", s.config.OutputDir())
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode serves MCP over SSE on the configured address
func (s *Server) runServerMode(ctx context.Context) error {
	sse := server.NewSSEServer(s.mcpServer,
		server.WithBaseURL("http://"+s.config.Address()))

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting PDF form MCP server on %s", s.config.Address())
		errCh <- sse.Start(s.config.Address())
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
		if err := sse.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		return nil
	}
}
