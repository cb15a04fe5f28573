// ABOUTME: MCP tool implementations for interval planning.
// ABOUTME: Provides add, list, delete and clear operations on a date's intervals.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/intervals/internal/models"
	"github.com/harperreed/intervals/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_interval",
		Description: "Append a Run or Walk interval to a date's workout",
	}, s.handleAddInterval)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_intervals",
		Description: "List the intervals planned for a date in run order",
	}, s.handleListIntervals)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_interval",
		Description: "Delete one interval by ID or ID prefix",
	}, s.handleDeleteInterval)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "clear_intervals",
		Description: "Remove every interval planned for a date",
	}, s.handleClearIntervals)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_dates",
		Description: "List dates that have intervals, with counts and total time",
	}, s.handleListDates)
}

type addIntervalInput struct {
	Kind    string  `json:"kind" jsonschema:"Interval kind: Run or Walk"`
	Seconds float64 `json:"seconds" jsonschema:"Duration in seconds, greater than zero"`
	Date    string  `json:"date,omitempty" jsonschema:"Date as YYYY-MM-DD, today, yesterday or tomorrow (default today)"`
}

type intervalOutput struct {
	ID      string  `json:"id"`
	Date    string  `json:"date"`
	Kind    string  `json:"kind"`
	Seconds float64 `json:"seconds"`
	Message string  `json:"message"`
}

type dateInput struct {
	Date string `json:"date,omitempty" jsonschema:"Date as YYYY-MM-DD, today, yesterday or tomorrow (default today)"`
}

type intervalView struct {
	ID      string  `json:"id"`
	Kind    string  `json:"kind"`
	Seconds float64 `json:"seconds"`
}

type listIntervalsOutput struct {
	Date         string         `json:"date"`
	Intervals    []intervalView `json:"intervals"`
	Count        int            `json:"count"`
	TotalSeconds float64        `json:"total_seconds"`
}

type deleteIntervalInput struct {
	ID   string `json:"id" jsonschema:"Interval ID or unique prefix"`
	Date string `json:"date,omitempty" jsonschema:"Date as YYYY-MM-DD, today, yesterday or tomorrow (default today)"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type listDatesInput struct {
	Since string `json:"since,omitempty" jsonschema:"Only include dates on or after this YYYY-MM-DD"`
}

type dateSummary struct {
	Date         string  `json:"date"`
	Count        int     `json:"count"`
	TotalSeconds float64 `json:"total_seconds"`
}

type listDatesOutput struct {
	Dates []dateSummary `json:"dates"`
}

func (s *Server) dateKey(input string) (string, error) {
	return models.ParseDateKey(input, s.now())
}

func (s *Server) handleAddInterval(ctx context.Context, req *mcp.CallToolRequest, input addIntervalInput) (*mcp.CallToolResult, intervalOutput, error) {
	key, err := s.dateKey(input.Date)
	if err != nil {
		return nil, intervalOutput{}, err
	}

	kind, err := models.ParseKind(input.Kind)
	if err != nil {
		return nil, intervalOutput{}, err
	}

	iv, err := s.store.AddSeconds(key, kind, input.Seconds)
	if err != nil {
		return nil, intervalOutput{}, fmt.Errorf("failed to add interval: %w", err)
	}

	return nil, intervalOutput{
		ID:      iv.ShortID(),
		Date:    key,
		Kind:    string(iv.Kind),
		Seconds: iv.DurationSeconds,
		Message: fmt.Sprintf("Added %s %gs on %s (ID: %s)", iv.Kind, iv.DurationSeconds, key, iv.ShortID()),
	}, nil
}

func (s *Server) handleListIntervals(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, listIntervalsOutput, error) {
	key, err := s.dateKey(input.Date)
	if err != nil {
		return nil, listIntervalsOutput{}, err
	}

	// The CLI may have changed the same backend since the last call.
	_ = s.store.Refresh()
	seq := s.store.Get(key)
	views := make([]intervalView, len(seq))
	for i, iv := range seq {
		views[i] = intervalView{ID: iv.ID.String(), Kind: string(iv.Kind), Seconds: iv.DurationSeconds}
	}
	return nil, listIntervalsOutput{
		Date:         key,
		Intervals:    views,
		Count:        len(seq),
		TotalSeconds: seq.TotalSeconds(),
	}, nil
}

func (s *Server) handleDeleteInterval(ctx context.Context, req *mcp.CallToolRequest, input deleteIntervalInput) (*mcp.CallToolResult, simpleOutput, error) {
	key, err := s.dateKey(input.Date)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	_ = s.store.Refresh()
	iv, err := s.store.Resolve(key, input.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, simpleOutput{}, fmt.Errorf("interval not found on %s: %s", key, input.ID)
	}
	if err != nil {
		return nil, simpleOutput{}, err
	}

	s.store.Remove(key, iv.ID)
	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted %s %gs (ID: %s)", iv.Kind, iv.DurationSeconds, iv.ShortID()),
	}, nil
}

func (s *Server) handleClearIntervals(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, simpleOutput, error) {
	key, err := s.dateKey(input.Date)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	_ = s.store.Refresh()
	n := len(s.store.Get(key))
	s.store.Clear(key)
	return nil, simpleOutput{
		Message: fmt.Sprintf("Cleared %d interval(s) on %s", n, key),
	}, nil
}

func (s *Server) handleListDates(ctx context.Context, req *mcp.CallToolRequest, input listDatesInput) (*mcp.CallToolResult, listDatesOutput, error) {
	out := listDatesOutput{Dates: []dateSummary{}}
	_ = s.store.Refresh()
	for _, key := range s.store.Dates() {
		if input.Since != "" && key < input.Since {
			continue
		}
		seq := s.store.Get(key)
		out.Dates = append(out.Dates, dateSummary{
			Date:         key,
			Count:        len(seq),
			TotalSeconds: seq.TotalSeconds(),
		})
	}
	return nil, out, nil
}
