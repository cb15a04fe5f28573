// ABOUTME: MCP resource implementations for interval data.
// ABOUTME: Provides intervals://today and intervals://all resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/intervals/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI = "intervals://today"
	allURI   = "intervals://all"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Intervals",
		Description: "Intervals planned for today in run order",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         allURI,
		Name:        "All Intervals",
		Description: "Full export of every date's intervals",
		MIMEType:    "application/json",
	}, s.handleAllResource)
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	key := models.DateKey(s.now())
	_ = s.store.Refresh()
	seq := s.store.Get(key)

	result := map[string]interface{}{
		"date":          key,
		"intervals":     seq,
		"count":         len(seq),
		"total_seconds": seq.TotalSeconds(),
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return jsonResource(todayURI, data), nil
}

func (s *Server) handleAllResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	_ = s.store.Refresh()
	data, err := s.store.ExportJSON("")
	if err != nil {
		return nil, fmt.Errorf("failed to export intervals: %w", err)
	}
	return jsonResource(allURI, data), nil
}

func jsonResource(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}
