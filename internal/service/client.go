package service

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// SplitServiceClient is a client for the SplitService.
type SplitServiceClient struct {
	calculate     *connect.Client[CalculateRequest, CalculateResponse]
	exportSummary *connect.Client[ExportSummaryRequest, ExportSummaryResponse]
}

// NewSplitServiceClient constructs a client for the SplitService served at
// baseURL (for example, http://localhost:8080).
func NewSplitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SplitServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec())}, opts...)

	return &SplitServiceClient{
		calculate: connect.NewClient[CalculateRequest, CalculateResponse](
			httpClient, baseURL+CalculateProcedure, opts...,
		),
		exportSummary: connect.NewClient[ExportSummaryRequest, ExportSummaryResponse](
			httpClient, baseURL+ExportSummaryProcedure, opts...,
		),
	}
}

// Calculate calls billsplit.v1.SplitService.Calculate.
func (c *SplitServiceClient) Calculate(ctx context.Context, req *connect.Request[CalculateRequest]) (*connect.Response[CalculateResponse], error) {
	return c.calculate.CallUnary(ctx, req)
}

// ExportSummary calls billsplit.v1.SplitService.ExportSummary.
func (c *SplitServiceClient) ExportSummary(ctx context.Context, req *connect.Request[ExportSummaryRequest]) (*connect.Response[ExportSummaryResponse], error) {
	return c.exportSummary.CallUnary(ctx, req)
}
