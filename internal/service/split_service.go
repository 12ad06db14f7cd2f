// Package service exposes the bill calculator over Connect RPC.
package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/money"
	"github.com/mmynk/billsplit/internal/session"
	"github.com/mmynk/billsplit/internal/summary"
)

const (
	// SplitServiceName is the fully-qualified name of the SplitService.
	SplitServiceName = "billsplit.v1.SplitService"

	// CalculateProcedure is the path of the SplitService.Calculate RPC.
	CalculateProcedure = "/" + SplitServiceName + "/Calculate"

	// ExportSummaryProcedure is the path of the SplitService.ExportSummary RPC.
	ExportSummaryProcedure = "/" + SplitServiceName + "/ExportSummary"
)

// SplitService implements the Connect SplitService. It is stateless: every
// request carries the full bill and is calculated from scratch.
type SplitService struct {
	defaultCurrency money.Currency
}

// NewSplitService creates a SplitService. Requests that name no currency
// are rendered in defaultCurrency.
func NewSplitService(defaultCurrency money.Currency) *SplitService {
	return &SplitService{defaultCurrency: defaultCurrency}
}

// NewSplitServiceHandler builds an HTTP handler serving svc, and returns the
// path prefix on which to mount it.
func NewSplitServiceHandler(svc *SplitService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec())}, opts...)

	mux := http.NewServeMux()
	mux.Handle(CalculateProcedure, connect.NewUnaryHandler(CalculateProcedure, svc.Calculate, opts...))
	mux.Handle(ExportSummaryProcedure, connect.NewUnaryHandler(ExportSummaryProcedure, svc.ExportSummary, opts...))
	return "/" + SplitServiceName + "/", mux
}

// Calculate handles bill split calculation.
func (s *SplitService) Calculate(ctx context.Context, req *connect.Request[CalculateRequest]) (*connect.Response[CalculateResponse], error) {
	sess, err := s.load(req.Msg.Snapshot)
	if err != nil {
		slog.Error("Calculate: invalid bill", "error", err)
		return nil, err
	}

	return connect.NewResponse(Settle(sess)), nil
}

// Settle calculates the full settlement for sess. An unresolved payer is not
// an error: Debts is empty and PayerResolved false.
func Settle(sess *session.Session) *CalculateResponse {
	records := sess.Results()
	for _, r := range records {
		slog.Debug("Person split",
			"participant", r.ParticipantID,
			"name", r.Name,
			"subtotal", r.Subtotal,
			"tax", r.TaxShare,
			"tip", r.TipShare,
			"total", r.Total,
			"items_count", len(r.AssignedItems),
		)
	}

	debts, err := sess.Debts()
	payerResolved := err == nil
	if !payerResolved {
		slog.Warn("Payer unresolved, omitting debts", "split", sess.Name(), "error", err)
	}
	if debts == nil {
		debts = []calculator.DebtEdge{}
	}

	items := sess.Items()
	return &CalculateResponse{
		Records:       records,
		Debts:         debts,
		PayerResolved: payerResolved,
		Totals:        calculator.Sum(records),
		ItemTotal:     calculator.TotalItemCost(items),
		Unassigned:    calculator.UnassignedCost(items),
		Tax:           sess.Tax(),
		Tip:           sess.Tip(),
		Currency:      sess.Currency(),
	}
}

// ExportSummary renders the bill as shareable text.
func (s *SplitService) ExportSummary(ctx context.Context, req *connect.Request[ExportSummaryRequest]) (*connect.Response[ExportSummaryResponse], error) {
	sess, err := s.load(req.Msg.Snapshot)
	if err != nil {
		slog.Error("ExportSummary: invalid bill", "error", err)
		return nil, err
	}

	bill := summary.ForSession(sess)
	if bill.Payer == nil {
		slog.Warn("ExportSummary: payer unresolved, omitting payer framing", "split", sess.Name())
	}

	return connect.NewResponse(&ExportSummaryResponse{
		Text:          summary.Text(bill),
		PayerResolved: bill.Payer != nil,
	}), nil
}

// load validates the snapshot into a session, mapping validation failures
// to CodeInvalidArgument.
func (s *SplitService) load(snap session.Snapshot) (*session.Session, error) {
	sess, err := session.FromSnapshot(snap, session.WithCurrency(s.defaultCurrency))
	if err == nil {
		return sess, nil
	}

	switch {
	case errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, money.ErrUnsupportedCurrency),
		errors.Is(err, session.ErrEmptyName),
		errors.Is(err, session.ErrDuplicateID),
		errors.Is(err, session.ErrParticipantNotFound):
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return nil, connect.NewError(connect.CodeInternal, err)
	}
}
