package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rentercheck/internal/identifier"
	"rentercheck/internal/ledger"
	"rentercheck/internal/logger"
	"rentercheck/internal/metrics"
	"rentercheck/internal/wallet"
)

var (
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrCostLookup          = errors.New("cost configuration unavailable")
	ErrTransaction         = errors.New("billing transaction failed")
)

// Gate terminal states.
const (
	StatusFree   = "free"
	StatusBilled = "billed"
)

// GateResult reports what a successful gate attempt did.
type GateResult struct {
	Status     string                 `json:"status"`
	TotalCost  int64                  `json:"total_cost"`
	NewBalance int64                  `json:"new_balance,omitempty"`
	Billed     []identifier.Candidate `json:"billed"`
}

// CostResolver is the slice of the cost package the gate needs.
type CostResolver interface {
	Cost(ctx context.Context, actionKey string) (int64, error)
}

type Service interface {
	Gate(ctx context.Context, userID int, input identifier.SearchInput) (*GateResult, error)
}

type service struct {
	costs       CostResolver
	ledgerRepo  ledger.Repository
	walletRepo  wallet.Repository
	countryCode string
	ledgerTTL   time.Duration
}

func NewService(
	costs CostResolver,
	ledgerRepo ledger.Repository,
	walletRepo wallet.Repository,
	countryCode string,
	ledgerTTL time.Duration,
) Service {
	return &service{
		costs:       costs,
		ledgerRepo:  ledgerRepo,
		walletRepo:  walletRepo,
		countryCode: countryCode,
		ledgerTTL:   ledgerTTL,
	}
}

// Gate decides what a search request must pay for and charges it in
// one atomic deduction. Identifiers billed within the active window
// are skipped; a total cost of zero never touches the wallet. The
// ledger write after a successful charge is best-effort: its failure
// is logged and counted, never rolled back.
func (s *service) Gate(ctx context.Context, userID int, input identifier.SearchInput) (*GateResult, error) {
	candidates := identifier.Normalize(input, s.countryCode)
	if len(candidates) == 0 {
		return &GateResult{Status: StatusFree, Billed: []identifier.Candidate{}}, nil
	}

	// A value repeated within one request is billable once.
	unique := make([]identifier.Candidate, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, cand := range candidates {
		if !seen[cand.Key()] {
			seen[cand.Key()] = true
			unique = append(unique, cand)
		}
	}

	costByType := make(map[identifier.Type]int64)
	for _, cand := range unique {
		if _, ok := costByType[cand.Type]; ok {
			continue
		}
		c, err := s.costs.Cost(ctx, string(cand.Type))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrCostLookup, cand.Type)
		}
		costByType[cand.Type] = c
	}

	types := make([]string, 0, len(costByType))
	for t := range costByType {
		types = append(types, string(t))
	}

	entries, err := s.ledgerRepo.FindUnexpired(ctx, userID, types)
	if err != nil {
		return nil, fmt.Errorf("%w: ledger read: %v", ErrTransaction, err)
	}

	tuples := make([]ledger.Tuple, len(unique))
	for i, cand := range unique {
		tuples[i] = ledger.Tuple{ParameterType: string(cand.Type), ParameterValue: cand.Value}
	}
	covered := ledger.CoveredSet(entries, tuples)

	var totalCost int64
	billable := make([]identifier.Candidate, 0, len(unique))
	for _, cand := range unique {
		if covered[cand.Key()] {
			continue
		}
		if costByType[cand.Type] == 0 {
			continue
		}
		totalCost += costByType[cand.Type]
		billable = append(billable, cand)
	}

	// Nothing to pay for: no lock, no transaction row, no ledger write.
	if totalCost == 0 {
		metrics.RecordGateAttempt(StatusFree)
		return &GateResult{Status: StatusFree, Billed: []identifier.Candidate{}}, nil
	}

	description := billingDescription(billable)
	newBalance, err := s.walletRepo.ApplyDelta(ctx, userID, -totalCost, wallet.TxTypeUsage, description, "")
	if err != nil {
		if errors.Is(err, wallet.ErrInsufficientBalance) {
			metrics.RecordGateAttempt("insufficient")
			metrics.RecordInsufficientCredits()
			logger.Info("gate denied", "user_id", userID, "cost", totalCost)
			return nil, ErrInsufficientCredits
		}
		metrics.RecordGateAttempt("error")
		logger.Error("atomic deduction failed", "user_id", userID, "cost", totalCost, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrTransaction, err)
	}

	billedTuples := make([]ledger.Tuple, len(billable))
	for i, cand := range billable {
		billedTuples[i] = ledger.Tuple{ParameterType: string(cand.Type), ParameterValue: cand.Value}
	}
	if err := s.ledgerRepo.InsertBatch(ctx, userID, billedTuples, time.Now().Add(s.ledgerTTL)); err != nil {
		// The charge is committed. Losing this write can bill the
		// same identifier again within the window, which is the
		// accepted trade against reversing a committed charge.
		metrics.RecordLedgerWriteFailure()
		logger.Error("ledger write failed after committed charge",
			"user_id", userID, "entries", len(billedTuples), "error", err)
	}

	metrics.RecordGateAttempt(StatusBilled)
	metrics.RecordDeduction(totalCost)
	logger.Info("search billed", "user_id", userID, "cost", totalCost, "items", len(billable), "balance", newBalance)

	return &GateResult{
		Status:     StatusBilled,
		TotalCost:  totalCost,
		NewBalance: newBalance,
		Billed:     billable,
	}, nil
}

func billingDescription(billable []identifier.Candidate) string {
	parts := make([]string, len(billable))
	for i, cand := range billable {
		parts[i] = string(cand.Type)
	}
	return "search billing: " + strings.Join(parts, ", ")
}
