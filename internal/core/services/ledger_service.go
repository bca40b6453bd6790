package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fchandiac/flow-store-sub001/internal/core/domain"
	portsrepo "github.com/fchandiac/flow-store-sub001/internal/core/ports/repositories"
	portssvc "github.com/fchandiac/flow-store-sub001/internal/core/ports/services"
	"github.com/fchandiac/flow-store-sub001/internal/dto"
	"github.com/fchandiac/flow-store-sub001/internal/middleware"
	"github.com/fchandiac/flow-store-sub001/internal/utils/accounting"
)

// ledgerService derives double-entry postings and per-account balances from
// the immutable transaction log. A ledger build is a pure, read-only batch
// recomputation: no caching, no locking, and identical inputs always
// produce identical output.
type ledgerService struct {
	txnRepo     portsrepo.TransactionReader
	accountRepo portsrepo.AccountRepositoryFacade
	ruleRepo    portsrepo.RuleRepositoryFacade
}

// NewLedgerService creates the ledger builder.
func NewLedgerService(txnRepo portsrepo.TransactionReader, accountRepo portsrepo.AccountRepositoryFacade, ruleRepo portsrepo.RuleRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		ruleRepo:    ruleRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// BuildLedger recomputes the full ledger snapshot for the selected window.
func (s *ledgerService) BuildLedger(ctx context.Context, params dto.BuildLedgerParams) (*dto.LedgerComputationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccountsByCompany(ctx, params.CompanyID)
	if err != nil {
		logger.Error("Failed to load accounts for ledger build", slog.String("error", err.Error()), slog.String("company_id", params.CompanyID))
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	rules, err := s.ruleRepo.ListActiveRulesByCompany(ctx, params.CompanyID)
	if err != nil {
		logger.Error("Failed to load rules for ledger build", slog.String("error", err.Error()), slog.String("company_id", params.CompanyID))
		return nil, fmt.Errorf("failed to load accounting rules: %w", err)
	}

	accountsByID := make(map[string]domain.AccountingAccount, len(accounts))
	for _, acc := range accounts {
		accountsByID[acc.AccountID] = acc
	}

	// No accounts or no rules configured is a valid state: every known
	// account reports a zero balance and there is nothing to post.
	if len(accounts) == 0 || len(rules) == 0 {
		return s.assembleResult(accounts, accountsByID, nil), nil
	}

	// Priority orders the evaluation only; rule ID breaks ties so the
	// posting order is deterministic.
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority < rules[j].Priority
		}
		return rules[i].RuleID < rules[j].RuleID
	})

	txnRules, lineRules := splitRulesByScope(rules)

	txns, err := s.txnRepo.ListConfirmedTransactions(ctx, params.CompanyID, ruleTransactionTypes(rules), params.From, params.To, params.Limit)
	if err != nil {
		logger.Error("Failed to load transactions for ledger build", slog.String("error", err.Error()), slog.String("company_id", params.CompanyID))
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	// Lines are only needed when a line-scoped rule can consume them.
	if len(lineRules) > 0 && len(txns) > 0 {
		txnIDs := make([]string, len(txns))
		for i, txn := range txns {
			txnIDs[i] = txn.TransactionID
		}
		linesByTxn, err := s.txnRepo.FindLinesByTransactionIDs(ctx, txnIDs)
		if err != nil {
			logger.Error("Failed to load lines for ledger build", slog.String("error", err.Error()), slog.String("company_id", params.CompanyID))
			return nil, fmt.Errorf("failed to load transaction lines: %w", err)
		}
		for i := range txns {
			txns[i].Lines = linesByTxn[txns[i].TransactionID]
		}
	}

	var postings []domain.Posting
	for i := range txns {
		txn := txns[i]
		for _, rule := range txnRules {
			if !rule.MatchesTransaction(txn) {
				continue
			}
			if !s.ruleAccountsExist(logger, rule, accountsByID) {
				continue
			}
			postings = appendPostingPair(postings, rule, txn, accounting.TransactionRuleMagnitude(txn))
		}
		if len(txn.Lines) == 0 {
			continue
		}
		for _, rule := range lineRules {
			if rule.TransactionType != txn.Type {
				continue
			}
			if !s.ruleAccountsExist(logger, rule, accountsByID) {
				continue
			}
			postings = appendPostingPair(postings, rule, txn, accounting.LineRuleMagnitude(rule, txn))
		}
	}

	// Deterministic final order: ISO date string, then the synthetic
	// posting id (txID:ruleID:accountID:D|C).
	sort.Slice(postings, func(i, j int) bool {
		di := postings[i].Date.UTC().Format(time.RFC3339)
		dj := postings[j].Date.UTC().Format(time.RFC3339)
		if di != dj {
			return di < dj
		}
		return postings[i].PostingID < postings[j].PostingID
	})

	return s.assembleResult(accounts, accountsByID, postings), nil
}

// ruleAccountsExist checks the referential integrity of a rule's account
// references. A rule pointing at a missing account is skipped, not fatal:
// one misconfigured rule must not block the whole ledger.
func (s *ledgerService) ruleAccountsExist(logger *slog.Logger, rule domain.AccountingRule, accountsByID map[string]domain.AccountingAccount) bool {
	for _, accountID := range []string{rule.DebitAccountID, rule.CreditAccountID} {
		if _, ok := accountsByID[accountID]; !ok {
			logger.Warn("Skipping rule referencing missing account", slog.String("rule_id", rule.RuleID), slog.String("account_id", accountID))
			return false
		}
	}
	return true
}

// appendPostingPair emits the symmetric debit/credit pair for one rule
// application. A negative amount swaps the debit and credit account roles,
// which is what lets a single rule post both a sale and its return. Zero
// magnitudes emit nothing.
func appendPostingPair(postings []domain.Posting, rule domain.AccountingRule, txn domain.Transaction, amount decimal.Decimal) []domain.Posting {
	if amount.IsZero() {
		return postings
	}

	debitAccountID := rule.DebitAccountID
	creditAccountID := rule.CreditAccountID
	if amount.IsNegative() {
		debitAccountID, creditAccountID = creditAccountID, debitAccountID
		amount = amount.Abs()
	}

	description := fmt.Sprintf("%s %s", rule.Name, txn.DocumentNumber)
	base := domain.Posting{
		TransactionID: txn.TransactionID,
		RuleID:        rule.RuleID,
		Date:          txn.CreatedAt,
		Reference:     txn.DocumentNumber,
		Description:   description,
	}

	debitRow := base
	debitRow.AccountID = debitAccountID
	debitRow.Debit = amount
	debitRow.PostingID = postingID(txn.TransactionID, rule.RuleID, debitAccountID, "D")

	creditRow := base
	creditRow.AccountID = creditAccountID
	creditRow.Credit = amount
	creditRow.PostingID = postingID(txn.TransactionID, rule.RuleID, creditAccountID, "C")

	return append(postings, debitRow, creditRow)
}

func postingID(transactionID, ruleID, accountID, tag string) string {
	return fmt.Sprintf("%s:%s:%s:%s", transactionID, ruleID, accountID, tag)
}

// assembleResult folds postings into per-account balances and shapes the
// response. Accounts without postings report a zero balance.
func (s *ledgerService) assembleResult(accounts []domain.AccountingAccount, accountsByID map[string]domain.AccountingAccount, postings []domain.Posting) *dto.LedgerComputationResult {
	balances := make(map[string]decimal.Decimal, len(accounts))
	for _, acc := range accounts {
		balances[acc.AccountID] = decimal.Zero
	}
	for _, p := range postings {
		balances[p.AccountID] = balances[p.AccountID].Add(p.Debit).Sub(p.Credit)
	}

	accountResponses := make([]dto.LedgerAccountResponse, len(accounts))
	balanceByCode := make(map[string]decimal.Decimal, len(accounts))
	for i, acc := range accounts {
		balance := balances[acc.AccountID]
		accountResponses[i] = dto.LedgerAccountResponse{
			AccountID:         acc.AccountID,
			Code:              acc.Code,
			Name:              acc.Name,
			AccountType:       acc.AccountType,
			Balance:           balance,
			NormalizedBalance: domain.NormalizeBalanceForPresentation(acc.AccountType, balance),
		}
		balanceByCode[acc.Code] = balance
	}

	postingResponses := make([]dto.PostingResponse, len(postings))
	for i, p := range postings {
		postingResponses[i] = dto.PostingResponse{
			PostingID:     p.PostingID,
			TransactionID: p.TransactionID,
			RuleID:        p.RuleID,
			AccountID:     p.AccountID,
			AccountCode:   accountsByID[p.AccountID].Code,
			Date:          p.Date,
			Reference:     p.Reference,
			Description:   p.Description,
			Debit:         p.Debit,
			Credit:        p.Credit,
		}
	}

	return &dto.LedgerComputationResult{
		Accounts:         accountResponses,
		Postings:         postingResponses,
		BalanceByAccount: balanceByCode,
	}
}

// ListAccounts returns the company's chart of accounts.
func (s *ledgerService) ListAccounts(ctx context.Context, companyID string) ([]domain.AccountingAccount, error) {
	return s.accountRepo.ListAccountsByCompany(ctx, companyID)
}

// ListRules returns the company's active accounting rules.
func (s *ledgerService) ListRules(ctx context.Context, companyID string) ([]domain.AccountingRule, error) {
	return s.ruleRepo.ListActiveRulesByCompany(ctx, companyID)
}

func splitRulesByScope(rules []domain.AccountingRule) (txnRules, lineRules []domain.AccountingRule) {
	for _, rule := range rules {
		switch rule.Scope {
		case domain.ScopeTransaction:
			txnRules = append(txnRules, rule)
		case domain.ScopeTransactionLine:
			lineRules = append(lineRules, rule)
		}
	}
	return txnRules, lineRules
}

// ruleTransactionTypes collects the distinct transaction types any rule
// references, so the build only fetches transactions that can produce
// postings.
func ruleTransactionTypes(rules []domain.AccountingRule) []domain.TransactionType {
	seen := make(map[domain.TransactionType]struct{}, len(rules))
	types := make([]domain.TransactionType, 0, len(rules))
	for _, rule := range rules {
		if _, ok := seen[rule.TransactionType]; ok {
			continue
		}
		seen[rule.TransactionType] = struct{}{}
		types = append(types, rule.TransactionType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
