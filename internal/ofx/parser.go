// Package ofx imports OFX/QFX bank and credit card statements as ledger transactions.
package ofx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/the-ledger-must-balance/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrMissingTarget is returned when an import has no account or category to book into.
var ErrMissingTarget = errors.New("import requires an account and a category")

// importNamespace seeds deterministic transaction ids so re-importing a statement
// yields the same ids.
var importNamespace = uuid.MustParse("6f1c2a0e-4d2b-5b8e-9c43-2f7d1e0a9b61")

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Options controls how statement lines become ledger transactions.
type Options struct {
	// TypeCategories overrides CategoryID per OFX transaction type, e.g. "INT" or "FEE".
	TypeCategories map[string]string
	AccountID      string
	CategoryID     string
	UserID         string
}

func (o Options) validate() error {
	if strings.TrimSpace(o.AccountID) == "" || strings.TrimSpace(o.CategoryID) == "" {
		return ErrMissingTarget
	}
	return nil
}

func (o Options) categoryFor(trnType string) string {
	if cat, ok := o.TypeCategories[trnType]; ok && cat != "" {
		return cat
	}
	return o.CategoryID
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	// Trim any leading whitespace or blank lines before the header
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Opening tags missing their closing bracket at end of line
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

func (p *Parser) parse(reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseFile parses an OFX/QFX file and returns ledger transactions booked to the
// account and category in opts. Amounts are converted to signed minor units.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader, opts Options) ([]model.Transaction, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			txns, err := p.convertList(stmt.BankTranList, string(stmt.BankAcctFrom.AcctID), opts)
			if err != nil {
				slog.Warn("Failed to process bank statement",
					"account", stmt.BankAcctFrom.AcctID,
					"error", err)
				continue
			}
			transactions = append(transactions, txns...)
		}
	}

	for _, msg := range resp.CreditCard {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			txns, err := p.convertList(stmt.BankTranList, string(stmt.CCAcctFrom.AcctID), opts)
			if err != nil {
				slog.Warn("Failed to process credit card statement",
					"account", stmt.CCAcctFrom.AcctID,
					"error", err)
				continue
			}
			transactions = append(transactions, txns...)
		}
	}

	slog.Info("Parsed OFX file",
		"total_transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

func (p *Parser) convertList(list *ofxgo.TransactionList, statementAccount string, opts Options) ([]model.Transaction, error) {
	if list == nil {
		return nil, nil
	}

	transactions := make([]model.Transaction, 0, len(list.Transactions))
	for _, ofxTx := range list.Transactions {
		tx, err := p.convertTransaction(ofxTx, statementAccount, opts)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", ofxTx.FiTID, err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

// convertTransaction converts an OFX transaction to a ledger transaction.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, statementAccount string, opts Options) (model.Transaction, error) {
	amount, err := MinorUnits(ofxTx.TrnAmt.FloatString(2))
	if err != nil {
		return model.Transaction{}, err
	}

	trnType := ofxTx.TrnType.String()
	note := p.extractMerchantName(ofxTx)
	if ofxTx.CheckNum != "" {
		note = fmt.Sprintf("%s (check %s)", note, ofxTx.CheckNum)
	}

	return model.Transaction{
		ID:         transactionID(statementAccount, string(ofxTx.FiTID)),
		AccountID:  opts.AccountID,
		UserID:     opts.UserID,
		CategoryID: opts.categoryFor(trnType),
		Amount:     amount,
		Timestamp:  model.FormatTimestamp(ofxTx.DtPosted.UTC()),
		Note:       note,
	}, nil
}

// MinorUnits converts a decimal amount string such as "-25.50" to signed cents.
func MinorUnits(amount string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return d.Shift(2).Round(0).IntPart(), nil
}

// transactionID derives a stable id from the statement account and the bank's FITID.
// Lines without a FITID get a random id.
func transactionID(statementAccount, fitID string) string {
	if fitID == "" {
		return uuid.NewString()
	}
	return uuid.NewSHA1(importNamespace, []byte(statementAccount+"/"+fitID)).String()
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available (cleaner merchant name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)

	// Sometimes MEMO has better merchant info
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Clean up date patterns like "MM/DD" at the beginning
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}

// GetAccounts extracts the sorted, unique statement account ids from the OFX file.
func (p *Parser) GetAccounts(_ context.Context, reader io.Reader) ([]string, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	accountMap := make(map[string]bool)
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankAcctFrom.AcctID != "" {
			accountMap[string(stmt.BankAcctFrom.AcctID)] = true
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.CCAcctFrom.AcctID != "" {
			accountMap[string(stmt.CCAcctFrom.AcctID)] = true
		}
	}

	accounts := make([]string, 0, len(accountMap))
	for acct := range accountMap {
		accounts = append(accounts, acct)
	}
	sort.Strings(accounts)
	return accounts, nil
}

// NewOnly drops imported transactions whose id already exists in existing or
// earlier in imported.
func NewOnly(existing, imported []model.Transaction) []model.Transaction {
	seen := make(map[string]bool, len(existing)+len(imported))
	for _, t := range existing {
		seen[t.ID] = true
	}

	fresh := make([]model.Transaction, 0, len(imported))
	for _, t := range imported {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		fresh = append(fresh, t)
	}
	return fresh
}
