package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/the-ledger-must-balance/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrUnknownDriver    = errors.New("unknown storage driver")
	ErrInvalidRecord    = errors.New("invalid record")
	ErrDuplicateID      = errors.New("duplicate identifier")
	ErrReservedID       = errors.New("reserved identifier")
	ErrCategoryCycle    = errors.New("category parent graph contains a cycle")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// ValidateSnapshot enforces the invariants every loaded snapshot must satisfy:
// unique identifiers per collection, no real category using the reserved root id,
// known category types, an acyclic category graph, and parseable timestamps.
func ValidateSnapshot(s model.Snapshot) error {
	if err := uniqueIDs("accounts", s.Accounts, func(a model.Account) string { return a.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("categories", s.Categories, func(c model.Category) string { return c.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("transactions", s.Transactions, func(t model.Transaction) string { return t.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("budgets", s.Budgets, func(b model.Budget) string { return b.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("users", s.Users, func(u model.User) string { return u.Username }); err != nil {
		return err
	}

	for i, c := range s.Categories {
		if c.ID == model.VirtualRootID {
			return fmt.Errorf("%w: categories[%d] uses %q", ErrReservedID, i, c.ID)
		}
		if !c.Type.Valid() || c.Type == model.CategoryTypeVirtual {
			return fmt.Errorf("%w: categories[%d] has type %q", ErrInvalidRecord, i, c.Type)
		}
	}
	if err := checkAcyclic(s.Categories); err != nil {
		return err
	}

	for i, t := range s.Transactions {
		if _, err := t.Time(); err != nil {
			return fmt.Errorf("%w: transactions[%d]: %v", ErrInvalidTimestamp, i, err)
		}
	}
	return nil
}

func uniqueIDs[T any](collection string, items []T, id func(T) string) error {
	seen := make(map[string]int, len(items))
	for i, item := range items {
		key := id(item)
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("%w: %s[%d] has an empty identifier", ErrInvalidRecord, collection, i)
		}
		if first, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s[%d] and %s[%d] share %q", ErrDuplicateID, collection, first, collection, i, key)
		}
		seen[key] = i
	}
	return nil
}

// checkAcyclic walks each category's parent chain and fails on revisiting a node
// of the chain currently being walked.
func checkAcyclic(categories []model.Category) error {
	parent := make(map[string]string, len(categories))
	for _, c := range categories {
		if c.HasParent() {
			parent[c.ID] = *c.ParentID
		}
	}

	const (
		inProgress = iota + 1
		done
	)
	state := make(map[string]int, len(categories))

	for _, c := range categories {
		var path []string
		id := c.ID
	walk:
		for {
			switch state[id] {
			case inProgress:
				return fmt.Errorf("%w: through %q", ErrCategoryCycle, id)
			case done:
				break walk
			}
			state[id] = inProgress
			path = append(path, id)

			next, ok := parent[id]
			if !ok {
				break walk
			}
			id = next
		}
		for _, p := range path {
			state[p] = done
		}
	}
	return nil
}
