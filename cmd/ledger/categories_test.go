package main

import (
	"strings"
	"testing"

	"github.com/Veraticus/the-ledger-must-balance/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesCmd_Structure(t *testing.T) {
	cmd := categoriesCmd(&app{})

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"tree", "expenses", "balance"}, names)
}

func TestCategoryTree(t *testing.T) {
	data, cfg := testLedger(t)

	out, err := runLedger(t, data, cfg, "", append([]string{"categories", "tree"}, asBob...)...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "Root")
	assert.True(t, strings.HasPrefix(lines[1], "  Food"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "    Groceries"), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "    Dining"), lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "  Salary"), lines[4])

	out, err = runLedger(t, data, cfg, "", append([]string{"categories", "tree", "food"}, asBob...)...)
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Food"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  Groceries"), lines[1])

	out, err = runLedger(t, data, cfg, "", append([]string{"categories", "tree", "missing"}, asBob...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "No categories found.")
}

func TestCategoryExpenses(t *testing.T) {
	data, cfg := testLedger(t)

	tests := []struct {
		name string
		args []string
		user []string
		want string
	}{
		{name: "subtree for standard user", args: []string{"food"}, user: asBob, want: "Food: "},
		{name: "whole tree", args: nil, user: asBob, want: "All categories: "},
		{name: "admin includes deleted", args: []string{"groceries"}, user: asAlice, want: "Groceries: "},
	}
	amounts := []string{"-40.00", "-40.00", "-76.00"}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(append([]string{"categories", "expenses"}, tt.args...), tt.user...)
			out, err := runLedger(t, data, cfg, "", args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, amounts[i])
		})
	}
}

func TestCategoryBalance(t *testing.T) {
	data, cfg := testLedger(t)

	out, err := runLedger(t, data, cfg, "", append([]string{"categories", "balance", "salary"}, asAlice...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Salary (income): ")
	assert.Contains(t, out, "2500.00")

	_, err = runLedger(t, data, cfg, "", append([]string{"categories", "balance", "travel"}, asAlice...)...)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
