package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortAccounts(t *testing.T) {
	accounts := []Account{
		{ID: "3", Name: "Paul"},
		{ID: "2", Name: "Josh"},
		{ID: "1", Name: "Paul"},
		{ID: "4", Name: "Meghan"},
	}
	SortAccounts(accounts)
	assert.Equal(t, []Account{
		{ID: "2", Name: "Josh"},
		{ID: "4", Name: "Meghan"},
		{ID: "1", Name: "Paul"},
		{ID: "3", Name: "Paul"},
	}, accounts)
}
