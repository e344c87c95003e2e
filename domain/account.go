package domain

import "sort"

// Account is the document served by GET /account/all.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SortAccounts orders accounts by name, then id, in place. Both account stores return FindAll in this order.
func SortAccounts(accounts []Account) {
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Name != accounts[j].Name {
			return accounts[i].Name < accounts[j].Name
		}
		return accounts[i].ID < accounts[j].ID
	})
}
