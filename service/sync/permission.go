package sync

import (
	"encoding/json"
	"fmt"
	"slices"
)

type (
	// PermissionConfig lists the accounts each document is shared with
	PermissionConfig struct {
		Documents []*Permission `json:"documents" yaml:"documents"`
	}

	// Permission is the desired sharing of a document
	Permission struct {
		Name     string      `json:"name" yaml:"name"`
		Accounts []AccountID `json:"awsAccounts" yaml:"awsAccounts"`
	}

	// AccountID is an account identifier given as a JSON string or number
	AccountID string

	// PermissionChange reports a permission sync of a document
	PermissionChange struct {
		Name     string
		Shared   []string
		Unshared []string
		Modified bool
	}
)

func (a *AccountID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*a = AccountID(text)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("invalid account id %s: %w", data, err)
	}
	*a = AccountID(number.String())
	return nil
}

// AccountIDs returns the desired accounts as strings
func (p *Permission) AccountIDs() []string {
	ret := make([]string, len(p.Accounts))
	for i, account := range p.Accounts {
		ret[i] = string(account)
	}
	return ret
}

// planSharing returns the desired accounts not yet shared and the shared accounts no longer desired
func planSharing(desired, current []string) (share, unshare []string) {
	for _, account := range desired {
		if !slices.Contains(current, account) {
			share = append(share, account)
		}
	}
	for _, account := range current {
		if !slices.Contains(desired, account) {
			unshare = append(unshare, account)
		}
	}
	return share, unshare
}
