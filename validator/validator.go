package validator

import (
	"regexp"
	"sort"
)

var (
	ethPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	solPattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)
)

// validators maps a blockchain code to its address shape predicate.
// Adding a new chain means registering a predicate here.
var validators = map[string]func(string) bool{
	"eth": validateEth,
	"sol": validateSol,
}

func validateEth(address string) bool {
	return ethPattern.MatchString(address)
}

func validateSol(address string) bool {
	return solPattern.MatchString(address)
}

// Validate reports whether address is well formed for the given
// blockchain code. An unknown or unset code validates nothing.
func Validate(blockchain, address string) bool {
	validate, ok := validators[blockchain]
	if !ok {
		return false
	}
	return validate(address)
}

// Supported reports whether a validator is registered for the given
// blockchain code.
func Supported(blockchain string) bool {
	_, ok := validators[blockchain]
	return ok
}

// Chains returns the registered blockchain codes in sorted order.
func Chains() []string {
	chains := make([]string, 0, len(validators))
	for code := range validators {
		chains = append(chains, code)
	}
	sort.Strings(chains)
	return chains
}
