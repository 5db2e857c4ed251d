package models

import "time"

// TokenInfo is the resolved metadata for a single mint address.
type TokenInfo struct {
	Address    string   `json:"address"`
	Symbol     string   `json:"symbol"`
	Name       string   `json:"name"`
	Decimals   int      `json:"decimals"`
	LogoURI    string   `json:"logoURI,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Unresolved bool     `json:"unresolved,omitempty"`
}

// Catalog is an immutable snapshot of the token list keyed by mint address.
// Refreshes replace the whole snapshot; readers never see a partial catalog.
type Catalog struct {
	Tokens    map[string]TokenInfo
	FetchedAt time.Time
}

// Len returns the number of tokens in the snapshot.
func (c Catalog) Len() int { return len(c.Tokens) }

// Age returns how long ago the snapshot was fetched.
func (c Catalog) Age() time.Duration {
	if c.FetchedAt.IsZero() {
		return 0
	}
	return time.Since(c.FetchedAt)
}

// Resolve returns best-effort metadata for a mint. Unknown mints yield a
// degraded TokenInfo with a shortened address as the symbol; lookup never fails.
func (c Catalog) Resolve(mint string) TokenInfo {
	if t, ok := c.Tokens[mint]; ok {
		return t
	}
	return TokenInfo{
		Address:    mint,
		Symbol:     ShortenMint(mint),
		Name:       "Unknown Token",
		Unresolved: true,
	}
}

// ShortenMint abbreviates a long mint address for display.
// Identifiers of 16 characters or fewer pass through unchanged.
func ShortenMint(mint string) string {
	if len(mint) <= 16 {
		return mint
	}
	return mint[:8] + "..." + mint[len(mint)-8:]
}
