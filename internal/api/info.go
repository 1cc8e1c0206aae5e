package api

import "web3-mcp/internal/ankr"

// InfoURI is the resource URI describing the upstream API.
const InfoURI = "ankr://info"

// SupportedNetworks returns the advertised chain identifiers in order.
func SupportedNetworks() []string {
	out := make([]string, len(ankr.SupportedNetworks))
	for i, n := range ankr.SupportedNetworks {
		out[i] = string(n)
	}
	return out
}

// Info is the document served under InfoURI.
func Info() map[string]any {
	return map[string]any{
		"name":               "Ankr Advanced API",
		"description":        "Multi-chain Web3 data API providing access to NFT, Token and Query data",
		"documentation":      "https://www.ankr.com/docs/advanced-api/overview/",
		"supported_networks": SupportedNetworks(),
		"api_categories":     []string{"NFT API", "Query API", "Token API"},
	}
}
