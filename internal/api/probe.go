package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"web3-mcp/internal/normalize"
)

// priceFields are probed in order on price results that are not plain
// numbers.
var priceFields = []string{"usdPrice", "price", "price_usd"}

// countPaths are probed in order on holder count results.
var countPaths = []string{"count", "latestHoldersCount", "holderCount", "holderCountHistory.0.holderCount"}

var errNoPrice = errors.New("price not found in response")

// parsePrice turns an upstream price result into the decimal string
// published as price_usd. A present but unparsable string is returned as is.
func parsePrice(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", errors.New("result is empty")
	case string:
		return priceFromString(v), nil
	}

	doc, err := json.Marshal(normalize.ToSerializable(raw))
	if err != nil {
		return "", err
	}
	parsed := gjson.ParseBytes(doc)
	switch parsed.Type {
	case gjson.String:
		return priceFromString(parsed.Str), nil
	case gjson.Number:
		return formatPrice(parsed.Num), nil
	case gjson.JSON:
		if !parsed.IsObject() {
			return "", errNoPrice
		}
	default:
		return "", errNoPrice
	}

	for _, name := range priceFields {
		field := parsed.Get(name)
		if !field.Exists() {
			continue
		}
		if !truthy(field) {
			return "0", nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(field.String()), 64)
		if err != nil {
			return "", fmt.Errorf("%s %q: %w", name, field.String(), err)
		}
		return formatPrice(f), nil
	}
	return "", errNoPrice
}

func priceFromString(s string) string {
	if strings.TrimSpace(s) == "" {
		return "0"
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return s
	}
	if gjson.Valid(s) {
		parsed := gjson.Parse(s)
		if parsed.IsObject() {
			for _, name := range priceFields {
				if field := parsed.Get(name); field.Exists() {
					return field.String()
				}
			}
		}
	}
	return s
}

func formatPrice(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// truthy mirrors what counts as "no value" in loosely typed payloads:
// null, false, zero and the empty string.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	}
	return true
}

// parseCount extracts a holder count, defaulting to zero when none of the
// known fields is present.
func parseCount(raw any) int64 {
	doc, err := json.Marshal(normalize.ToSerializable(raw))
	if err != nil {
		return 0
	}
	parsed := gjson.ParseBytes(doc)
	if parsed.Type == gjson.Number {
		return parsed.Int()
	}
	if !parsed.IsObject() {
		return 0
	}
	for _, path := range countPaths {
		if field := parsed.Get(path); field.Exists() {
			return field.Int()
		}
	}
	return 0
}

// parseStats condenses blockchain statistics. A list is reduced to its first
// entry's block height, transaction count and tps; any other shape is
// returned serialized as a whole.
func parseStats(raw any) any {
	v := normalize.ToSerializable(raw)
	list, ok := v.([]any)
	if !ok {
		if v == nil {
			return summarizeStats(nil)
		}
		return v
	}
	if len(list) == 0 {
		return summarizeStats(nil)
	}
	first, _ := list[0].(map[string]any)
	return summarizeStats(first)
}

func summarizeStats(m map[string]any) map[string]any {
	return map[string]any{
		"lastBlockNumber": firstOf(m, "latestBlockNumber", "lastBlockNumber"),
		"transactions":    firstOf(m, "totalTransactionsCount", "transactions"),
		"tps":             firstOf(m, "tps"),
	}
}

func firstOf(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return 0
}

// matchField keeps serialized items whose key equals want. An empty want
// keeps everything.
func matchField(key, want string) func(any) bool {
	if want == "" {
		return nil
	}
	return func(item any) bool {
		m, ok := item.(map[string]any)
		if !ok {
			return false
		}
		return fmt.Sprint(m[key]) == want
	}
}

// balanceFilter applies the erc20_only, native_only and tokens_only flags of
// an account balance request to serialized assets.
func balanceFilter(req *AccountBalanceRequest) func(any) bool {
	if !req.ERC20Only && !req.NativeOnly && !req.TokensOnly {
		return nil
	}
	return func(item any) bool {
		m, _ := item.(map[string]any)
		tokenType := strings.ToUpper(fmt.Sprint(m["tokenType"]))
		switch {
		case req.ERC20Only && tokenType != "ERC20":
			return false
		case req.NativeOnly && tokenType != "NATIVE":
			return false
		case req.TokensOnly && (tokenType == "ERC721" || tokenType == "ERC1155"):
			return false
		}
		return true
	}
}
