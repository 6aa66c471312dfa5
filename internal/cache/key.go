package cache

import (
	"sort"
	"strings"

	"github.com/bilgisen/contentfeed/internal/utils"
)

// maxParamsLen bounds the readable part of a key; longer parameter strings are fingerprinted.
const maxParamsLen = 96

// Key identifies a cached document by its kind and request parameters.
type Key struct {
	Kind   string
	Params map[string]string
}

// NewKey builds a Key from alternating name/value pairs. A trailing name
// without a value is ignored.
func NewKey(kind string, pairs ...string) Key {
	params := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		params[pairs[i]] = pairs[i+1]
	}
	return Key{Kind: kind, Params: params}
}

// String renders "<kind>[:<params>]:v<version>" with parameters sorted by name.
func (k Key) String(version string) string {
	var b strings.Builder
	b.WriteString(k.Kind)
	if params := k.encodeParams(); params != "" {
		b.WriteByte(':')
		b.WriteString(params)
	}
	b.WriteString(":v")
	b.WriteString(version)
	return b.String()
}

func (k Key) encodeParams() string {
	if len(k.Params) == 0 {
		return ""
	}
	names := make([]string, 0, len(k.Params))
	for name := range k.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+k.Params[name])
	}
	encoded := strings.Join(parts, "&")
	if len(encoded) > maxParamsLen {
		return "h" + utils.Hash(encoded)
	}
	return encoded
}
