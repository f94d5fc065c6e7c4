//go:build consul

package store

import (
	"rulewatch/pkg/consul"
)

// NewConsulStore creates a Consul-backed store (requires build tag consul).
func NewConsulStore(addr string) RecordStore {
	return consul.NewStore(addr)
}
