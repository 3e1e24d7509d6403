package token

import (
	"github.com/patrickmn/go-cache"
)

// feeCache remembers paid fee signatures per wallet so a retry never pays twice.
// Entries never expire; a successful mint deletes its wallet's entry.
type feeCache struct {
	c *cache.Cache
}

func newFeeCache() *feeCache {
	return &feeCache{c: cache.New(cache.NoExpiration, 0)}
}

func (f *feeCache) Get(wallet string) (string, bool) {
	v, found := f.c.Get(wallet)
	if !found {
		return "", false
	}
	sig, ok := v.(string)
	return sig, ok
}

func (f *feeCache) Set(wallet, signature string) {
	f.c.Set(wallet, signature, cache.NoExpiration)
}

func (f *feeCache) Delete(wallet string) {
	f.c.Delete(wallet)
}
